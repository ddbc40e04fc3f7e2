package countdown

import (
	"testing"
	"time"

	"github.com/calmhq/calm-cli/internal/scheduler"
)

func TestEngine_FinishFiresExactlyOnce(t *testing.T) {
	clock := scheduler.NewManualClock(time.Unix(0, 0))
	sched := scheduler.New(clock)

	finishes := 0
	e := New(sched, nil, func() { finishes++ })
	e.Start(10 * time.Second)

	// Advance well past the deadline; extra frames must not re-fire finish.
	for i := 0; i < 100; i++ {
		clock.Advance(200 * time.Millisecond)
		sched.Tick()
	}

	if finishes != 1 {
		t.Errorf("finish fired %d times, want 1", finishes)
	}
	if e.Running() {
		t.Error("engine still running after finish")
	}
}

func TestEngine_RemainingNeverNegative(t *testing.T) {
	clock := scheduler.NewManualClock(time.Unix(0, 0))
	sched := scheduler.New(clock)

	var last Snapshot
	e := New(sched, func(s Snapshot) { last = s }, nil)
	e.Start(2 * time.Second)

	// Overshoot the deadline by a whole frame.
	clock.Advance(3 * time.Second)
	sched.Tick()

	if last.Remaining != 0 {
		t.Errorf("Remaining = %v, want 0", last.Remaining)
	}
	if last.Display != "00:00" {
		t.Errorf("Display = %q, want 00:00", last.Display)
	}
	if last.Progress != 1 {
		t.Errorf("Progress = %v, want 1", last.Progress)
	}
}

func TestEngine_ProgressAdvances(t *testing.T) {
	clock := scheduler.NewManualClock(time.Unix(0, 0))
	sched := scheduler.New(clock)

	var last Snapshot
	e := New(sched, func(s Snapshot) { last = s }, nil)
	e.Start(100 * time.Second)

	clock.Advance(25 * time.Second)
	sched.Tick()

	if last.Progress < 0.24 || last.Progress > 0.26 {
		t.Errorf("Progress = %v at 25/100s, want ~0.25", last.Progress)
	}
	if last.Display != "01:15" {
		t.Errorf("Display = %q, want 01:15", last.Display)
	}
}

func TestEngine_CancelSuppressesFinish(t *testing.T) {
	clock := scheduler.NewManualClock(time.Unix(0, 0))
	sched := scheduler.New(clock)

	finishes := 0
	e := New(sched, nil, func() { finishes++ })
	e.Start(time.Second)
	e.Cancel()

	clock.Advance(5 * time.Second)
	sched.Tick()

	if finishes != 0 {
		t.Errorf("finish fired %d times after Cancel, want 0", finishes)
	}
	if e.Running() {
		t.Error("engine running after Cancel")
	}
}

func TestEngine_RestartAbandonsOldDeadline(t *testing.T) {
	clock := scheduler.NewManualClock(time.Unix(0, 0))
	sched := scheduler.New(clock)

	finishes := 0
	e := New(sched, nil, func() { finishes++ })
	e.Start(time.Second)
	e.Start(time.Minute)

	clock.Advance(2 * time.Second)
	sched.Tick()

	if finishes != 0 {
		t.Errorf("finish fired %d times, want 0 (new deadline is 60s out)", finishes)
	}

	clock.Advance(time.Minute)
	sched.Tick()
	if finishes != 1 {
		t.Errorf("finish fired %d times after full duration, want 1", finishes)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00"},
		{"negative clamps", -time.Second, "00:00"},
		{"partial second rounds up", 500 * time.Millisecond, "00:01"},
		{"whole minutes", 2 * time.Minute, "02:00"},
		{"mixed", 150 * time.Second, "02:30"},
		{"twelve minutes", 720 * time.Second, "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRemaining(tt.d); got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
