package session

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/calmhq/calm-cli/internal/clients/cue"
	"github.com/calmhq/calm-cli/internal/clients/player"
	"github.com/calmhq/calm-cli/internal/countdown"
	"github.com/calmhq/calm-cli/internal/events"
	"github.com/calmhq/calm-cli/internal/scheduler"
	"github.com/calmhq/calm-cli/internal/store"
	"github.com/calmhq/calm-cli/internal/transport"
	"github.com/calmhq/calm-cli/internal/types"
)

type harness struct {
	ctrl  *Controller
	clock *scheduler.ManualClock
	sched *scheduler.Scheduler
	store *store.Manager
	bus   *events.Bus
	sink  *cue.MockSink
	video *player.MockPlayer
	audio *player.MockPlayer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := scheduler.NewManualClock(time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local))
	sched := scheduler.New(clock)
	bus := events.NewBus()
	st := store.NewManager(store.Config{
		DataDir: filepath.Join(t.TempDir(), ".calm"),
		Clock:   clock,
		Bus:     bus,
	})
	video := &player.MockPlayer{}
	audio := &player.MockPlayer{}
	tr := transport.New(transport.Config{
		Video:     video,
		Audio:     audio,
		Scheduler: sched,
		Bus:       bus,
	})
	sink := &cue.MockSink{}
	ctrl := New(Config{
		Store:     st,
		Transport: tr,
		Scheduler: sched,
		Bus:       bus,
		Clock:     clock,
		Cue:       sink,
		Prompts:   []string{"What went well today?"},
		Rand:      rand.New(rand.NewSource(1)),
	})
	return &harness{ctrl: ctrl, clock: clock, sched: sched, store: st, bus: bus, sink: sink, video: video, audio: audio}
}

// advance walks simulated time forward in frame-sized steps.
func (h *harness) advance(d time.Duration) {
	const frame = 100 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		h.clock.Advance(frame)
		h.sched.Tick()
	}
}

func drain(ch <-chan types.Event) []types.Event {
	var out []types.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestDurationFor(t *testing.T) {
	tests := []struct {
		name  string
		slot  types.SlotID
		level int
		class types.DurationClass
		want  time.Duration
	}{
		{"breathing level 1", types.SlotBreathing, 1, types.ClassFull, 120 * time.Second},
		{"breathing level 3", types.SlotBreathing, 3, types.ClassFull, 360 * time.Second},
		{"nature level 4", types.SlotNature, 4, types.ClassFull, 210 * time.Second},
		{"cold level 1", types.SlotCold, 1, types.ClassFull, 60 * time.Second},
		{"cold level 4", types.SlotCold, 4, types.ClassFull, 90 * time.Second},
		{"journal quick", types.SlotJournal, 2, types.ClassQuick, 120 * time.Second},
		{"journal full", types.SlotJournal, 2, types.ClassFull, 720 * time.Second},
		{"out of range level falls back", types.SlotPosture, 9, types.ClassFull, DefaultDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationFor(tt.slot, tt.level, tt.class); got != tt.want {
				t.Errorf("DurationFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggleStartsAndStopsSameSlot(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Toggle(types.SlotPosture)
	if h.ctrl.State() != Running || h.ctrl.Slot() != types.SlotPosture {
		t.Fatalf("state = %v slot = %v after start", h.ctrl.State(), h.ctrl.Slot())
	}

	h.ctrl.Toggle(types.SlotPosture)
	if h.ctrl.State() != Idle {
		t.Errorf("state = %v after toggle of running slot, want Idle", h.ctrl.State())
	}
}

func TestRunningSlotLocksOutOtherSlots(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Toggle(types.SlotPosture)
	h.ctrl.Toggle(types.SlotCold)

	if h.ctrl.Slot() != types.SlotPosture {
		t.Errorf("slot = %v, want posture still running", h.ctrl.Slot())
	}
	if h.ctrl.State() != Running {
		t.Errorf("state = %v, want Running", h.ctrl.State())
	}
}

func TestHistoryLoggedOnFinishOnly(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Toggle(types.SlotCold)
	if got := len(h.store.History()); got != 0 {
		t.Fatalf("history length at start = %d, want 0", got)
	}

	h.advance(61 * time.Second)
	hist := h.store.History()
	if len(hist) != 1 {
		t.Fatalf("expected history entry after finish, got %d", len(hist))
	}
	if hist[0].Slot != types.SlotCold || hist[0].Duration != 60 {
		t.Errorf("entry = %+v, want cold/60s", hist[0])
	}
}

func TestToggleOffLeavesNoHistory(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Toggle(types.SlotCold)
	h.advance(10 * time.Second)
	h.ctrl.Toggle(types.SlotCold)

	if h.ctrl.State() != Idle {
		t.Fatalf("state = %v after toggle-off, want Idle", h.ctrl.State())
	}
	if got := len(h.store.History()); got != 0 {
		t.Errorf("history length after start+toggle-off = %d, want 0", got)
	}
}

func TestJournalFinishAppendsHistory(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SetLevel(3) // quick journal default

	h.ctrl.Toggle(types.SlotJournal)
	h.advance(121 * time.Second)

	hist := h.store.History()
	if len(hist) != 1 {
		t.Fatalf("expected history entry after journal finish, got %d", len(hist))
	}
	if hist[0].Slot != types.SlotJournal || hist[0].Duration != 120 {
		t.Errorf("entry = %+v, want journal/120s", hist[0])
	}
}

func TestSessionFinishPublishesEvent(t *testing.T) {
	h := newHarness(t)
	ch := h.bus.Subscribe()

	h.ctrl.Toggle(types.SlotCold) // 60s at level 1
	h.advance(61 * time.Second)

	if h.ctrl.State() != Idle {
		t.Fatalf("state = %v after countdown elapsed, want Idle", h.ctrl.State())
	}
	var finished bool
	for _, ev := range drain(ch) {
		if f, ok := ev.(types.SessionFinished); ok {
			finished = true
			if f.Slot != types.SlotCold {
				t.Errorf("finished slot = %v, want cold", f.Slot)
			}
		}
	}
	if !finished {
		t.Error("no SessionFinished event published")
	}
}

func TestJournalSavedOnFinishOnly(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SetLevel(3) // quick class, 120s

	h.ctrl.Toggle(types.SlotJournal)
	if !h.ctrl.EditorEnabled() {
		t.Fatal("editor not enabled while journal runs")
	}
	h.ctrl.SetDraftLabel("calm")
	h.ctrl.SetDraftText("three small words")

	if got := len(h.store.Journal()); got != 0 {
		t.Fatalf("journal persisted before finish: %d entries", got)
	}

	h.advance(121 * time.Second)

	entries := h.store.Journal()
	if len(entries) != 1 {
		t.Fatalf("expected 1 saved entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Label != "calm" || e.Text != "three small words" || e.Words != 3 {
		t.Errorf("entry = %+v", e)
	}
	if e.Mode != types.ClassQuick || e.Duration != 120 {
		t.Errorf("mode = %v dur = %d, want quick/120", e.Mode, e.Duration)
	}
	if e.Prompt == "" {
		t.Error("entry has no prompt")
	}
}

func TestJournalStoppedEarlySavesNothing(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SetLevel(3)

	h.ctrl.Toggle(types.SlotJournal)
	h.ctrl.SetDraftText("abandoned")
	h.advance(30 * time.Second)
	h.ctrl.Stop()

	if got := len(h.store.Journal()); got != 0 {
		t.Errorf("journal has %d entries after early stop, want 0", got)
	}
	if got := len(h.store.History()); got != 0 {
		t.Errorf("history has %d entries after early stop, want 0", got)
	}
	if h.ctrl.EditorEnabled() {
		t.Error("editor still enabled after stop")
	}
}

func TestLevelControlsJournalClassDefault(t *testing.T) {
	h := newHarness(t)

	if h.ctrl.Class() != types.ClassFull {
		t.Fatalf("class = %v at level 1, want full", h.ctrl.Class())
	}
	h.ctrl.SetLevel(3)
	if h.ctrl.Class() != types.ClassQuick {
		t.Errorf("class = %v at level 3, want quick", h.ctrl.Class())
	}
	h.ctrl.SetLevel(2)
	if h.ctrl.Class() != types.ClassFull {
		t.Errorf("class = %v back at level 2, want full", h.ctrl.Class())
	}
}

func TestLevelLockedWhileRunning(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Toggle(types.SlotPosture)
	h.ctrl.SetLevel(4)
	if h.ctrl.Level() != 1 {
		t.Errorf("level = %d changed mid-session, want 1", h.ctrl.Level())
	}
}

func TestNatureSlotDrivesTransport(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Toggle(types.SlotNature)
	if h.video.Playing != true {
		t.Error("video not playing after nature start")
	}

	h.ctrl.Stop()
	if h.video.Playing {
		t.Error("video still playing after stop")
	}
}

func TestBreathPacerBeepsWhenUnmuted(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Toggle(types.SlotBreathing)
	h.advance(5 * time.Second)

	if len(h.sink.Beeps) == 0 {
		t.Fatal("no cue beeps during breathing session")
	}
	for _, f := range h.sink.Beeps {
		if f != cue.InhaleHz && f != cue.ExhaleHz {
			t.Errorf("unexpected beep frequency %d", f)
		}
	}
}

func TestBreathPacerSilentWhenMuted(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SetMuted(true)

	h.ctrl.Toggle(types.SlotBreathing)
	h.advance(5 * time.Second)

	if len(h.sink.Beeps) != 0 {
		t.Errorf("got %d beeps while muted, want 0", len(h.sink.Beeps))
	}
}

func TestBreathPhaseAt(t *testing.T) {
	base := time.Unix(1000, 0) // 1000 % 10 == 0, inhale half
	for sec, wantInhale := range map[int]bool{0: true, 4: true, 5: false, 9: false, 10: true} {
		if got := BreathPhaseAt(base.Add(time.Duration(sec) * time.Second)); got != wantInhale {
			t.Errorf("BreathPhaseAt(+%ds) = %v, want %v", sec, got, wantInhale)
		}
	}
}

func TestMilestonePublishedOnStreak(t *testing.T) {
	h := newHarness(t)
	now := h.clock.Now()

	// Six prior consecutive days; today's finish makes seven.
	for daysAgo := 1; daysAgo <= 6; daysAgo++ {
		err := h.store.AppendJournal(types.JournalEntry{
			Timestamp: now.AddDate(0, 0, -daysAgo),
			Text:      "daily",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	ch := h.bus.Subscribe()
	h.ctrl.SetLevel(3)
	h.ctrl.Toggle(types.SlotJournal)
	h.ctrl.SetDraftText("day seven")
	h.advance(121 * time.Second)

	var milestone *types.MilestoneReached
	for _, ev := range drain(ch) {
		if m, ok := ev.(types.MilestoneReached); ok {
			milestone = &m
		}
	}
	if milestone == nil {
		t.Fatal("no MilestoneReached event at streak 7")
	}
	if milestone.Streak != 7 {
		t.Errorf("milestone streak = %d, want 7", milestone.Streak)
	}
}

func TestOnTickReceivesFrames(t *testing.T) {
	h := newHarness(t)
	var snaps []countdown.Snapshot
	h.ctrl.cfg.OnTick = func(s countdown.Snapshot) { snaps = append(snaps, s) }

	h.ctrl.Toggle(types.SlotCold)
	h.advance(2 * time.Second)

	if len(snaps) == 0 {
		t.Fatal("no countdown frames delivered")
	}
	last := snaps[len(snaps)-1]
	if last.Remaining > 60*time.Second || last.Remaining < 57*time.Second {
		t.Errorf("remaining = %v after 2s of a 60s run", last.Remaining)
	}
}
