// Package scheduler provides a cooperative frame-driven task scheduler.
//
// Tasks are resumable step functions invoked once per frame. Multiple tasks
// may be live simultaneously (the countdown and the media transport both run
// during a media session), but every step runs on the caller's goroutine so
// ordering is simply call order and no locking is required in task bodies.
package scheduler

import "time"

// Status is returned by a task step to continue or retire the task.
type Status int

const (
	Continue Status = iota
	Done
)

// Step advances a task by one frame. now is the scheduler's clock reading
// for this frame.
type Step func(now time.Time) Status

// Task is a handle to a scheduled step. Cancelling marks the task inactive;
// a step already chosen for the current frame checks the flag before running,
// so a cancelled task can never resurrect itself.
type Task struct {
	step   Step
	active bool
}

// Cancel deregisters the task. Safe to call more than once.
func (t *Task) Cancel() {
	if t != nil {
		t.active = false
	}
}

// Active reports whether the task is still scheduled.
func (t *Task) Active() bool {
	return t != nil && t.active
}

// Scheduler drives registered tasks from an external frame signal.
type Scheduler struct {
	clock Clock
	tasks []*Task
}

// New creates a scheduler reading time from clock. A nil clock defaults to
// the system clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Add registers a step to run on every frame until it returns Done or its
// task is cancelled.
func (s *Scheduler) Add(step Step) *Task {
	t := &Task{step: step, active: true}
	s.tasks = append(s.tasks, t)
	return t
}

// Tick runs one frame: each live task steps once against the same clock
// reading. Tasks that finish or were cancelled are dropped afterwards.
func (s *Scheduler) Tick() {
	now := s.clock.Now()

	// Iterate over a snapshot so steps may add new tasks for the next frame.
	running := s.tasks
	for _, t := range running {
		if !t.active {
			continue
		}
		if t.step(now) == Done {
			t.active = false
		}
	}

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.active {
			live = append(live, t)
		}
	}
	s.tasks = live
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if t.active {
			n++
		}
	}
	return n
}

// Run advances the clock in fixed frame increments until no tasks remain or
// the deadline elapses. Only useful with a ManualClock; the TUI drives Tick
// from its own frame messages instead.
func (s *Scheduler) Run(clock *ManualClock, frame, limit time.Duration) {
	elapsed := time.Duration(0)
	for s.Len() > 0 && elapsed < limit {
		clock.Advance(frame)
		elapsed += frame
		s.Tick()
	}
}
