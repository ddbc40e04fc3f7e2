// Package countdown derives a running session's remaining time from a
// deadline timestamp and drives progress display and termination.
package countdown

import (
	"fmt"
	"math"
	"time"

	"github.com/calmhq/calm-cli/internal/scheduler"
)

// Snapshot is pushed to the tick callback once per frame.
type Snapshot struct {
	Remaining time.Duration // never negative
	Progress  float64       // 0..1, clamped
	Display   string        // mm:ss, floor 00:00
}

// Engine counts a single session down to a deadline. The finish callback
// fires exactly once, even if frames keep arriving afterwards.
type Engine struct {
	sched *scheduler.Scheduler

	deadline time.Time
	total    time.Duration
	task     *scheduler.Task
	finished bool

	onTick   func(Snapshot)
	onFinish func()
}

// New creates an idle engine. Callbacks may be nil.
func New(sched *scheduler.Scheduler, onTick func(Snapshot), onFinish func()) *Engine {
	return &Engine{sched: sched, onTick: onTick, onFinish: onFinish}
}

// Start sets deadline = now + d and begins the frame loop. Restarting a
// running engine abandons the previous deadline.
func (e *Engine) Start(d time.Duration) {
	e.Cancel()
	now := e.sched.Clock().Now()
	e.deadline = now.Add(d)
	e.total = d
	e.finished = false
	e.task = e.sched.Add(e.step)
	// Emit an immediate first frame so the display never shows stale state.
	e.emit(now)
}

// Cancel stops the loop without firing finish. Used when a session is
// manually stopped before completion.
func (e *Engine) Cancel() {
	e.task.Cancel()
	e.task = nil
}

// Running reports whether the engine has a live frame loop.
func (e *Engine) Running() bool {
	return e.task.Active()
}

func (e *Engine) step(now time.Time) scheduler.Status {
	if e.finished {
		return scheduler.Done
	}
	if e.emit(now) {
		e.finished = true
		e.task = nil
		if e.onFinish != nil {
			e.onFinish()
		}
		return scheduler.Done
	}
	return scheduler.Continue
}

// emit pushes a snapshot and reports whether the deadline has been reached.
func (e *Engine) emit(now time.Time) bool {
	remaining := e.deadline.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	progress := 1.0
	if e.total > 0 {
		progress = 1 - float64(remaining)/float64(e.total)
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	if e.onTick != nil {
		e.onTick(Snapshot{
			Remaining: remaining,
			Progress:  progress,
			Display:   FormatRemaining(remaining),
		})
	}
	return remaining <= 0
}

// FormatRemaining renders a duration as mm:ss, rounding partial seconds up
// so the display only shows 00:00 when the session is truly over.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
