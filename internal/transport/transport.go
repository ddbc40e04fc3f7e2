// Package transport maintains the logical playback clock for media sessions.
//
// Video and audio backends have independent, non-interchangeable playback
// positions. The transport decouples "how long has this exercise run" from
// "which backend is rendering it": switching video<->audio mid-session
// re-seeks the newly active medium to the transport's own clock, so elapsed
// progress survives the switch.
package transport

import (
	"math"
	"time"

	"github.com/calmhq/calm-cli/internal/clients/player"
	"github.com/calmhq/calm-cli/internal/events"
	"github.com/calmhq/calm-cli/internal/scheduler"
	"github.com/calmhq/calm-cli/internal/types"
)

// State is the transport's explicit two-state machine.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Config wires the transport's collaborators.
type Config struct {
	Video     player.Player
	Audio     player.Player
	Scheduler *scheduler.Scheduler
	Bus       *events.Bus // optional
}

// Transport owns the logical media clock. All methods must be called from
// the UI goroutine; the frame step runs on the same goroutine via the
// scheduler, so no locking is needed.
type Transport struct {
	cfg    Config
	state  State
	clock  float64 // elapsed seconds, advances only while Playing
	lastTs time.Time
	medium types.Medium
	task   *scheduler.Task
}

// New creates a stopped transport with the video medium active.
func New(cfg Config) *Transport {
	if cfg.Video == nil {
		cfg.Video = player.NewMockPlayer()
	}
	if cfg.Audio == nil {
		cfg.Audio = player.NewMockPlayer()
	}
	return &Transport{cfg: cfg, medium: types.MediumVideo}
}

// State returns the current transport state.
func (t *Transport) State() State { return t.state }

// Clock returns elapsed seconds on the logical clock.
func (t *Transport) Clock() float64 { return t.clock }

// Medium returns the active rendering medium.
func (t *Transport) Medium() types.Medium { return t.medium }

// Play starts the clock and synchronizes the active medium to it.
// No-op when already playing.
func (t *Transport) Play() {
	if t.state == Playing {
		return
	}
	t.state = Playing
	t.lastTs = t.cfg.Scheduler.Clock().Now()
	t.syncActiveMedium(true)
	t.task = t.cfg.Scheduler.Add(t.step)
	t.publish()
}

// Pause stops the clock and pauses both media. Idempotent pause commands go
// to both backends so a missed earlier command cannot leave one running.
// No-op when not playing.
func (t *Transport) Pause() {
	if t.state != Playing {
		return
	}
	t.state = Stopped
	t.lastTs = time.Time{}
	t.task.Cancel()
	t.task = nil
	t.pauseBoth()
	t.publish()
}

// HardStop unconditionally stops the loop and both media. With resetClock the
// logical clock returns to zero.
func (t *Transport) HardStop(resetClock bool) {
	t.state = Stopped
	t.lastTs = time.Time{}
	t.task.Cancel()
	t.task = nil
	t.pauseBoth()
	if resetClock {
		t.clock = 0
	}
	t.publish()
}

// SwitchMedium pauses the current medium, activates the new one, and re-seeks
// it to the logical clock. If the transport was playing, playback resumes on
// the new medium without resetting the clock.
func (t *Transport) SwitchMedium(m types.Medium) {
	if m == t.medium {
		return
	}
	t.pauseBoth()
	t.medium = m
	t.syncActiveMedium(t.state == Playing)
	t.publish()
}

// Seek moves the logical clock and re-synchronizes the active medium.
func (t *Transport) Seek(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	t.clock = seconds
	t.syncActiveMedium(t.state == Playing)
}

// step advances the clock by the wall-clock delta since the previous frame.
// The state check guards against a stale frame arriving after cancellation.
func (t *Transport) step(now time.Time) scheduler.Status {
	if t.state != Playing {
		return scheduler.Done
	}
	if !t.lastTs.IsZero() {
		t.clock += now.Sub(t.lastTs).Seconds()
	}
	t.lastTs = now
	return scheduler.Continue
}

// syncActiveMedium seeks the active medium to the logical clock and,
// if shouldPlay, starts it. Audio wraps modulo its duration when known, so a
// short ambient loop stays aligned with a long session. Command failures are
// swallowed: the transport's own state is the source of truth and a later
// sync can recover.
func (t *Transport) syncActiveMedium(shouldPlay bool) {
	p := t.active()
	pos := t.clock
	if t.medium == types.MediumAudio {
		if d, ok := t.cfg.Audio.Duration(); ok && d > 0 && !math.IsInf(d, 0) {
			pos = math.Mod(t.clock, d)
		}
	}
	_ = p.Seek(pos)
	if shouldPlay {
		_ = p.Play()
	}
}

func (t *Transport) active() player.Player {
	if t.medium == types.MediumAudio {
		return t.cfg.Audio
	}
	return t.cfg.Video
}

func (t *Transport) pauseBoth() {
	_ = t.cfg.Video.Pause()
	_ = t.cfg.Audio.Pause()
}

func (t *Transport) publish() {
	if t.cfg.Bus != nil {
		t.cfg.Bus.Publish(types.TransportChanged{
			Playing: t.state == Playing,
			Medium:  t.medium,
		})
	}
}
