// Package session implements the exercise state machine that ties the
// countdown, transport, breath pacer, and store together.
package session

import (
	"math/rand"
	"time"

	"github.com/calmhq/calm-cli/internal/clients/cue"
	"github.com/calmhq/calm-cli/internal/countdown"
	"github.com/calmhq/calm-cli/internal/events"
	"github.com/calmhq/calm-cli/internal/scheduler"
	"github.com/calmhq/calm-cli/internal/store"
	"github.com/calmhq/calm-cli/internal/transport"
	"github.com/calmhq/calm-cli/internal/types"
)

// State is the controller's lifecycle phase.
type State int

const (
	Idle State = iota
	Running
)

// Per-slot session lengths in seconds, indexed by level 1..4. The journal
// slot is absent here; its length comes from the duration class instead.
var durations = map[types.SlotID][4]int{
	types.SlotBreathing: {120, 240, 360, 360},
	types.SlotPosture:   {120, 150, 180, 180},
	types.SlotNature:    {150, 180, 180, 210},
	types.SlotMuscle:    {120, 120, 150, 150},
	types.SlotCold:      {60, 60, 90, 90},
}

// DefaultDuration applies when a slot/level pair has no table entry.
const DefaultDuration = 120 * time.Second

// BreathPeriod is the full inhale+exhale cycle of the pacer.
const BreathPeriod = 10 * time.Second

// Draft is the journal editor's in-progress content.
type Draft struct {
	Prompt string
	Label  string
	Text   string
}

// Config wires the controller's collaborators. Zero-value fields get
// working defaults so tests can construct only what they exercise.
type Config struct {
	Store     *store.Manager
	Transport *transport.Transport
	Scheduler *scheduler.Scheduler
	Bus       *events.Bus
	Clock     scheduler.Clock
	Cue       cue.Sink
	Prompts   []string
	Rand      *rand.Rand

	// OnTick receives every countdown frame. Discrete transitions go
	// through the bus; the per-frame stream stays a direct callback so
	// it cannot be dropped under load.
	OnTick func(countdown.Snapshot)
	// OnPhase fires when the breath pacer flips between inhale and exhale.
	OnPhase func(inhale bool)
}

// Controller runs at most one session at a time. While a session runs,
// starting any other slot is ignored; starting the same slot stops it.
type Controller struct {
	cfg Config

	state State
	slot  types.SlotID
	level int
	muted bool
	class types.DurationClass

	engine *countdown.Engine
	breath *scheduler.Task
	draft  Draft
}

func New(cfg Config) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = scheduler.SystemClock{}
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = scheduler.New(cfg.Clock)
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c := &Controller{
		cfg:   cfg,
		level: 1,
		class: types.ClassFull,
	}
	c.engine = countdown.New(cfg.Scheduler, c.tick, c.finish)
	c.ShufflePrompt()
	return c
}

func (c *Controller) State() State               { return c.state }
func (c *Controller) Slot() types.SlotID         { return c.slot }
func (c *Controller) Level() int                 { return c.level }
func (c *Controller) Muted() bool                { return c.muted }
func (c *Controller) Class() types.DurationClass { return c.class }
func (c *Controller) Draft() Draft               { return c.draft }

// DurationFor returns the session length for a slot at the given level.
func DurationFor(slot types.SlotID, level int, class types.DurationClass) time.Duration {
	if slot == types.SlotJournal {
		return time.Duration(class.Seconds()) * time.Second
	}
	table, ok := durations[slot]
	if !ok || level < 1 || level > len(table) {
		return DefaultDuration
	}
	return time.Duration(table[level-1]) * time.Second
}

// SetLevel changes the difficulty level while idle. Raising the level to 3
// or above flips the journal default to the quick class.
func (c *Controller) SetLevel(level int) {
	if c.state != Idle {
		return
	}
	if level < 1 {
		level = 1
	}
	if level > 4 {
		level = 4
	}
	c.level = level
	if level >= 3 {
		c.class = types.ClassQuick
	} else {
		c.class = types.ClassFull
	}
}

// SetMuted toggles the breath cue. Takes effect mid-session.
func (c *Controller) SetMuted(muted bool) { c.muted = muted }

// SetClass picks the journal session length. Ignored while running.
func (c *Controller) SetClass(class types.DurationClass) {
	if c.state != Idle {
		return
	}
	c.class = class
}

// ShufflePrompt replaces the journal prompt with a random one.
func (c *Controller) ShufflePrompt() {
	if len(c.cfg.Prompts) == 0 {
		return
	}
	c.draft.Prompt = c.cfg.Prompts[c.cfg.Rand.Intn(len(c.cfg.Prompts))]
}

// SetDraftLabel records the emotion label while the journal runs.
func (c *Controller) SetDraftLabel(label string) {
	if c.state == Running && c.slot == types.SlotJournal {
		c.draft.Label = label
	}
}

// SetDraftText records the journal body while the journal runs.
func (c *Controller) SetDraftText(text string) {
	if c.state == Running && c.slot == types.SlotJournal {
		c.draft.Text = text
	}
}

// EditorEnabled reports whether the journal editor accepts input.
func (c *Controller) EditorEnabled() bool {
	return c.state == Running && c.slot == types.SlotJournal
}

// Toggle starts the slot, or stops it if it is the one already running.
// A different running slot locks the request out entirely.
func (c *Controller) Toggle(slot types.SlotID) {
	if !slot.Valid() {
		return
	}
	if c.state == Running {
		if c.slot == slot {
			c.Stop()
		}
		return
	}
	c.start(slot)
}

func (c *Controller) start(slot types.SlotID) {
	c.state = Running
	c.slot = slot
	dur := DurationFor(slot, c.level, c.class)

	switch {
	case slot == types.SlotBreathing:
		c.startBreathPacer()
	case slot.HasMedia():
		if c.cfg.Transport != nil {
			c.cfg.Transport.HardStop(true)
			c.cfg.Transport.Play()
		}
	case slot == types.SlotJournal:
		c.draft.Label = ""
		c.draft.Text = ""
		if c.draft.Prompt == "" {
			c.ShufflePrompt()
		}
	}

	c.engine.Start(dur)

	c.publish(types.SessionStarted{Slot: slot, Level: c.level, Duration: int(dur.Seconds())})
}

// Stop cancels the running session without recording a finish.
func (c *Controller) Stop() {
	if c.state != Running {
		return
	}
	slot := c.slot
	c.teardown()
	c.publish(types.SessionStopped{Slot: slot})
}

func (c *Controller) teardown() {
	c.engine.Cancel()
	c.breath.Cancel()
	c.breath = nil
	if c.cfg.Transport != nil {
		c.cfg.Transport.HardStop(true)
	}
	c.state = Idle
}

func (c *Controller) finish() {
	slot := c.slot
	dur := DurationFor(slot, c.level, c.class)
	c.teardown()

	// Only a completed run counts toward history; a toggle-off leaves no
	// record of any kind.
	if c.cfg.Store != nil {
		_ = c.cfg.Store.AppendHistory(types.HistoryEntry{
			Level:    c.level,
			Slot:     slot,
			Duration: int(dur.Seconds()),
		})
	}

	if slot == types.SlotJournal && c.cfg.Store != nil {
		entry := types.JournalEntry{
			Level:    c.level,
			Mode:     c.class,
			Prompt:   c.draft.Prompt,
			Label:    c.draft.Label,
			Text:     c.draft.Text,
			Duration: c.class.Seconds(),
		}
		if err := c.cfg.Store.AppendJournal(entry); err == nil {
			c.publish(types.JournalSaved{Entry: entry})
		}
		if streak, hit := c.cfg.Store.MilestoneHit(); hit {
			c.publish(types.MilestoneReached{Streak: streak})
		}
	}

	c.publish(types.SessionFinished{Slot: slot, Duration: int(dur.Seconds())})
}

func (c *Controller) tick(snap countdown.Snapshot) {
	if c.cfg.OnTick != nil {
		c.cfg.OnTick(snap)
	}
}

// startBreathPacer emits a phase update once per second. The phase is
// derived from the wall clock, not an accumulator, so a long stall cannot
// desync inhale from exhale.
func (c *Controller) startBreathPacer() {
	c.breath.Cancel()
	lastWhole := int64(-1)
	c.breath = c.cfg.Scheduler.Add(func(now time.Time) scheduler.Status {
		whole := now.Unix()
		if whole == lastWhole {
			return scheduler.Continue
		}
		lastWhole = whole
		inhale := BreathPhaseAt(now)
		if c.cfg.OnPhase != nil {
			c.cfg.OnPhase(inhale)
		}
		if !c.muted && c.cfg.Cue != nil {
			freq := cue.ExhaleHz
			if inhale {
				freq = cue.InhaleHz
			}
			_ = c.cfg.Cue.Beep(freq)
		}
		return scheduler.Continue
	})
}

// BreathPhaseAt reports whether the pacer is in its inhale half at t.
// The cycle is anchored to the epoch so every client agrees on the phase.
func BreathPhaseAt(t time.Time) bool {
	period := int64(BreathPeriod / time.Second)
	return t.Unix()%period < period/2
}

func (c *Controller) publish(ev types.Event) {
	if c.cfg.Bus != nil {
		c.cfg.Bus.Publish(ev)
	}
}
