package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/calmhq/calm-cli/internal/clients/cue"
	"github.com/calmhq/calm-cli/internal/clients/player"
	"github.com/calmhq/calm-cli/internal/config"
	"github.com/calmhq/calm-cli/internal/countdown"
	"github.com/calmhq/calm-cli/internal/events"
	"github.com/calmhq/calm-cli/internal/mediacache"
	"github.com/calmhq/calm-cli/internal/operations"
	"github.com/calmhq/calm-cli/internal/scheduler"
	"github.com/calmhq/calm-cli/internal/session"
	"github.com/calmhq/calm-cli/internal/text"
	"github.com/calmhq/calm-cli/internal/transport"
	"github.com/calmhq/calm-cli/internal/types"
)

func newStartCmd() *cobra.Command {
	var (
		level int
		quick bool
		full  bool
		muted bool
		label string
		note  string
	)

	cmd := &cobra.Command{
		Use:   "start [slot]",
		Short: "Run one session headless with a live countdown",
		Long: `Run a single exercise session without the TUI, printing the countdown to
the terminal. The slot is one of: breathing, posture, nature, muscle, cold,
journal (or an index 1-6).

A journal session accepts its entry up front with --label and --note; the
entry is saved when the countdown completes, same as in the TUI. Stopping
early with Ctrl-C discards it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			if quick && full {
				return fmt.Errorf("--quick and --full are mutually exclusive")
			}
			opts := startOptions{
				slot:  slot,
				level: level,
				muted: muted,
				label: label,
				note:  note,
			}
			if quick {
				opts.class = types.ClassQuick
			}
			if full {
				opts.class = types.ClassFull
			}
			return runStartCmd(opts)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", 0, "Intensity level 1-4 (default from config)")
	cmd.Flags().BoolVar(&quick, "quick", false, "Two-minute journal session")
	cmd.Flags().BoolVar(&full, "full", false, "Twelve-minute journal session")
	cmd.Flags().BoolVar(&muted, "muted", false, "Silence the breath pacer tones")
	cmd.Flags().StringVar(&label, "label", "", "Feeling label for the journal entry")
	cmd.Flags().StringVar(&note, "note", "", "Journal entry text")

	return cmd
}

type startOptions struct {
	slot  types.SlotID
	level int
	class types.DurationClass
	muted bool
	label string
	note  string
}

// parseSlot accepts a slot name or a 1-based carousel index.
func parseSlot(arg string) (types.SlotID, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		slot := types.SlotID(n - 1)
		if !slot.Valid() {
			return 0, fmt.Errorf("slot index %d out of range 1-%d", n, types.SlotCount)
		}
		return slot, nil
	}
	for s := types.SlotBreathing; s.Valid(); s++ {
		if s.String() == arg {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown slot %q (want breathing, posture, nature, muscle, cold or journal)", arg)
}

func runStartCmd(opts startOptions) error {
	st, cfgMgr, err := createStore()
	if err != nil {
		return err
	}
	settings, err := cfgMgr.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	pack := text.ForLang(settings.Lang)
	format := operations.NewSummaryFormat(pack)

	clock := scheduler.SystemClock{}
	sched := scheduler.New(clock)
	bus := events.NewBus()
	busCh := bus.Subscribe()

	video := headlessPlayer(st.DataDir(), "mpv-video.sock", true)
	audio := headlessPlayer(st.DataDir(), "mpv-audio.sock", false)
	_ = video.Load(mediacache.NatureVideoURL)
	_ = audio.Load(mediacache.NatureAudioURL)
	tr := transport.New(transport.Config{
		Video:     video,
		Audio:     audio,
		Scheduler: sched,
		Bus:       bus,
	})

	inhale := true
	ctrl := session.New(session.Config{
		Store:     st,
		Transport: tr,
		Scheduler: sched,
		Bus:       bus,
		Clock:     clock,
		Cue:       cue.NewTerminalSink(),
		Prompts:   pack.Prompts,
		OnTick: func(snap countdown.Snapshot) {
			printFrame(opts.slot, pack, snap, inhale)
		},
		OnPhase: func(in bool) { inhale = in },
	})

	level := settings.Level
	if opts.level != 0 {
		level = opts.level
	}
	if level < config.MinLevel || level > config.MaxLevel {
		return fmt.Errorf("level %d out of range %d-%d", level, config.MinLevel, config.MaxLevel)
	}
	ctrl.SetLevel(level)
	ctrl.SetMuted(opts.muted || settings.Muted)
	if opts.class != "" {
		ctrl.SetClass(opts.class)
	}

	dur := session.DurationFor(opts.slot, level, ctrl.Class())
	fmt.Printf("%s — Lv %d, %s\n", pack.SlideTitles[opts.slot], level, format.FormatDuration(dur))

	ctrl.Toggle(opts.slot)
	if opts.slot == types.SlotJournal {
		fmt.Printf("%s\n", ctrl.Draft().Prompt)
		ctrl.SetDraftLabel(opts.label)
		ctrl.SetDraftText(opts.note)
	}

	// Ctrl-C stops the session cleanly so the transport is torn down.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sched.Tick()
		case <-interrupt:
			ctrl.Stop()
			fmt.Printf("\n%s\n", pack.Stop)
			return nil
		case ev := <-busCh:
			switch ev.(type) {
			case types.SessionFinished:
				fmt.Printf("\n%s\n", pack.SummaryTitle)
				if opts.slot == types.SlotJournal {
					if e, ok := st.LastJournal(); ok {
						fmt.Println(format.FormatLastJournal(e))
					}
				}
				fmt.Println(format.FormatStats(st.Stats()))
				return nil
			case types.StoreWriteFailed:
				return fmt.Errorf("failed to save session: %v", ev)
			}
		}
	}
}

// printFrame redraws the countdown line in place.
func printFrame(slot types.SlotID, pack *text.Pack, snap countdown.Snapshot, inhale bool) {
	phase := ""
	if slot == types.SlotBreathing {
		phase = "  " + pack.Exhale
		if inhale {
			phase = "  " + pack.Inhale
		}
	}
	fmt.Printf("\r%s: %s%s   ", pack.TimeLeft, snap.Display, phase)
}

// headlessPlayer mirrors the TUI's player selection: mpv when installed,
// otherwise a silent mock.
func headlessPlayer(dataDir, sock string, videoOut bool) player.Player {
	if !player.MpvAvailable() {
		return player.NewMockPlayer()
	}
	return player.NewMpvPlayer(filepath.Join(dataDir, sock), videoOut)
}
