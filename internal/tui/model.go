package tui

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/calmhq/calm-cli/internal/clients/cue"
	"github.com/calmhq/calm-cli/internal/clients/player"
	"github.com/calmhq/calm-cli/internal/config"
	"github.com/calmhq/calm-cli/internal/countdown"
	"github.com/calmhq/calm-cli/internal/events"
	"github.com/calmhq/calm-cli/internal/mediacache"
	"github.com/calmhq/calm-cli/internal/operations"
	"github.com/calmhq/calm-cli/internal/scheduler"
	"github.com/calmhq/calm-cli/internal/session"
	"github.com/calmhq/calm-cli/internal/sharecard"
	"github.com/calmhq/calm-cli/internal/store"
	"github.com/calmhq/calm-cli/internal/text"
	"github.com/calmhq/calm-cli/internal/transport"
	"github.com/calmhq/calm-cli/internal/types"
)

// Global logger for debugging
var debugLogger *log.Logger

// FrameInterval is how often the cooperative scheduler ticks.
const FrameInterval = 100 * time.Millisecond

// Nature-slide media sources. mpv resolves the YouTube URL through yt-dlp;
// the ambient track is a plain MP3 stream.
const (
	natureVideoURL = mediacache.NatureVideoURL
	natureAudioURL = mediacache.NatureAudioURL
)

func init() {
	if os.Getenv("CALM_DEBUG") == "" {
		return
	}
	logFile, err := os.OpenFile("calm-tui-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		debugLogger = log.New(logFile, "[TUI-DEBUG] ", log.LstdFlags|log.Lshortfile)
		debugLogger.Println("=== TUI Debug Session Started ===")
	}
}

// overlayKind selects which full-screen overlay, if any, covers the carousel.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayGratitude
	overlaySummary
	overlayMilestone
)

// editorField tracks focus inside the journal editor.
type editorField int

const (
	fieldLabel editorField = iota
	fieldText
)

// frameSink collects scheduler callbacks fired during a single frame so
// the Update loop can fold them into the model afterwards.
type frameSink struct {
	snap     countdown.Snapshot
	haveSnap bool
	inhale   bool
}

// Model represents the carousel TUI state.
type Model struct {
	ctrl   *session.Controller
	tr     *transport.Transport
	store  *store.Manager
	cfgMgr *config.Manager
	sched  *scheduler.Scheduler
	bus    *events.Bus
	busCh  <-chan types.Event
	pack   *text.Pack
	format *operations.SummaryFormat
	render *sharecard.Renderer
	sink   *frameSink

	settings config.Settings

	fileWatcher *fsnotify.Watcher
	eventChan   chan tea.Msg

	// Carousel position and terminal dimensions.
	idx    int
	width  int
	height int
	ready  bool

	// Live session display state.
	snap   countdown.Snapshot
	inhale bool

	// Journal editor state.
	focus      editorField
	labelInput string
	textInput  string

	// Stats panel, refreshed from disk on change.
	stats       types.Stats
	history     []types.HistoryEntry
	lastJournal *types.JournalEntry
	haveLast    bool

	overlay         overlayKind
	milestoneStreak int

	lastError      string
	successMessage string
}

// Event messages for BubbleTea
type (
	// Scheduler frame heartbeat.
	frameMsg struct{ at time.Time }

	// Immediate events (fsnotify)
	journalDataChangedMsg struct{}

	// Bus events forwarded into the program.
	busEventMsg struct{ event types.Event }

	// Internal events
	statsRefreshedMsg struct {
		stats   types.Stats
		history []types.HistoryEntry
		last    *types.JournalEntry
	}
	errorMsg        struct{ err error }
	clearErrorMsg   struct{}
	clearSuccessMsg struct{}

	// Share flow results
	cardSavedMsg struct{ path string }

	// File watcher setup
	fileWatcherSetupMsg struct{ watcher *fsnotify.Watcher }
)

// NewModel creates a new TUI model wired to real collaborators. Media
// playback degrades to a no-op player when mpv is unavailable.
func NewModel(st *store.Manager, cfgMgr *config.Manager) (*Model, error) {
	settings, err := cfgMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	pack := text.ForLang(settings.Lang)

	clock := scheduler.SystemClock{}
	sched := scheduler.New(clock)
	bus := events.NewBus()

	video := newVideoPlayer(st.DataDir())
	audio := newAudioPlayer(st.DataDir())
	_ = video.Load(natureVideoURL)
	_ = audio.Load(natureAudioURL)
	tr := transport.New(transport.Config{
		Video:     video,
		Audio:     audio,
		Scheduler: sched,
		Bus:       bus,
	})

	sink := &frameSink{}
	ctrl := session.New(session.Config{
		Store:     st,
		Transport: tr,
		Scheduler: sched,
		Bus:       bus,
		Clock:     clock,
		Cue:       cue.NewTerminalSink(),
		Prompts:   pack.Prompts,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		OnTick: func(s countdown.Snapshot) {
			sink.snap = s
			sink.haveSnap = true
		},
		OnPhase: func(inhale bool) {
			sink.inhale = inhale
		},
	})
	ctrl.SetLevel(settings.Level)
	ctrl.SetMuted(settings.Muted)

	renderer, err := sharecard.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare card renderer: %w", err)
	}

	if debugLogger != nil {
		debugLogger.Printf("NewModel: data dir %s, level %d, lang %s", st.DataDir(), settings.Level, settings.Lang)
	}

	return &Model{
		ctrl:      ctrl,
		tr:        tr,
		store:     st,
		cfgMgr:    cfgMgr,
		sched:     sched,
		bus:       bus,
		busCh:     bus.Subscribe(),
		pack:      pack,
		format:    operations.NewSummaryFormat(pack),
		render:    renderer,
		sink:      sink,
		settings:  settings,
		eventChan: make(chan tea.Msg, 100), // Buffered channel for file events
	}, nil
}

// newVideoPlayer returns an mpv-backed player when mpv is installed, and a
// silent mock otherwise so the rest of the app keeps working.
func newVideoPlayer(dataDir string) player.Player {
	if !player.MpvAvailable() {
		return player.NewMockPlayer()
	}
	return player.NewMpvPlayer(filepath.Join(dataDir, "mpv-video.sock"), true)
}

func newAudioPlayer(dataDir string) player.Player {
	if !player.MpvAvailable() {
		return player.NewMockPlayer()
	}
	return player.NewMpvPlayer(filepath.Join(dataDir, "mpv-audio.sock"), false)
}

// Init initializes the TUI model with necessary setup
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.setupFileWatching(),
		m.startEventChannelListener(),
		m.startBusListener(),
		m.scheduleFrame(),
		m.refreshStats(),
	)
}

// Update handles all TUI events and state changes
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case frameMsg:
		m.sched.Tick()
		if m.sink.haveSnap {
			m.snap = m.sink.snap
			m.sink.haveSnap = false
		}
		m.inhale = m.sink.inhale
		return m, m.scheduleFrame()

	case busEventMsg:
		return m.handleBusEvent(msg.event)

	case journalDataChangedMsg:
		return m, tea.Batch(
			m.refreshStats(),
			m.startEventChannelListener(), // Restart listener
		)

	case statsRefreshedMsg:
		m.stats = msg.stats
		m.history = msg.history
		m.lastJournal = msg.last
		m.haveLast = msg.last != nil
		m.ready = true
		return m, nil

	case errorMsg:
		m.lastError = msg.err.Error()
		return m, tea.Batch(
			tea.Tick(3*time.Second, func(time.Time) tea.Msg {
				return clearErrorMsg{}
			}),
			m.startEventChannelListener(),
		)

	case clearErrorMsg:
		m.lastError = ""
		return m, nil

	case clearSuccessMsg:
		m.successMessage = ""
		return m, nil

	case cardSavedMsg:
		m.successMessage = fmt.Sprintf("%s: %s", m.pack.ShareDone, msg.path)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearSuccessMsg{}
		})

	case fileWatcherSetupMsg:
		m.fileWatcher = msg.watcher
		return m, nil
	}

	return m, nil
}

// handleBusEvent folds controller and transport events into the view state.
func (m Model) handleBusEvent(ev types.Event) (tea.Model, tea.Cmd) {
	if debugLogger != nil {
		debugLogger.Printf("bus event: %s", ev.EventType())
	}

	cmds := []tea.Cmd{m.startBusListener()}

	switch ev := ev.(type) {
	case types.SessionStarted:
		m.overlay = overlayNone
		if ev.Slot == types.SlotJournal {
			m.labelInput = ""
			m.textInput = ""
			m.focus = fieldLabel
		}

	case types.SessionFinished:
		if ev.Slot == types.SlotJournal {
			m.overlay = overlaySummary
		} else {
			m.overlay = overlayGratitude
		}
		m.snap = countdown.Snapshot{}
		cmds = append(cmds, m.refreshStats())

	case types.SessionStopped:
		m.snap = countdown.Snapshot{}

	case types.MilestoneReached:
		m.overlay = overlayMilestone
		m.milestoneStreak = ev.Streak

	case types.StoreWriteFailed:
		m.lastError = fmt.Sprintf("write failed (%s): %v", ev.Kind, ev.Error)
		cmds = append(cmds, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearErrorMsg{}
		}))
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.overlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	// While the journal editor is enabled, printable keys belong to it.
	if m.ctrl.EditorEnabled() {
		return m.handleEditorKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "left", "h":
		if m.ctrl.State() == session.Idle && m.idx > 0 {
			m.idx--
		}
	case "right", "l":
		if m.ctrl.State() == session.Idle && m.idx < types.SlotCount-1 {
			m.idx++
		}
	case "1", "2", "3", "4", "5", "6":
		if m.ctrl.State() == session.Idle {
			m.idx = int(msg.String()[0] - '1')
		}

	case " ", "enter":
		m.ctrl.Toggle(types.SlotID(m.idx))

	case "m":
		m.settings.Muted = !m.settings.Muted
		m.ctrl.SetMuted(m.settings.Muted)
		return m, m.saveSettings()

	case "+", "=":
		if m.ctrl.State() == session.Idle && m.settings.Level < config.MaxLevel {
			m.settings.Level++
			m.ctrl.SetLevel(m.settings.Level)
			return m, m.saveSettings()
		}
	case "-":
		if m.ctrl.State() == session.Idle && m.settings.Level > config.MinLevel {
			m.settings.Level--
			m.ctrl.SetLevel(m.settings.Level)
			return m, m.saveSettings()
		}

	case "v":
		if types.SlotID(m.idx) == types.SlotNature {
			return m, m.switchMedium()
		}

	case "s":
		if types.SlotID(m.idx) == types.SlotJournal && m.ctrl.State() == session.Idle {
			m.ctrl.ShufflePrompt()
		}

	case "d":
		if types.SlotID(m.idx) == types.SlotJournal && m.ctrl.State() == session.Idle {
			if m.ctrl.Class() == types.ClassQuick {
				m.ctrl.SetClass(types.ClassFull)
			} else {
				m.ctrl.SetClass(types.ClassQuick)
			}
		}
	}

	return m, nil
}

// handleEditorKey routes keys to the journal editor fields.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.Stop()
		return m, nil

	case tea.KeyTab:
		if m.focus == fieldLabel {
			m.focus = fieldText
		} else {
			m.focus = fieldLabel
		}
		return m, nil

	case tea.KeyBackspace:
		if m.focus == fieldLabel {
			m.labelInput = trimLastRune(m.labelInput)
			m.ctrl.SetDraftLabel(m.labelInput)
		} else {
			m.textInput = trimLastRune(m.textInput)
			m.ctrl.SetDraftText(m.textInput)
		}
		return m, nil

	case tea.KeyEnter:
		if m.focus == fieldText {
			m.textInput += "\n"
			m.ctrl.SetDraftText(m.textInput)
		} else {
			m.focus = fieldText
		}
		return m, nil

	case tea.KeySpace:
		m.insertText(" ")
		return m, nil

	case tea.KeyRunes:
		m.insertText(string(msg.Runes))
		return m, nil
	}

	return m, nil
}

func (m *Model) insertText(s string) {
	if m.focus == fieldLabel {
		m.labelInput += s
		m.ctrl.SetDraftLabel(m.labelInput)
	} else {
		m.textInput += s
		m.ctrl.SetDraftText(m.textInput)
	}
}

func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}

// handleOverlayKey processes input while an overlay covers the carousel.
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayMilestone:
		switch msg.String() {
		case "s":
			m.overlay = overlayNone
			return m, m.shareMilestoneCard()
		case "esc", "q", "enter", " ":
			m.overlay = overlayNone
		}

	case overlaySummary:
		switch msg.String() {
		case "e":
			return m, m.exportTranscript()
		case "r":
			m.overlay = overlayNone
			m.idx = 0
		case "esc", "q", "enter", " ":
			m.overlay = overlayNone
		}

	case overlayGratitude:
		switch msg.String() {
		case "j":
			// Jump straight into a quick journal.
			m.overlay = overlayNone
			m.idx = int(types.SlotJournal)
			m.ctrl.SetClass(types.ClassQuick)
			m.ctrl.Toggle(types.SlotJournal)
		case "esc", "q", "enter", " ":
			m.overlay = overlayNone
		}
	}

	return m, nil
}
