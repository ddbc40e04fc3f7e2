package tui

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/calmhq/calm-cli/internal/export"
	"github.com/calmhq/calm-cli/internal/sharecard"
	"github.com/calmhq/calm-cli/internal/types"
)

// scheduleFrame arms the next scheduler heartbeat.
func (m Model) scheduleFrame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

// startEventChannelListener creates a command that listens for file events
func (m Model) startEventChannelListener() tea.Cmd {
	return func() tea.Msg {
		// This will block until an event is received
		return <-m.eventChan
	}
}

// startBusListener forwards the next controller event into the program.
func (m Model) startBusListener() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.busCh
		if !ok {
			return nil
		}
		return busEventMsg{event: ev}
	}
}

// File watching setup
func (m Model) setupFileWatching() tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to create file watcher: %w", err)}
		}

		// Watching the directory rather than the files survives the
		// store's atomic rename writes.
		if err := watcher.Add(m.store.DataDir()); err != nil {
			return errorMsg{err: fmt.Errorf("failed to watch data directory: %w", err)}
		}
		if debugLogger != nil {
			debugLogger.Printf("Watching data directory: %s", m.store.DataDir())
		}

		eventChan := m.eventChan
		journalFile := filepath.Base(m.store.JournalPath())
		histFile := filepath.Base(m.store.HistoryPath())

		go func() {
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}
					if debugLogger != nil {
						debugLogger.Printf("File event: %s %s", event.Op, event.Name)
					}

					base := filepath.Base(event.Name)
					if base != journalFile && base != histFile {
						continue
					}
					go func() {
						time.Sleep(100 * time.Millisecond) // Debounce
						select {
						case eventChan <- journalDataChangedMsg{}:
						default: // Channel full, skip this event
							if debugLogger != nil {
								debugLogger.Printf("Event channel full, skipping journalDataChangedMsg")
							}
						}
					}()

				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					select {
					case eventChan <- errorMsg{err: fmt.Errorf("file watcher error: %w", err)}:
					default: // Channel full, skip this event
					}
				}
			}
		}()

		return fileWatcherSetupMsg{watcher: watcher}
	}
}

// refreshStats reloads the stats panel from disk.
func (m Model) refreshStats() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		msg := statsRefreshedMsg{
			stats:   st.Stats(),
			history: st.History(),
		}
		if last, ok := st.LastJournal(); ok {
			msg.last = &last
		}
		return msg
	}
}

// saveSettings persists the current settings without blocking the UI.
func (m Model) saveSettings() tea.Cmd {
	cfgMgr := m.cfgMgr
	settings := m.settings
	return func() tea.Msg {
		if err := cfgMgr.Save(settings); err != nil {
			return errorMsg{err: err}
		}
		return nil
	}
}

// switchMedium flips the nature slide between video and audio.
func (m Model) switchMedium() tea.Cmd {
	tr := m.tr
	return func() tea.Msg {
		if tr.Medium() == types.MediumVideo {
			tr.SwitchMedium(types.MediumAudio)
		} else {
			tr.SwitchMedium(types.MediumVideo)
		}
		return nil
	}
}

func newShareRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// shareMilestoneCard renders the share card into the data directory and
// puts the caption on the clipboard. Clipboard failure is not fatal.
func (m Model) shareMilestoneCard() tea.Cmd {
	st := m.store
	pack := m.pack
	renderer := m.render
	theme := m.settings.CardTheme
	rng := newShareRand()
	return func() tea.Msg {
		payload := sharecard.BuildPayload(st, pack, rng, types.VariantAuto, nil)
		if payload.Variant == types.VariantNone {
			return errorMsg{err: fmt.Errorf("nothing to share yet")}
		}
		img, err := renderer.Render(payload, theme, pack.Card)
		if err != nil {
			return errorMsg{err: err}
		}

		path := filepath.Join(st.DataDir(), "share-card.png")
		if err := export.WritePNG(path, img); err != nil {
			return errorMsg{err: err}
		}

		caption := pack.Caption(payload.Stats.Streak, payload.Stats.Words)
		_ = export.CopyCaption(caption)

		return cardSavedMsg{path: path}
	}
}

// exportTranscript writes the full journal as text into the data directory.
func (m Model) exportTranscript() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		path := filepath.Join(st.DataDir(), export.TranscriptFilename)
		if err := export.WriteTranscript(path, st.Journal()); err != nil {
			return errorMsg{err: err}
		}
		return cardSavedMsg{path: path}
	}
}
