// Package store persists the append-only journal and history logs and
// computes the rolling stats derived from them.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calmhq/calm-cli/internal/events"
	"github.com/calmhq/calm-cli/internal/scheduler"
	"github.com/calmhq/calm-cli/internal/types"
)

// Milestones are the streak values that trigger a celebration.
var Milestones = []int{7, 14, 30}

// Config holds configuration for the store Manager.
type Config struct {
	DataDir string          // Directory for journal.json / hist.json (e.g. ".calm")
	Clock   scheduler.Clock // Injectable clock for streak/window math
	Bus     *events.Bus     // Optional event bus for write-failure events
}

// Manager handles journal and history persistence. Entries are append-only
// and never mutated after write.
type Manager struct {
	config      Config
	mu          sync.RWMutex
	journalFile string
	histFile    string
}

// NewManager creates a store Manager with the given configuration.
func NewManager(config Config) *Manager {
	if config.DataDir == "" {
		config.DataDir = ".calm"
	}
	if config.Clock == nil {
		config.Clock = scheduler.SystemClock{}
	}
	return &Manager{
		config:      config,
		journalFile: filepath.Join(config.DataDir, "journal.json"),
		histFile:    filepath.Join(config.DataDir, "hist.json"),
	}
}

// DataDir returns the directory backing the store.
func (m *Manager) DataDir() string {
	return m.config.DataDir
}

// JournalPath returns the journal file path (watched by the TUI).
func (m *Manager) JournalPath() string { return m.journalFile }

// HistoryPath returns the history file path (watched by the TUI).
func (m *Manager) HistoryPath() string { return m.histFile }

// AppendJournal appends one journal entry. A write failure is reported on
// the bus and returned, but callers treat it as non-fatal: losing a journal
// write never interrupts a session.
func (m *Manager) AppendJournal(entry types.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.config.Clock.Now()
	}
	entry.Words = types.WordCount(entry.Text)

	entries, _ := m.loadJournal()
	entries = append(entries, entry)
	if err := writeJSON(m.config.DataDir, m.journalFile, entries); err != nil {
		m.reportWriteFailure("journal", err)
		return err
	}
	return nil
}

// AppendHistory appends one history entry, same best-effort contract as
// AppendJournal.
func (m *Manager) AppendHistory(entry types.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.config.Clock.Now()
	}

	entries, _ := m.loadHistory()
	entries = append(entries, entry)
	if err := writeJSON(m.config.DataDir, m.histFile, entries); err != nil {
		m.reportWriteFailure("history", err)
		return err
	}
	return nil
}

// Journal returns all journal entries in append order. A missing or corrupt
// file reads as empty.
func (m *Manager) Journal() []types.JournalEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries, _ := m.loadJournal()
	return entries
}

// History returns all history entries in append order.
func (m *Manager) History() []types.HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries, _ := m.loadHistory()
	return entries
}

// LastJournal returns the most recent journal entry.
func (m *Manager) LastJournal() (types.JournalEntry, bool) {
	entries := m.Journal()
	if len(entries) == 0 {
		return types.JournalEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Stats computes the 7-day entry count and the consecutive-day streak.
//
// The streak walks backward from today's local midnight, counting days that
// have at least one entry, and stops at the first missing day. An entry only
// on day-5 therefore yields a streak of zero.
func (m *Manager) Stats() types.Stats {
	entries := m.Journal()
	now := m.config.Clock.Now()

	count7 := 0
	days := make(map[time.Time]bool, len(entries))
	for _, e := range entries {
		if now.Sub(e.Timestamp) <= 7*24*time.Hour && !e.Timestamp.After(now) {
			count7++
		}
		days[midnight(e.Timestamp)] = true
	}

	streak := 0
	for d := midnight(now); days[d]; d = d.AddDate(0, 0, -1) {
		streak++
	}

	return types.Stats{Count7: count7, Streak: streak}
}

// MilestoneHit reports whether the current streak sits on a milestone value.
// There is no "already celebrated" flag: the check re-fires on every finish
// while the streak still equals a milestone.
func (m *Manager) MilestoneHit() (int, bool) {
	streak := m.Stats().Streak
	for _, v := range Milestones {
		if streak == v {
			return streak, true
		}
	}
	return streak, false
}

// Private methods

func (m *Manager) loadJournal() ([]types.JournalEntry, error) {
	var entries []types.JournalEntry
	if err := readJSON(m.journalFile, &entries); err != nil {
		return []types.JournalEntry{}, err
	}
	return entries, nil
}

func (m *Manager) loadHistory() ([]types.HistoryEntry, error) {
	var entries []types.HistoryEntry
	if err := readJSON(m.histFile, &entries); err != nil {
		return []types.HistoryEntry{}, err
	}
	return entries, nil
}

func (m *Manager) reportWriteFailure(kind string, err error) {
	if m.config.Bus != nil {
		m.config.Bus.Publish(types.StoreWriteFailed{Kind: kind, Error: err.Error()})
	}
}

func readJSON(path string, v interface{}) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s corrupted: %w", path, err)
	}
	return nil
}

// writeJSON does an atomic write using a temporary file, the same pattern as
// any other best-effort local persistence in the app.
func writeJSON(dataDir, path string, v interface{}) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// midnight truncates t to local midnight.
func midnight(t time.Time) time.Time {
	y, mo, d := t.Local().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
}
