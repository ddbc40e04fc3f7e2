package operations

import (
	"fmt"
	"strings"
	"time"

	"github.com/calmhq/calm-cli/internal/text"
	"github.com/calmhq/calm-cli/internal/types"
)

// SummaryFormat defines how history and journal stats are rendered for
// the summary view and the stats command.
type SummaryFormat struct {
	pack *text.Pack
}

// NewSummaryFormat creates a SummaryFormat for the given language pack.
func NewSummaryFormat(pack *text.Pack) *SummaryFormat {
	if pack == nil {
		pack = &text.EN
	}
	return &SummaryFormat{pack: pack}
}

// FormatHistoryLine renders one session run as a bullet line.
func (f *SummaryFormat) FormatHistoryLine(e types.HistoryEntry) string {
	mins := (e.Duration + 59) / 60
	return fmt.Sprintf("• %s — %s %d, %s %s, %s %d %s",
		e.Timestamp.Format("2006-01-02 15:04"),
		f.pack.LvLabel, e.Level,
		f.pack.SessionWord, e.Slot,
		f.pack.DurWord, mins, f.pack.MinSuffix)
}

// FormatHistoryList renders the newest-first history, capped at limit
// entries. limit <= 0 means everything.
func (f *SummaryFormat) FormatHistoryList(entries []types.HistoryEntry, limit int) string {
	if len(entries) == 0 {
		return "—"
	}
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}

	var b strings.Builder
	for i := 0; i < limit; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.FormatHistoryLine(entries[len(entries)-1-i]))
	}
	return b.String()
}

// FormatStats renders the 7-day count and streak as a single line.
func (f *SummaryFormat) FormatStats(stats types.Stats) string {
	return fmt.Sprintf("7d: %d • %s: %d", stats.Count7, f.pack.StreakLabel, stats.Streak)
}

// FormatLastJournal renders a teaser for the newest journal entry.
func (f *SummaryFormat) FormatLastJournal(e types.JournalEntry) string {
	label := e.Label
	if label == "" {
		label = "—"
	}
	return fmt.Sprintf("%s: %s — “%s” (%s)",
		f.pack.LastJournalLabel, label, teaser(e.Text, 80), f.pack.Words(e.Words))
}

// FormatActivity formats how long ago something happened.
func (f *SummaryFormat) FormatActivity(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return f.FormatDuration(time.Since(t)) + " ago"
}

// FormatDuration formats a duration in a human-readable way.
func (f *SummaryFormat) FormatDuration(duration time.Duration) string {
	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	} else if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	} else {
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
}

// teaser trims text to at most n runes, appending an ellipsis when cut.
func teaser(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
