package operations

import (
	"strings"
	"testing"
	"time"

	"github.com/calmhq/calm-cli/internal/text"
	"github.com/calmhq/calm-cli/internal/types"
)

func TestFormatHistoryLine(t *testing.T) {
	f := NewSummaryFormat(&text.EN)
	e := types.HistoryEntry{
		Timestamp: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local),
		Level:     2,
		Slot:      types.SlotNature,
		Duration:  180,
	}

	got := f.FormatHistoryLine(e)
	want := "• 2026-03-10 09:30 — Lv 2, session nature, duration 3 min"
	if got != want {
		t.Errorf("FormatHistoryLine() = %q, want %q", got, want)
	}
}

func TestFormatHistoryLine_RoundsUpPartialMinutes(t *testing.T) {
	f := NewSummaryFormat(&text.EN)
	e := types.HistoryEntry{
		Timestamp: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local),
		Level:     1,
		Slot:      types.SlotCold,
		Duration:  90,
	}
	if got := f.FormatHistoryLine(e); !strings.Contains(got, "duration 2 min") {
		t.Errorf("90s formatted as %q, want 2 min", got)
	}
}

func TestFormatHistoryList(t *testing.T) {
	f := NewSummaryFormat(&text.EN)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	entries := []types.HistoryEntry{
		{Timestamp: base, Level: 1, Slot: types.SlotBreathing, Duration: 120},
		{Timestamp: base.Add(time.Hour), Level: 1, Slot: types.SlotCold, Duration: 60},
		{Timestamp: base.Add(2 * time.Hour), Level: 2, Slot: types.SlotNature, Duration: 180},
	}

	out := f.FormatHistoryList(entries, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "nature") {
		t.Errorf("first line %q, want newest entry first", lines[0])
	}
	if !strings.Contains(lines[1], "cold") {
		t.Errorf("second line %q, want second newest", lines[1])
	}
}

func TestFormatHistoryList_Empty(t *testing.T) {
	f := NewSummaryFormat(&text.EN)
	if got := f.FormatHistoryList(nil, 5); got != "—" {
		t.Errorf("FormatHistoryList(nil) = %q, want em dash placeholder", got)
	}
}

func TestFormatStats(t *testing.T) {
	f := NewSummaryFormat(&text.EN)
	got := f.FormatStats(types.Stats{Count7: 5, Streak: 3})
	if got != "7d: 5 • day streak: 3" {
		t.Errorf("FormatStats() = %q", got)
	}
}

func TestFormatLastJournal_TruncatesLongText(t *testing.T) {
	f := NewSummaryFormat(&text.EN)
	e := types.JournalEntry{
		Label: "calm",
		Text:  strings.Repeat("steady breathing ", 20),
		Words: 40,
	}

	got := f.FormatLastJournal(e)
	if !strings.Contains(got, "…") {
		t.Errorf("long text not truncated: %q", got)
	}
	if !strings.Contains(got, "40 words") {
		t.Errorf("word count missing: %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	f := NewSummaryFormat(&text.EN)
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute"},
		{5 * time.Minute, "5 minutes"},
		{time.Hour, "1 hour"},
		{3 * time.Hour, "3 hours"},
		{24 * time.Hour, "1 day"},
		{72 * time.Hour, "3 days"},
	}
	for _, tt := range tests {
		if got := f.FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
