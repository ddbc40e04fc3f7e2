package types

import (
	"strings"
	"time"
)

// JournalEntry is one saved journaling session. Entries are append-only and
// never mutated after write.
type JournalEntry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"t"`
	Level     int           `json:"lvl"`
	Mode      DurationClass `json:"mode"`
	Prompt    string        `json:"prompt"`
	Label     string        `json:"label"`
	Text      string        `json:"text"`
	Words     int           `json:"words"`
	Duration  int           `json:"dur"`
}

// HistoryEntry records one completed session run.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"t"`
	Level     int       `json:"lvl"`
	Slot      SlotID    `json:"s"`
	Duration  int       `json:"dur"`
}

// Stats summarizes the journal for display and share cards.
type Stats struct {
	Count7 int `json:"count7"` // entries within the last 7*24h
	Streak int `json:"streak"` // consecutive calendar days ending today
}

// WordCount counts whitespace-delimited tokens in the trimmed text.
func WordCount(text string) int {
	return len(strings.Fields(strings.TrimSpace(text)))
}

// ShareVariant tags the content carried by a share payload.
type ShareVariant string

const (
	VariantJournal  ShareVariant = "journal"
	VariantFallback ShareVariant = "fallback"
	VariantNone     ShareVariant = "none"
	VariantAuto     ShareVariant = "auto"
)

// ShareStats is the content block rendered onto a share card.
type ShareStats struct {
	Streak int
	Words  int
	Prompt string
	Label  string
	Text   string
	Step   string
}

// SharePayload is a transient value produced on demand; it is never persisted.
type SharePayload struct {
	Variant ShareVariant
	Stats   ShareStats
}
