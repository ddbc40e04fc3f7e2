package sharecard

import (
	"math/rand"
	"strings"

	"github.com/calmhq/calm-cli/internal/store"
	"github.com/calmhq/calm-cli/internal/text"
	"github.com/calmhq/calm-cli/internal/types"
)

// BuildPayload assembles the content block for a card. current, when
// non-nil, stands in for the newest saved entry (the editor's draft).
// Variant auto prefers journal content and degrades to fallback; an
// explicit journal request with nothing to show yields VariantNone.
func BuildPayload(st *store.Manager, pack *text.Pack, rng *rand.Rand, variant types.ShareVariant, current *types.JournalEntry) types.SharePayload {
	stats := st.Stats()

	entry := current
	if entry == nil {
		if last, ok := st.LastJournal(); ok {
			entry = &last
		}
	}

	hasJournal := false
	if entry != nil {
		hasJournal = strings.TrimSpace(entry.Text) != "" ||
			entry.Words > 0 ||
			strings.TrimSpace(entry.Label) != ""
	}

	switch variant {
	case types.VariantFallback:
		return fallbackPayload(stats.Streak, pack, rng)
	case types.VariantJournal:
		if !hasJournal {
			return types.SharePayload{Variant: types.VariantNone}
		}
		return journalPayload(stats.Streak, entry)
	default: // auto
		if !hasJournal {
			return fallbackPayload(stats.Streak, pack, rng)
		}
		return journalPayload(stats.Streak, entry)
	}
}

func journalPayload(streak int, entry *types.JournalEntry) types.SharePayload {
	prompt := entry.Prompt
	if prompt == "" {
		prompt = "—"
	}
	label := entry.Label
	if label == "" {
		label = "—"
	}
	words := entry.Words
	if words == 0 {
		words = types.WordCount(entry.Text)
	}
	return types.SharePayload{
		Variant: types.VariantJournal,
		Stats: types.ShareStats{
			Streak: streak,
			Words:  words,
			Prompt: prompt,
			Label:  label,
			Text:   entry.Text,
		},
	}
}

func fallbackPayload(streak int, pack *text.Pack, rng *rand.Rand) types.SharePayload {
	return types.SharePayload{
		Variant: types.VariantFallback,
		Stats: types.ShareStats{
			Streak: streak,
			Prompt: text.Pick(rng, pack.Fallback.Messages),
			Label:  text.Pick(rng, pack.Fallback.Affirmations),
			Step:   text.Pick(rng, pack.Fallback.Steps),
		},
	}
}
