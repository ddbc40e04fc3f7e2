package sharecard

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/calmhq/calm-cli/internal/scheduler"
	"github.com/calmhq/calm-cli/internal/store"
	"github.com/calmhq/calm-cli/internal/text"
	"github.com/calmhq/calm-cli/internal/types"
)

func newTestStore(t *testing.T) *store.Manager {
	t.Helper()
	return store.NewManager(store.Config{
		DataDir: filepath.Join(t.TempDir(), ".calm"),
		Clock:   scheduler.NewManualClock(time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)),
	})
}

func testRand() *rand.Rand { return rand.New(rand.NewSource(7)) }

func TestBuildPayload_AutoPrefersJournal(t *testing.T) {
	st := newTestStore(t)
	if err := st.AppendJournal(types.JournalEntry{
		Prompt: "What went well today?",
		Label:  "calm",
		Text:   "a good note",
	}); err != nil {
		t.Fatal(err)
	}

	p := BuildPayload(st, &text.EN, testRand(), types.VariantAuto, nil)
	if p.Variant != types.VariantJournal {
		t.Fatalf("variant = %v, want journal", p.Variant)
	}
	if p.Stats.Text != "a good note" || p.Stats.Words != 3 {
		t.Errorf("stats = %+v", p.Stats)
	}
}

func TestBuildPayload_AutoFallsBackWhenEmpty(t *testing.T) {
	st := newTestStore(t)

	p := BuildPayload(st, &text.EN, testRand(), types.VariantAuto, nil)
	if p.Variant != types.VariantFallback {
		t.Fatalf("variant = %v, want fallback", p.Variant)
	}
	if p.Stats.Prompt == "" || p.Stats.Label == "" || p.Stats.Step == "" {
		t.Errorf("fallback stats incomplete: %+v", p.Stats)
	}
}

func TestBuildPayload_JournalVariantNeedsContent(t *testing.T) {
	st := newTestStore(t)

	p := BuildPayload(st, &text.EN, testRand(), types.VariantJournal, nil)
	if p.Variant != types.VariantNone {
		t.Errorf("variant = %v with empty store, want none", p.Variant)
	}

	// A label-only entry still counts as shareable content.
	if err := st.AppendJournal(types.JournalEntry{Label: "hopeful"}); err != nil {
		t.Fatal(err)
	}
	p = BuildPayload(st, &text.EN, testRand(), types.VariantJournal, nil)
	if p.Variant != types.VariantJournal {
		t.Errorf("variant = %v with label-only entry, want journal", p.Variant)
	}
	if p.Stats.Text != "" || p.Stats.Label != "hopeful" {
		t.Errorf("stats = %+v", p.Stats)
	}
}

func TestBuildPayload_BlankFieldsGetPlaceholders(t *testing.T) {
	st := newTestStore(t)
	if err := st.AppendJournal(types.JournalEntry{Text: "only body text"}); err != nil {
		t.Fatal(err)
	}

	p := BuildPayload(st, &text.EN, testRand(), types.VariantJournal, nil)
	if p.Stats.Prompt != "—" || p.Stats.Label != "—" {
		t.Errorf("placeholders missing: prompt=%q label=%q", p.Stats.Prompt, p.Stats.Label)
	}
}

func TestBuildPayload_CurrentDraftOverridesLast(t *testing.T) {
	st := newTestStore(t)
	if err := st.AppendJournal(types.JournalEntry{Text: "saved earlier"}); err != nil {
		t.Fatal(err)
	}

	current := &types.JournalEntry{Prompt: "p", Label: "now", Text: "live draft words"}
	p := BuildPayload(st, &text.EN, testRand(), types.VariantAuto, current)
	if p.Stats.Text != "live draft words" {
		t.Errorf("text = %q, want live draft", p.Stats.Text)
	}
	if p.Stats.Words != 3 {
		t.Errorf("words = %d, want 3 computed from draft text", p.Stats.Words)
	}
}

func TestBuildPayload_ExplicitFallbackIgnoresJournal(t *testing.T) {
	st := newTestStore(t)
	if err := st.AppendJournal(types.JournalEntry{Text: "present"}); err != nil {
		t.Fatal(err)
	}

	p := BuildPayload(st, &text.EN, testRand(), types.VariantFallback, nil)
	if p.Variant != types.VariantFallback {
		t.Errorf("variant = %v, want fallback", p.Variant)
	}
}
