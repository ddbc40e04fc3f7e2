package sharecard

import (
	"testing"

	"github.com/calmhq/calm-cli/internal/text"
	"github.com/calmhq/calm-cli/internal/types"
)

func TestRenderer_CardDimensions(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	payload := types.SharePayload{
		Variant: types.VariantJournal,
		Stats: types.ShareStats{
			Streak: 7,
			Words:  42,
			Prompt: "What went well today?",
			Label:  "steady",
			Text:   "a few honest lines about the day and what helped",
		},
	}
	img, err := r.Render(payload, "pastel", text.EN.Card)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b := img.Bounds()
	if b.Dx() != CardWidth || b.Dy() != CardHeight {
		t.Errorf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), CardWidth, CardHeight)
	}
}

func TestRenderer_FallbackVariant(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	payload := types.SharePayload{
		Variant: types.VariantFallback,
		Stats: types.ShareStats{
			Prompt: "One relaxed step beats zero.",
			Label:  "I can pause and reset.",
			Step:   "Sip water, drop your shoulders.",
		},
	}
	if _, err := r.Render(payload, "vibrant", text.ID.Card); err != nil {
		t.Errorf("Render(fallback) error = %v", err)
	}
}

func TestRenderer_RejectsEmptyPayload(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(types.SharePayload{Variant: types.VariantNone}, "pastel", text.EN.Card); err == nil {
		t.Error("Render(none) succeeded, want error")
	}
}

func TestPaletteFor_UnknownThemeDefaultsToPastel(t *testing.T) {
	if PaletteFor("neon") != PaletteFor("pastel") {
		t.Error("unknown theme did not fall back to pastel")
	}
}
