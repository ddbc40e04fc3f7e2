package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/calmhq/calm-cli/internal/export"
	"github.com/calmhq/calm-cli/internal/sharecard"
	"github.com/calmhq/calm-cli/internal/text"
	"github.com/calmhq/calm-cli/internal/types"
)

func newCardCmd() *cobra.Command {
	var (
		variant string
		theme   string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Render a share card PNG from the latest journal entry",
		Long: `Render a 1080x1920 share card PNG. The card carries the latest journal
entry when one exists, or an encouraging fallback message otherwise; the
caption for social posts is copied to the clipboard when available.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardCmd(variant, theme, out)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "auto", "Card content: auto, journal or fallback")
	cmd.Flags().StringVar(&theme, "theme", "", "Color theme: pastel or vibrant (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "share-card.png", "Output PNG path")

	return cmd
}

func runCardCmd(variant, theme, out string) error {
	st, cfgMgr, err := createStore()
	if err != nil {
		return err
	}
	settings, err := cfgMgr.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	pack := text.ForLang(settings.Lang)
	if theme == "" {
		theme = settings.CardTheme
	}

	var v types.ShareVariant
	switch variant {
	case "auto":
		v = types.VariantAuto
	case "journal":
		v = types.VariantJournal
	case "fallback":
		v = types.VariantFallback
	default:
		return fmt.Errorf("unknown variant %q (want auto, journal or fallback)", variant)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	payload := sharecard.BuildPayload(st, pack, rng, v, nil)
	if payload.Variant == types.VariantNone {
		return fmt.Errorf("no journal entry to render; try --variant fallback")
	}

	renderer, err := sharecard.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to prepare renderer: %w", err)
	}
	img, err := renderer.Render(payload, theme, pack.Card)
	if err != nil {
		return fmt.Errorf("failed to render card: %w", err)
	}
	if err := export.WritePNG(out, img); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	caption := pack.Caption(payload.Stats.Streak, payload.Stats.Words)
	// Clipboard copy is best effort; headless terminals often have none.
	if err := export.CopyCaption(caption); err == nil {
		fmt.Println("Caption copied to clipboard.")
	}

	fmt.Printf("Wrote %s\n%s\n", out, caption)
	return nil
}
