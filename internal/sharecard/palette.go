// Package sharecard builds the 1080x1920 share-card PNG from journal
// content or the fallback pools.
package sharecard

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is one card color theme. Panel carries its own alpha; every
// other entry is opaque.
type Palette struct {
	Bg1   color.Color
	Bg2   color.Color
	Orb1  color.Color
	Orb2  color.Color
	Panel color.Color
	Title color.Color
	Text  color.Color
}

func hex(s string) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.Black
	}
	return c
}

func withAlpha(s string, a uint8) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.Black
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

var palettes = map[string]Palette{
	"pastel": {
		Bg1:   hex("#e0f2fe"),
		Bg2:   hex("#dcfce7"),
		Orb1:  hex("#bae6fd"),
		Orb2:  hex("#bbf7d0"),
		Panel: withAlpha("#ffffff", 240),
		Title: hex("#0f172a"),
		Text:  hex("#334155"),
	},
	"vibrant": {
		Bg1:   hex("#7dd3fc"),
		Bg2:   hex("#86efac"),
		Orb1:  hex("#60a5fa"),
		Orb2:  hex("#34d399"),
		Panel: withAlpha("#ffffff", 235),
		Title: hex("#0f172a"),
		Text:  hex("#334155"),
	},
}

// PaletteFor returns the palette for a theme name, defaulting to pastel.
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes["pastel"]
}
