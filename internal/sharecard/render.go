package sharecard

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/calmhq/calm-cli/internal/text"
	"github.com/calmhq/calm-cli/internal/types"
)

const (
	// Card dimensions target a 9:16 story frame.
	CardWidth  = 1080
	CardHeight = 1920

	marginX      = 84
	panelSide    = 48
	panelRadius  = 56
	titleSize    = 56
	bodySize     = 44
	bodyLineH    = 60
	gapTitleBody = 16
	gapSection   = 64
	badgeRadius  = 100
)

const hashtags = "#CalmNow  #2MinuteJournal"

// Renderer draws share cards. The two font weights are parsed once and
// shared across renders.
type Renderer struct {
	bold    *truetype.Font
	regular *truetype.Font
}

func NewRenderer() (*Renderer, error) {
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	return &Renderer{bold: bold, regular: regular}, nil
}

func (r *Renderer) boldFace(size float64) font.Face {
	return truetype.NewFace(r.bold, &truetype.Options{Size: size})
}

func (r *Renderer) regularFace(size float64) font.Face {
	return truetype.NewFace(r.regular, &truetype.Options{Size: size})
}

// Render produces the card image for a payload. VariantNone payloads are
// rejected; the caller decides what "nothing to share" means for its surface.
func (r *Renderer) Render(payload types.SharePayload, theme string, card text.CardStrings) (image.Image, error) {
	if payload.Variant == types.VariantNone {
		return nil, fmt.Errorf("share payload has no content")
	}
	pal := PaletteFor(theme)
	dc := gg.NewContext(CardWidth, CardHeight)

	r.drawBackground(dc, pal)
	panelTop := r.drawHeader(dc, pal, card)
	r.drawPanel(dc, pal, panelTop)
	r.drawContent(dc, pal, payload, card, panelTop)
	r.drawFooter(dc, pal)

	return dc.Image(), nil
}

func (r *Renderer) drawBackground(dc *gg.Context, pal Palette) {
	bg := gg.NewLinearGradient(0, 0, 0, CardHeight)
	bg.AddColorStop(0, pal.Bg1)
	bg.AddColorStop(1, pal.Bg2)
	dc.SetFillStyle(bg)
	dc.DrawRectangle(0, 0, CardWidth, CardHeight)
	dc.Fill()

	drawOrb(dc, 220, 260, 240, pal.Orb1)
	drawOrb(dc, CardWidth-160, 540, 280, pal.Orb2)
}

// drawOrb paints a soft radial glow fading to transparent.
func drawOrb(dc *gg.Context, x, y, radius float64, c color.Color) {
	grad := gg.NewRadialGradient(x, y, 10, x, y, radius)
	grad.AddColorStop(0, c)
	grad.AddColorStop(1, transparent(c))
	dc.SetFillStyle(grad)
	dc.DrawCircle(x, y, radius)
	dc.Fill()
}

func transparent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0}
}

// drawHeader renders the brand line, headline, and subline, shrinking
// each to fit the column. Returns the panel's top edge.
func (r *Renderer) drawHeader(dc *gg.Context, pal Palette, card text.CardStrings) float64 {
	const left = 72.0
	maxW := float64(CardWidth) - left*2

	dc.SetColor(pal.Title)
	dc.SetFontFace(r.boldFace(72))
	dc.DrawString("CalmNow", left, 124)

	// Headline shrinks from 104px to 84px before giving up.
	headSize := 104.0
	dc.SetFontFace(r.boldFace(headSize))
	for w, _ := dc.MeasureString(card.Head); w > maxW && headSize > 84; w, _ = dc.MeasureString(card.Head) {
		headSize -= 4
		dc.SetFontFace(r.boldFace(headSize))
	}
	const titleY = 240.0
	dc.DrawString(card.Head, left, titleY)

	// Subline shrinks from 52px to 40px, then wraps to at most two lines.
	subSize := 52.0
	dc.SetFontFace(r.boldFace(subSize))
	for w, _ := dc.MeasureString(card.Sub); w > maxW && subSize > 40; w, _ = dc.MeasureString(card.Sub) {
		subSize -= 2
		dc.SetFontFace(r.boldFace(subSize))
	}
	subLineH := subSize * 1.18
	subY := titleY + headSize*0.6
	measure := func(s string) float64 { w, _ := dc.MeasureString(s); return w }

	var subBottom float64
	if measure(card.Sub) <= maxW {
		dc.DrawString(card.Sub, left, subY)
		subBottom = subY + subLineH*0.3
	} else {
		y := subY
		for _, line := range Wrap(card.Sub, maxW, 2, measure) {
			dc.DrawString(line, left, y)
			y += subLineH
		}
		subBottom = subY + subLineH
	}
	return subBottom + 60
}

func (r *Renderer) drawPanel(dc *gg.Context, pal Palette, panelTop float64) {
	panelBottom := float64(CardHeight - 220)
	dc.SetColor(pal.Panel)
	dc.DrawRoundedRectangle(panelSide, panelTop,
		float64(CardWidth)-panelSide*2, panelBottom-panelTop, panelRadius)
	dc.Fill()
}

func (r *Renderer) drawContent(dc *gg.Context, pal Palette, payload types.SharePayload, card text.CardStrings, panelTop float64) {
	stats := payload.Stats
	y := panelTop + 120

	// The streak badge is omitted only on a fallback card with no streak.
	if !(payload.Variant == types.VariantFallback && stats.Streak == 0) {
		y = r.drawStreakBadge(dc, pal, card, stats.Streak, y)
	} else {
		y += 20
	}
	y += 32

	maxW := float64(CardWidth) - marginX*2
	measure := func(s string) float64 { w, _ := dc.MeasureString(s); return w }

	section := func(title, body string, maxLines int) {
		dc.SetColor(pal.Title)
		dc.SetFontFace(r.boldFace(titleSize))
		dc.DrawString(title, marginX, y)
		y += titleSize + gapTitleBody

		dc.SetColor(pal.Text)
		dc.SetFontFace(r.regularFace(bodySize))
		lines := Wrap(body, maxW, maxLines, measure)
		for i, line := range lines {
			dc.DrawString(line, marginX, y+float64(i)*bodyLineH)
		}
		if n := len(lines); n > 0 {
			y += float64(n-1) * bodyLineH
		}
		y += bodyLineH + gapSection
	}

	if payload.Variant == types.VariantJournal {
		section(card.Prompt, stats.Prompt, 6)
		section(card.Label, stats.Label, 4)
		if types.WordCount(stats.Text) > 0 {
			section(card.Journal, stats.Text, 12)
		}

		dc.SetColor(pal.Title)
		dc.SetFontFace(r.boldFace(titleSize))
		dc.DrawString(card.Words, marginX, y)
		y += titleSize + gapTitleBody - 10
		r.drawValueChip(dc, fmt.Sprintf("%d", stats.Words), marginX, y)
	} else {
		section(card.Message, stats.Prompt, 5)
		section(card.Affirm, stats.Label, 4)
		section(card.Step, stats.Step, 4)
	}
}

func (r *Renderer) drawStreakBadge(dc *gg.Context, pal Palette, card text.CardStrings, streak int, y float64) float64 {
	cx := float64(CardWidth) / 2
	cy := y + 20

	badge := gg.NewLinearGradient(cx-badgeRadius, cy-badgeRadius, cx+badgeRadius, cy+badgeRadius)
	badge.AddColorStop(0, pal.Bg1)
	badge.AddColorStop(1, pal.Bg2)
	dc.SetFillStyle(badge)
	dc.DrawCircle(cx, cy, badgeRadius)
	dc.Fill()

	dc.SetLineWidth(12)
	dc.SetColor(color.NRGBA{255, 255, 255, 217})
	dc.DrawCircle(cx, cy, badgeRadius)
	dc.Stroke()

	dc.SetColor(pal.Title)
	dc.SetFontFace(r.boldFace(titleSize))
	label := fmt.Sprintf(card.StreakFmt, streak)
	w, _ := dc.MeasureString(label)
	dc.DrawString(label, cx-w/2, cy+18)

	return cy + 120
}

// drawValueChip draws a rounded pill holding a single value.
func (r *Renderer) drawValueChip(dc *gg.Context, value string, x, y float64) {
	const padX, chipH, chipRad = 24.0, 64.0, 16.0
	dc.SetFontFace(r.boldFace(42))
	w, _ := dc.MeasureString(value)

	dc.SetColor(color.NRGBA{15, 23, 42, 15})
	dc.DrawRoundedRectangle(x, y, w+padX*2, chipH, chipRad)
	dc.Fill()

	dc.SetColor(color.NRGBA{15, 23, 42, 255})
	dc.DrawString(value, x+padX, y+chipH-16)
}

func (r *Renderer) drawFooter(dc *gg.Context, pal Palette) {
	cx := float64(CardWidth) / 2
	cy := float64(CardHeight - 140)

	drawOrb(dc, cx, cy, 160, pal.Orb2)
	drawRosette(dc, cx, cy)

	dc.SetColor(color.NRGBA{15, 23, 42, 255})
	dc.SetFontFace(r.boldFace(42))
	w, _ := dc.MeasureString(hashtags)
	dc.DrawString(hashtags, cx-w/2, float64(CardHeight-48))
}

// drawRosette draws the small brand mark, a soft disc with a gradient core.
func drawRosette(dc *gg.Context, x, y float64) {
	const outerR = 44.0

	halo := gg.NewRadialGradient(x, y, 0, x, y, outerR)
	halo.AddColorStop(0, color.NRGBA{56, 189, 248, 46})
	halo.AddColorStop(1, color.NRGBA{134, 239, 172, 46})
	dc.SetFillStyle(halo)
	dc.DrawCircle(x, y, outerR)
	dc.Fill()

	rim := gg.NewRadialGradient(x, y, outerR-18, x, y, outerR)
	rim.AddColorStop(0, color.NRGBA{125, 211, 252, 0})
	rim.AddColorStop(1, color.NRGBA{125, 211, 252, 90})
	dc.SetFillStyle(rim)
	dc.DrawCircle(x, y, outerR)
	dc.Fill()

	const coreR = 14.0
	core := gg.NewLinearGradient(x, y-coreR, x, y+coreR)
	core.AddColorStop(0, hex("#7dd3fc"))
	core.AddColorStop(1, hex("#86efac"))
	dc.SetFillStyle(core)
	dc.DrawCircle(x, y, coreR)
	dc.Fill()
}
