package theme

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed lipgloss colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color
	Success     lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color
	TextOnSuccess lipgloss.Color

	categoryFg map[string]lipgloss.Color
	categoryBg map[string]lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)

	accents := map[string]string{
		"transport":     t.Transport,
		"activity":      t.Activity,
		"sightseeing":   t.Sightseeing,
		"food":          t.Food,
		"shopping":      t.Shopping,
		"accommodation": t.Accommodation,
	}

	fg := make(map[string]lipgloss.Color, len(accents))
	bg := make(map[string]lipgloss.Color, len(accents))
	for cat, hex := range accents {
		fg[cat] = lipgloss.Color(hex)
		bg[cat] = lipgloss.Color(blockBg(hex, t.Bg, isLight))
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Warning:     lipgloss.Color(t.Warning),
		Success:     lipgloss.Color(t.Success),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),
		TextOnSuccess: lipgloss.Color(chooseTextColor(t.Success, t.Bg, t.Fg)),

		categoryFg: fg,
		categoryBg: bg,
	}
}

// CategoryFg returns the accent color for a category name.
func (p *Palette) CategoryFg(category string) lipgloss.Color {
	if c, ok := p.categoryFg[category]; ok {
		return c
	}
	return p.Fg
}

// CategoryBg returns the block background color for a category name.
func (p *Palette) CategoryBg(category string) lipgloss.Color {
	if c, ok := p.categoryBg[category]; ok {
		return c
	}
	return p.BgHighlight
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// blockBg derives an item-block background from a category accent:
// blended towards the base on light themes, darkened on dark themes.
func blockBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

// darkenColor creates a darker version of a hex color for backgrounds,
// with a brightness floor so blocks stay visible on dark themes.
func darkenColor(hex string) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return hex
	}

	factor := 0.45
	r = int(float64(r) * factor)
	g = int(float64(g) * factor)
	b = int(float64(b) * factor)

	minBrightness := 40
	if r < minBrightness {
		r = minBrightness
	}
	if g < minBrightness {
		g = minBrightness
	}
	if b < minBrightness {
		b = minBrightness
	}

	return formatHexColor(r, g, b)
}

// blendColors mixes a towards b by t (0 keeps a, 1 gives b).
func blendColors(a, b string, t float64) string {
	ar, ag, ab, okA := parseHexColor(a)
	br, bg, bb, okB := parseHexColor(b)
	if !okA || !okB {
		return a
	}
	mix := func(x, y int) int {
		return int(float64(x)*(1-t) + float64(y)*t)
	}
	return formatHexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// chooseTextColor picks the higher-contrast text color against a background.
func chooseTextColor(bg, darkText, lightText string) string {
	if relativeLuminance(bg) > 0.55 {
		return darkText
	}
	return lightText
}

// relativeLuminance computes WCAG relative luminance for a hex color.
func relativeLuminance(hex string) float64 {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return 0
	}
	lin := func(c int) float64 {
		v := float64(c) / 255.0
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(r) + 0.7152*lin(g) + 0.0722*lin(b)
}

func parseHexColor(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	n, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	if err != nil || n != 3 {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

func formatHexColor(r, g, b int) string {
	clamp := func(c int) int {
		if c < 0 {
			return 0
		}
		if c > 255 {
			return 255
		}
		return c
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}
