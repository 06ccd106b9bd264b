package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/digirain/internal/rain"
)

// Theme defines the colors the effect is tinted with in a terminal.
type Theme struct {
	Name       string
	Rain       lipgloss.Color
	Flash      lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color

	rain, flash, bg colorful.Color
}

func newTheme(name, rainHex, flashHex, bgHex, text, muted string) Theme {
	return Theme{
		Name:       name,
		Rain:       lipgloss.Color(rainHex),
		Flash:      lipgloss.Color(flashHex),
		Background: lipgloss.Color(bgHex),
		Text:       lipgloss.Color(text),
		Muted:      lipgloss.Color(muted),
		rain:       mustHex(rainHex),
		flash:      mustHex(flashHex),
		bg:         mustHex(bgHex),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("viz: bad theme color " + s)
	}
	return c
}

// Available themes
var (
	ThemeMatrix = newTheme("matrix", "#00ff00", "#ffffff", "#000000", "#ccffcc", "#338833")
	ThemeIce    = newTheme("ice", "#00b7ff", "#e6f7ff", "#000814", "#cceeff", "#336688")
	ThemeAmber  = newTheme("amber", "#ffb000", "#fff4d6", "#0d0700", "#ffe0a0", "#886022")
	ThemeBlood  = newTheme("blood", "#ff2030", "#ffd6d6", "#0a0000", "#ffc0c0", "#882222")
	ThemeMono   = newTheme("mono", "#c0c0c0", "#ffffff", "#000000", "#ffffff", "#777777")

	DefaultTheme = ThemeMatrix

	Themes = []Theme{
		ThemeMatrix,
		ThemeIce,
		ThemeAmber,
		ThemeBlood,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	if t, ok := LookupTheme(name); ok {
		return t
	}
	return DefaultTheme
}

func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Shade maps a color of the effect onto the theme. The effect only mixes its
// green with white, so brightness and whiteness are enough to place c between
// the theme's rain, flash and background colors.
func (t Theme) Shade(c rain.RGBA) colorful.Color {
	k := brightness(c)
	if k <= 0 {
		return t.bg
	}
	w := min(c.R, c.B) / k
	tint := t.rain.BlendRgb(t.flash, w)
	return t.bg.BlendRgb(tint, min(k, 1)).Clamped()
}

func brightness(c rain.RGBA) float64 {
	return max(c.R, c.G, c.B)
}

// Tint is Shade with c's alpha kept, for surfaces that blend themselves.
func (t Theme) Tint(c rain.RGBA) rain.RGBA {
	s := t.Shade(c)
	return rain.RGBA{R: s.R, G: s.G, B: s.B, A: c.A}
}
