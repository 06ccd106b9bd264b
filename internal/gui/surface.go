package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/viz"
)

// baselineRatio places a glyph's top edge above its baseline.
const baselineRatio = 0.8

// Surface draws rain operations with raylib into whatever target is active.
type Surface struct {
	font   rl.Font
	size   float32
	align  rain.Align
	theme  viz.Theme
	digits bool
}

// NewSurface creates a surface drawing with font. With digits set, glyphs
// are replaced by digits for fonts that lack katakana.
func NewSurface(font rl.Font, theme viz.Theme, digits bool) *Surface {
	return &Surface{font: font, size: rain.DefaultFontSize, theme: theme, digits: digits}
}

// color tints c with the theme and keeps its alpha.
func (s *Surface) color(c rain.RGBA) rl.Color {
	r, g, b := s.theme.Shade(rain.RGBA{R: c.R, G: c.G, B: c.B, A: 1}).RGB255()
	return rl.NewColor(r, g, b, uint8(c.A*255+0.5))
}

func (s *Surface) FillRect(x, y, w, h float64, c rain.RGBA) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), s.color(c))
}

func (s *Surface) SetFont(f rain.Font, a rain.Align) {
	s.size = float32(f.Size)
	s.align = a
}

func (s *Surface) DrawGlyph(op rain.GlyphOp) {
	g := op.Glyph
	if s.digits {
		g = '0' + g%10
	}
	text := string(g)
	x := float32(op.X)
	switch s.align {
	case rain.AlignCenter:
		x -= rl.MeasureTextEx(s.font, text, s.size, 0).X / 2
	case rain.AlignRight:
		x -= rl.MeasureTextEx(s.font, text, s.size, 0).X
	}
	y := float32(op.Y) - s.size*baselineRatio
	rl.DrawTextEx(s.font, text, rl.NewVector2(x, y), s.size, 0, s.color(op.Color))
}

// StrokePath draws each segment in the gradient color at its midpoint.
func (s *Surface) StrokePath(op rain.StrokeOp) {
	w := float32(op.Width)
	for i := 1; i < len(op.Path); i++ {
		a, b := op.Path[i-1], op.Path[i]
		c := op.ColorAt((a.X+b.X)/2, (a.Y+b.Y)/2)
		rl.DrawLineEx(
			rl.NewVector2(float32(a.X), float32(a.Y)),
			rl.NewVector2(float32(b.X), float32(b.Y)),
			w, s.color(c),
		)
	}
}
