package rain

import "math"

// RGBA is a non-premultiplied color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

var (
	Black       = RGBA{0, 0, 0, 1}
	Green       = RGBA{0, 1, 0, 1}
	White       = RGBA{1, 1, 1, 1}
	Transparent = RGBA{}
)

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Lerp interpolates every component, alpha included.
func (c RGBA) Lerp(o RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Point is a position in surface coordinates, y growing downwards.
type Point struct {
	X, Y float64
}

// Align is the horizontal anchor of drawn glyphs.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Font describes the text state of a surface.
type Font struct {
	Size   float64
	Family string
}

// GlyphOp draws one glyph with its baseline at Y.
type GlyphOp struct {
	Glyph rune
	X, Y  float64
	Color RGBA
}

// GradientStop is one color stop of a linear gradient.
type GradientStop struct {
	Offset float64
	Color  RGBA
}

// StrokeOp strokes an open polyline with a linear gradient running from From
// to To. Path is only valid until the entity that produced it advances again.
type StrokeOp struct {
	Path     []Point
	From, To Point
	Stops    []GradientStop
	Width    float64
}

// ColorAt evaluates the gradient at (x, y) by projecting the point onto the
// From-To axis. Positions outside the axis take the nearest end stop.
func (s StrokeOp) ColorAt(x, y float64) RGBA {
	dx, dy := s.To.X-s.From.X, s.To.Y-s.From.Y
	l2 := dx*dx + dy*dy
	t := 0.0
	if l2 > 0 {
		t = ((x-s.From.X)*dx + (y-s.From.Y)*dy) / l2
	}
	return GradientAt(s.Stops, t)
}

// GradientAt interpolates stops (sorted by offset) at t.
func GradientAt(stops []GradientStop, t float64) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	t = math.Max(0, math.Min(1, t))
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return a.Color.Lerp(b.Color, (t-a.Offset)/span)
	}
	return stops[len(stops)-1].Color
}

// Surface is the drawing capability a host provides.
type Surface interface {
	// FillRect paints a possibly translucent rectangle over existing content.
	FillRect(x, y, w, h float64, c RGBA)
	SetFont(f Font, a Align)
	DrawGlyph(op GlyphOp)
	StrokePath(op StrokeOp)
}

// NopSurface discards every draw call.
type NopSurface struct{}

func (NopSurface) FillRect(x, y, w, h float64, c RGBA) {}
func (NopSurface) SetFont(f Font, a Align)             {}
func (NopSurface) DrawGlyph(op GlyphOp)                {}
func (NopSurface) StrokePath(op StrokeOp)              {}
