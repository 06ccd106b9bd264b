package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/digirain/internal/rain"
)

type svgFill struct {
	x, y, w, h float64
	c          rain.RGBA
}

// svgFrame is one recorded frame, in draw order.
type svgFrame struct {
	fills   []svgFill
	font    rain.Font
	align   rain.Align
	glyphs  []rain.GlyphOp
	strokes []rain.StrokeOp
}

// SVGRecorder is a rain.Surface that keeps the draw calls of the last few
// frames and writes them as a single SVG document, oldest frame first.
type SVGRecorder struct {
	width, height int
	keep          int
	tint          func(rain.RGBA) rain.RGBA
	frames        []svgFrame
	cur           svgFrame
}

func NewSVGRecorder(width, height, keep int, tint func(rain.RGBA) rain.RGBA) *SVGRecorder {
	if keep < 1 {
		keep = 1
	}
	if tint == nil {
		tint = func(c rain.RGBA) rain.RGBA { return c }
	}
	return &SVGRecorder{width: width, height: height, keep: keep, tint: tint}
}

func (r *SVGRecorder) FillRect(x, y, w, h float64, c rain.RGBA) {
	r.cur.fills = append(r.cur.fills, svgFill{x, y, w, h, c})
}

func (r *SVGRecorder) SetFont(f rain.Font, a rain.Align) {
	r.cur.font, r.cur.align = f, a
}

func (r *SVGRecorder) DrawGlyph(op rain.GlyphOp) {
	r.cur.glyphs = append(r.cur.glyphs, op)
}

func (r *SVGRecorder) StrokePath(op rain.StrokeOp) {
	op.Path = append([]rain.Point(nil), op.Path...)
	op.Stops = append([]rain.GradientStop(nil), op.Stops...)
	r.cur.strokes = append(r.cur.strokes, op)
}

// EndFrame closes the frame being recorded. The font carries over.
func (r *SVGRecorder) EndFrame() {
	r.frames = append(r.frames, r.cur)
	if len(r.frames) > r.keep {
		r.frames = r.frames[len(r.frames)-r.keep:]
	}
	r.cur = svgFrame{font: r.cur.font, align: r.cur.align}
}

func (r *SVGRecorder) Frames() int { return len(r.frames) }

func (r *SVGRecorder) hex(c rain.RGBA) (string, float64) {
	t := r.tint(c)
	return fmt.Sprintf("#%02x%02x%02x", to8(t.R), to8(t.G), to8(t.B)), t.A
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func anchor(a rain.Align) string {
	switch a {
	case rain.AlignCenter:
		return "middle"
	case rain.AlignRight:
		return "end"
	}
	return "start"
}

// String renders the recorded frames.
func (r *SVGRecorder) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, r.width, r.height, r.width, r.height)

	sb.WriteString("<defs>\n")
	for i, f := range r.frames {
		for j, s := range f.strokes {
			fmt.Fprintf(&sb, `<linearGradient id="g%d-%d" gradientUnits="userSpaceOnUse" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f">
`, i, j, s.From.X, s.From.Y, s.To.X, s.To.Y)
			for _, st := range s.Stops {
				c, a := r.hex(st.Color)
				fmt.Fprintf(&sb, `<stop offset="%.2f" stop-color="%s" stop-opacity="%.2f"/>
`, st.Offset, c, a)
			}
			sb.WriteString("</linearGradient>\n")
		}
	}
	sb.WriteString("</defs>\n")

	bg, _ := r.hex(rain.Black)
	fmt.Fprintf(&sb, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", bg)

	for i, f := range r.frames {
		fmt.Fprintf(&sb, "<g id=\"frame%d\">\n", i)
		for _, fl := range f.fills {
			c, a := r.hex(fl.c)
			fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f"/>
`, fl.x, fl.y, fl.w, fl.h, c, a)
		}
		if len(f.glyphs) > 0 {
			fmt.Fprintf(&sb, "<g font-family=\"%s\" font-size=\"%.1f\" text-anchor=\"%s\">\n",
				html.EscapeString(f.font.Family), f.font.Size, anchor(f.align))
			for _, g := range f.glyphs {
				c, a := r.hex(g.Color)
				fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" fill-opacity="%.2f">%s</text>
`, g.X, g.Y, c, a, html.EscapeString(string(g.Glyph)))
			}
			sb.WriteString("</g>\n")
		}
		for j, s := range f.strokes {
			if len(s.Path) < 2 {
				continue
			}
			fmt.Fprintf(&sb, `<path fill="none" stroke="url(#g%d-%d)" stroke-width="%.1f" d="M`, i, j, s.Width)
			for k, p := range s.Path {
				if k == 0 {
					fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
				} else {
					fmt.Fprintf(&sb, " L%.1f,%.1f", p.X, p.Y)
				}
			}
			sb.WriteString("\"/>\n")
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func (r *SVGRecorder) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// Tee forwards every draw call to each surface in order.
type Tee []rain.Surface

func (t Tee) FillRect(x, y, w, h float64, c rain.RGBA) {
	for _, s := range t {
		s.FillRect(x, y, w, h, c)
	}
}

func (t Tee) SetFont(f rain.Font, a rain.Align) {
	for _, s := range t {
		s.SetFont(f, a)
	}
}

func (t Tee) DrawGlyph(op rain.GlyphOp) {
	for _, s := range t {
		s.DrawGlyph(op)
	}
}

func (t Tee) StrokePath(op rain.StrokeOp) {
	for _, s := range t {
		s.StrokePath(op)
	}
}
