package rain

// fixedRand returns the same values on every draw.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) IntN(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

// recorder is a Surface that keeps every call.
type recorder struct {
	fills   []fill
	fonts   []Font
	aligns  []Align
	glyphs  []GlyphOp
	strokes []StrokeOp
}

type fill struct {
	x, y, w, h float64
	c          RGBA
}

func (r *recorder) FillRect(x, y, w, h float64, c RGBA) {
	r.fills = append(r.fills, fill{x, y, w, h, c})
}

func (r *recorder) SetFont(f Font, a Align) {
	r.fonts = append(r.fonts, f)
	r.aligns = append(r.aligns, a)
}

func (r *recorder) DrawGlyph(op GlyphOp)   { r.glyphs = append(r.glyphs, op) }
func (r *recorder) StrokePath(op StrokeOp) { r.strokes = append(r.strokes, op) }
