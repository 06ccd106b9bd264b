package rain

import (
	"math"
	"slices"
)

// Field owns every column and every live bolt of the effect. Columns are laid
// out one per horizontal slot and rebuilt wholesale on resize.
type Field struct {
	width, height float64
	params        Params
	glyphs        GlyphSet
	rng           Rand
	columns       []*Column
	bolts         []*Bolt
}

// NewField creates a field for a width x height surface and populates it.
func NewField(width, height float64, p Params, rng Rand) *Field {
	f := &Field{
		width:  width,
		height: height,
		params: p,
		glyphs: DefaultGlyphs,
		rng:    rng,
	}
	f.Initialize()
	return f
}

// WithGlyphs replaces the alphabet and repopulates the field.
func (f *Field) WithGlyphs(g GlyphSet) *Field {
	if len(g) > 0 {
		f.glyphs = g
		f.Initialize()
	}
	return f
}

// ColumnCount is the number of columns that fit in width.
func (f *Field) ColumnCount() int {
	// The epsilon keeps exact multiples of the column width from rounding down.
	n := math.Floor(f.width/f.params.ColumnWidth() + 1e-9)
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int(n)
}

// Initialize creates the columns for the current dimensions, each with its
// own speed, text and flash interval, and clears the bolt set.
func (f *Field) Initialize() {
	n := f.ColumnCount()
	f.columns = make([]*Column, 0, n)
	for i := range n {
		x := float64(i) * f.params.FontSize * f.params.ColumnWidthRatio
		speed := uniform(f.rng, f.params.SpeedMin, f.params.SpeedMax)
		f.columns = append(f.columns, NewColumn(x, f.height, speed, f.params, f.glyphs, f.rng))
	}
	f.bolts = nil
}

// Resize discards all columns and bolts and repopulates the field for the new
// dimensions. In-flight bolts are dropped rather than carried over.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	f.columns = nil
	f.Initialize()
}

// MaybeSpawnBolt adds a new full-height bolt with the configured probability.
func (f *Field) MaybeSpawnBolt() (*Bolt, bool) {
	if f.rng.Float64() >= f.params.SpawnProbability {
		return nil, false
	}
	b := NewBolt(f.width, f.height, f.params, f.rng)
	f.bolts = append(f.bolts, b)
	return b, true
}

// Bolts returns a snapshot of the live bolts, safe to range over while the
// field is modified.
func (f *Field) Bolts() []*Bolt { return slices.Clone(f.bolts) }

// Prune replaces the live set with its unexpired bolts and returns how many
// were removed. A bolt that has just returned nothing from Advance is expired.
func (f *Field) Prune() int {
	before := len(f.bolts)
	f.bolts = slices.DeleteFunc(f.bolts, (*Bolt).Expired)
	return before - len(f.bolts)
}

func (f *Field) Columns() []*Column { return f.columns }
func (f *Field) LiveBolts() int     { return len(f.bolts) }
func (f *Field) Width() float64     { return f.width }
func (f *Field) Height() float64    { return f.height }
func (f *Field) Params() Params     { return f.params }
func (f *Field) Glyphs() GlyphSet   { return f.glyphs }
