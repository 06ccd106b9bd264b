package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/digirain/internal/rain"
)

func TestGlyphRate(t *testing.T) {
	m := NewGlyphRate()
	m.Observe(Frame{Glyphs: 10})
	m.Observe(Frame{Glyphs: 20})
	if m.Value() != 15 {
		t.Errorf("expected 15 glyphs per frame, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestBoltLoad(t *testing.T) {
	m := NewBoltLoad()
	for _, live := range []int{0, 2, 4, 2} {
		m.Observe(Frame{Live: live})
	}
	if m.Value() != 2 {
		t.Errorf("expected mean 2, got %f", m.Value())
	}
	if m.Peak() != 4 {
		t.Errorf("expected peak 4, got %d", m.Peak())
	}
}

func TestFrameRate(t *testing.T) {
	m := NewFrameRate()
	if m.Value() != 0 {
		t.Error("expected zero without samples")
	}
	for i := 0; i <= 60; i++ {
		m.Observe(Frame{T: float64(i) * 1000 / 30})
	}
	if math.Abs(m.Value()-30) > 1e-6 {
		t.Errorf("expected 30 fps, got %f", m.Value())
	}
}

func TestCollector(t *testing.T) {
	loop := &rain.Loop{}
	p := rain.DefaultParams()
	p.SpawnProbability = 1
	field := rain.NewField(168, 112, p, rain.NewRand(9))
	c := NewCollector(nil)
	d := rain.NewDriver(field, c, loop)

	want := 0
	for _, col := range field.Columns() {
		want += col.Len()
	}

	d.Start()
	f := c.Commit(d.Stats())
	if f.Fills != 1 {
		t.Errorf("expected 1 fill, got %d", f.Fills)
	}
	if f.Glyphs != want {
		t.Errorf("expected %d glyphs, got %d", want, f.Glyphs)
	}
	if f.Strokes != 1 || f.Live != 1 {
		t.Errorf("expected one stroke and one live bolt, got %d and %d", f.Strokes, f.Live)
	}

	for i := 1; i < 20; i++ {
		loop.Step(float64(i) * 16)
		c.Commit(d.Stats())
	}
	if c.Frames() != 20 {
		t.Errorf("expected 20 frames, got %d", c.Frames())
	}
	if len(c.LiveSeries()) != 20 || c.LiveSeries()[19] != 20 {
		t.Errorf("unexpected live series %v", c.LiveSeries())
	}
	if v, ok := c.Value("bolts"); !ok || v <= 0 {
		t.Errorf("expected positive bolt load, got %f", v)
	}
	if _, ok := c.Value("nonexistent"); ok {
		t.Error("expected unknown metric to be missing")
	}

	c.Reset()
	if c.Frames() != 0 || len(c.GlyphSeries()) != 0 {
		t.Error("expected empty collector after reset")
	}
}

func TestCollector_Flashes(t *testing.T) {
	c := NewCollector(nil)
	c.DrawGlyph(rain.GlyphOp{Glyph: 'a', Color: rain.Green})
	c.DrawGlyph(rain.GlyphOp{Glyph: 'b', Color: rain.White.WithAlpha(0.8)})
	f := c.Commit(rain.Stats{})
	if f.Glyphs != 1 || f.Flashes != 1 {
		t.Errorf("expected 1 glyph and 1 flash, got %d and %d", f.Glyphs, f.Flashes)
	}
}

func TestAppendBounded(t *testing.T) {
	var s []float64
	for i := 0; i < 10; i++ {
		s = appendBounded(s, float64(i), 3)
	}
	if len(s) != 3 || s[0] != 7 {
		t.Errorf("expected last three values, got %v", s)
	}
}
