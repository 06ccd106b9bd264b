package viz

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/san-kum/digirain/internal/rain"
)

func TestCellSurfaceSize(t *testing.T) {
	s := NewCellSurface(100, 50, rain.DefaultParams())
	w, h := s.PixelSize()
	if w != 840 {
		t.Errorf("expected width 840, got %f", w)
	}
	if h < 559.99 || h > 560.01 {
		t.Errorf("expected height 560, got %f", h)
	}

	field := rain.NewField(w, h, rain.DefaultParams(), rain.NewRand(1))
	if len(field.Columns()) != 100 {
		t.Errorf("expected one column per cell, got %d", len(field.Columns()))
	}
}

func TestCellSurfaceColumnMapping(t *testing.T) {
	s := NewCellSurface(100, 10, rain.DefaultParams())
	s.SetFont(rain.Font{Size: 14, Family: "monospace"}, rain.AlignCenter)
	for i := 0; i < 100; i++ {
		s.DrawGlyph(rain.GlyphOp{Glyph: 'ア', X: float64(i) * 14 * 0.6, Y: 5, Color: rain.Green})
	}
	for i := 0; i < 100; i++ {
		r, c := s.Cell(i, 0)
		if r != 'ｱ' {
			t.Fatalf("column %d: expected ｱ, got %q", i, r)
		}
		if c.G != 1 {
			t.Errorf("column %d: expected full green, got %+v", i, c)
		}
	}
}

func TestCellSurfaceRows(t *testing.T) {
	s := NewCellSurface(1, 5, rain.DefaultParams())
	s.SetFont(rain.Font{}, rain.AlignCenter)
	lh := rain.DefaultParams().LineHeight()
	for i, g := range "01234" {
		s.DrawGlyph(rain.GlyphOp{Glyph: g, X: 0, Y: -lh/2 + float64(i)*lh, Color: rain.Green})
	}
	if got := s.Plain(); got != "1\n2\n3\n4\n \n" {
		t.Errorf("unexpected rows %q", got)
	}
}

func TestCellSurfaceFade(t *testing.T) {
	s := NewCellSurface(4, 4, rain.DefaultParams())
	w, h := s.PixelSize()
	s.DrawGlyph(rain.GlyphOp{Glyph: '1', X: 0, Y: 1, Color: rain.Green})

	prev := 1.0
	for i := 0; i < 100; i++ {
		s.FillRect(0, 0, w, h, rain.Black.WithAlpha(0.1))
		_, c := s.Cell(0, 0)
		if c.G > prev {
			t.Fatalf("frame %d: brightness increased", i)
		}
		prev = c.G
	}
	if r, _ := s.Cell(0, 0); r != ' ' {
		t.Errorf("expected faded cell to be blank, got %q", r)
	}
}

func TestCellSurfaceStroke(t *testing.T) {
	s := NewCellSurface(10, 50, rain.DefaultParams())
	op := rain.StrokeOp{
		Path:  []rain.Point{{X: 43, Y: 0}, {X: 43, Y: 560}},
		From:  rain.Point{X: 43, Y: 0},
		To:    rain.Point{X: 43, Y: 560},
		Stops: rain.BoltStops(),
		Width: 2,
	}
	s.StrokePath(op)

	r, c := s.Cell(5, 20)
	if r == ' ' || r < brailleBlank || r > 0x28ff {
		t.Fatalf("expected braille in stroke cell, got %q", r)
	}
	if c.R < 0.5 {
		t.Errorf("expected a white-hot stroke near 40%%, got %+v", c)
	}
	if r, _ := s.Cell(4, 20); r != ' ' {
		t.Errorf("expected neighbouring column to stay blank, got %q", r)
	}
}

func TestCellSurfaceDriven(t *testing.T) {
	s := NewCellSurface(40, 20, rain.DefaultParams())
	w, h := s.PixelSize()
	p := rain.DefaultParams()
	p.SpawnProbability = 0.5
	field := rain.NewField(w, h, p, rain.NewRand(4))
	loop := &rain.Loop{}
	d := rain.NewDriver(field, s, loop)
	d.Start()
	for i := 1; i < 300; i++ {
		loop.Step(float64(i) * 16)
	}

	out := s.Plain()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := runewidth.StringWidth(line); n != 40 {
			t.Errorf("line %d: expected width 40, got %d", i, n)
		}
	}
	if strings.TrimSpace(out) == "" {
		t.Error("expected something on screen")
	}
	if rendered := s.Render(ThemeMatrix); !strings.Contains(rendered, "\n") {
		t.Error("expected multi-line render")
	}
}
