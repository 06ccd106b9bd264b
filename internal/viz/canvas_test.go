package viz

import (
	"testing"

	"github.com/san-kum/digirain/internal/rain"
)

func TestCanvasSetColor(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetColor(0, 0, rain.Green)
	c.SetColor(1, 3, rain.White.WithAlpha(0.5))
	r, col := c.Cell(0, 0)
	if r != 0x2800|0x1|0x80 {
		t.Errorf("expected dots 1 and 8, got %U", r)
	}
	if col != (rain.RGBA{R: 0.5, G: 1, B: 0.5, A: 1}) {
		t.Errorf("expected brightest component per channel, got %+v", col)
	}

	c.SetColor(-1, 0, rain.Green)
	c.SetColor(100, 100, rain.Green)
	if r, _ := c.Cell(1, 0); r != brailleBlank {
		t.Error("out of range dots should be ignored")
	}
}

func TestCanvasDrawLineFunc(t *testing.T) {
	c := NewCanvas(4, 2)
	calls := 0
	c.DrawLineFunc(0, 0, 7, 7, func(x, y int) rain.RGBA {
		calls++
		return rain.Green
	})
	if calls != 8 {
		t.Errorf("expected 8 dots on the diagonal, got %d", calls)
	}
	for _, cell := range [][2]int{{0, 0}, {0, 1}, {1, 2}, {1, 3}} {
		if r, _ := c.Cell(cell[1], cell[0]); r == brailleBlank {
			t.Errorf("expected dots in row %d col %d", cell[0], cell[1])
		}
	}
	if r, _ := c.Cell(0, 1); r != brailleBlank {
		t.Error("expected cells off the diagonal to stay blank")
	}
	if r, _ := c.Cell(3, 0); r != brailleBlank {
		t.Error("expected cells off the diagonal to stay blank")
	}

	c.Clear()
	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			if r, rgba := c.Cell(col, row); r != brailleBlank || rgba != (rain.RGBA{}) {
				t.Errorf("expected blank cell at %d,%d after Clear", col, row)
			}
		}
	}
}

func TestCanvasBlend(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetColor(0, 0, rain.Green)
	_, col := c.Cell(0, 0)
	if col.G != 1 {
		t.Fatalf("expected full green, got %+v", col)
	}

	fade := rain.Black.WithAlpha(0.5)
	c.Blend(0, 0, fade, fadeFloor)
	_, col = c.Cell(0, 0)
	if col.G != 0.5 {
		t.Errorf("expected half green, got %+v", col)
	}

	for i := 0; i < 10; i++ {
		c.Blend(0, 0, fade, fadeFloor)
	}
	r, _ := c.Cell(0, 0)
	if r != brailleBlank {
		t.Errorf("expected faded cell to be blank, got %U", r)
	}
}
