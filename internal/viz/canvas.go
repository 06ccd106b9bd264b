package viz

import (
	"github.com/san-kum/digirain/internal/rain"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a braille dot layer. Every cell carries the color its dots are
// shown in, premultiplied onto black.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]rain.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the canvas, dropping all dots.
func (c *Canvas) Resize(w, h int) {
	c.Width, c.Height = max(w, 0), max(h, 0)
	c.Grid = make([][]rune, c.Height)
	c.Colors = make([][]rain.RGBA, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		c.Colors[i] = make([]rain.RGBA, c.Width)
	}
	c.Clear()
}

func (c *Canvas) cellOf(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return col, row, true
}

// SetColor sets the dot at sub-pixel (x, y), the canvas being Width*2 by
// Height*4 dots, and brightens its cell towards col, drawn with col's
// alpha. Dots outside the canvas are ignored.
func (c *Canvas) SetColor(x, y int, col rain.RGBA) {
	cx, cy, ok := c.cellOf(x, y)
	if !ok {
		return
	}
	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	old := c.Colors[cy][cx]
	c.Colors[cy][cx] = rain.RGBA{
		R: max(old.R, col.R*col.A),
		G: max(old.G, col.G*col.A),
		B: max(old.B, col.B*col.A),
		A: 1,
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = rain.RGBA{}
		}
	}
}

// Blend paints a translucent color over one cell. Cells that end up darker
// than floor lose their dots.
func (c *Canvas) Blend(col, row int, over rain.RGBA, floor float64) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	if c.Grid[row][col] == brailleBlank {
		return
	}
	blended := composite(c.Colors[row][col], over)
	if brightness(blended) < floor {
		c.Grid[row][col] = brailleBlank
		c.Colors[row][col] = rain.RGBA{}
		return
	}
	c.Colors[row][col] = blended
}

// Cell returns the braille rune and color of a cell.
func (c *Canvas) Cell(col, row int) (rune, rain.RGBA) {
	return c.Grid[row][col], c.Colors[row][col]
}

// DrawLineFunc draws a Bresenham line whose dots are colored by color.
func (c *Canvas) DrawLineFunc(x0, y0, x1, y1 int, color func(x, y int) rain.RGBA) {
	c.line(x0, y0, x1, y1, func(x, y int) { c.SetColor(x, y, color(x, y)) })
}

func (c *Canvas) line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// composite draws over on top of dst, both on a black background.
func composite(dst, over rain.RGBA) rain.RGBA {
	a := over.A
	return rain.RGBA{
		R: dst.R*(1-a) + over.R*a,
		G: dst.G*(1-a) + over.G*a,
		B: dst.B*(1-a) + over.B*a,
		A: 1,
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
