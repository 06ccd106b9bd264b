package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/digirain/internal/rain"
)

// fadeFloor is the brightness below which a faded cell is blanked.
const fadeFloor = 0.03

// Cell is one terminal cell of glyph content. Color is premultiplied onto
// black.
type Cell struct {
	Glyph rune
	Color rain.RGBA
}

// CellSurface is a rain.Surface over a grid of terminal cells. A cell is one
// column wide and one glyph line tall, so effect column i lands on terminal
// column i. Strokes go to a braille layer with 2x4 dots per cell.
type CellSurface struct {
	cols, rows   int
	cellW, cellH float64
	cells        []Cell
	strokes      *Canvas
	font         rain.Font
	align        rain.Align
	glyphs       glyphCache
}

func NewCellSurface(cols, rows int, p rain.Params) *CellSurface {
	s := &CellSurface{
		cellW:   p.ColumnWidth(),
		cellH:   p.LineHeight(),
		strokes: NewCanvas(0, 0),
		align:   rain.AlignLeft,
		glyphs:  make(glyphCache),
	}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the grid, dropping everything drawn.
func (s *CellSurface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]Cell, s.cols*s.rows)
	s.strokes.Resize(s.cols, s.rows)
}

// Size returns the grid dimensions in cells.
func (s *CellSurface) Size() (cols, rows int) { return s.cols, s.rows }

// PixelSize returns the surface dimensions in effect coordinates.
func (s *CellSurface) PixelSize() (w, h float64) {
	return float64(s.cols) * s.cellW, float64(s.rows) * s.cellH
}

func (s *CellSurface) Font() (rain.Font, rain.Align) { return s.font, s.align }

func (s *CellSurface) cellRange(x, y, w, h float64) (c0, r0, c1, r1 int) {
	c0 = clampInt(int(math.Floor(x/s.cellW)), 0, s.cols)
	r0 = clampInt(int(math.Floor(y/s.cellH)), 0, s.rows)
	c1 = clampInt(int(math.Ceil((x+w)/s.cellW)), 0, s.cols)
	r1 = clampInt(int(math.Ceil((y+h)/s.cellH)), 0, s.rows)
	return
}

func (s *CellSurface) FillRect(x, y, w, h float64, c rain.RGBA) {
	c0, r0, c1, r1 := s.cellRange(x, y, w, h)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			cell := &s.cells[row*s.cols+col]
			cell.Color = composite(cell.Color, c)
			if brightness(cell.Color) < fadeFloor {
				*cell = Cell{}
			}
			s.strokes.Blend(col, row, c, fadeFloor)
		}
	}
}

func (s *CellSurface) SetFont(f rain.Font, a rain.Align) {
	s.font, s.align = f, a
}

func (s *CellSurface) column(x float64) int {
	v := x / s.cellW
	switch s.align {
	case rain.AlignCenter:
		return int(math.Round(v))
	case rain.AlignRight:
		return int(math.Ceil(v)) - 1
	default:
		return int(math.Floor(v))
	}
}

func (s *CellSurface) DrawGlyph(op rain.GlyphOp) {
	col := s.column(op.X)
	row := int(math.Floor(op.Y / s.cellH))
	if op.Y < 0 || col < 0 || col >= s.cols || row >= s.rows {
		return
	}
	cell := &s.cells[row*s.cols+col]
	cell.Glyph = s.glyphs.narrow(op.Glyph)
	cell.Color = composite(cell.Color, op.Color)
}

// StrokePath rasterizes the path into the braille layer. Line width is not
// representable and is ignored.
func (s *CellSurface) StrokePath(op rain.StrokeOp) {
	if len(op.Path) < 2 {
		return
	}
	dotW, dotH := s.cellW/2, s.cellH/4
	color := func(x, y int) rain.RGBA {
		return op.ColorAt((float64(x)+0.5)*dotW, (float64(y)+0.5)*dotH)
	}
	for i := 1; i < len(op.Path); i++ {
		a, b := op.Path[i-1], op.Path[i]
		s.strokes.DrawLineFunc(
			int(math.Floor(a.X/dotW)), int(math.Floor(a.Y/dotH)),
			int(math.Floor(b.X/dotW)), int(math.Floor(b.Y/dotH)),
			color,
		)
	}
}

// Cell returns what is shown at (col, row): a braille stroke cell if it is at
// least as bright as the glyph under it, else the glyph, else a blank.
func (s *CellSurface) Cell(col, row int) (rune, rain.RGBA) {
	c := s.cells[row*s.cols+col]
	br, bc := s.strokes.Cell(col, row)
	if br != brailleBlank && brightness(bc) >= brightness(c.Color) {
		return br, bc
	}
	if c.Glyph != 0 {
		return c.Glyph, c.Color
	}
	return ' ', rain.RGBA{}
}

// Each calls fn for every cell in row-major order.
func (s *CellSurface) Each(fn func(col, row int, r rune, c rain.RGBA)) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			r, c := s.Cell(col, row)
			fn(col, row, r, c)
		}
	}
}

// Render draws the grid as lines of text tinted by theme. Consecutive cells
// with the same color share one style.
func (s *CellSurface) Render(theme Theme) string {
	var b strings.Builder
	bg := lipgloss.Color(theme.bg.Hex())
	for row := 0; row < s.rows; row++ {
		var (
			run     strings.Builder
			runHex  string
			started bool
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Background(bg)
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < s.cols; col++ {
			r, c := s.Cell(col, row)
			hex := theme.Shade(c).Hex()
			if started && hex != runHex {
				flush()
			}
			runHex, started = hex, true
			run.WriteRune(r)
		}
		flush()
		if row < s.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Plain returns the grid without colors.
func (s *CellSurface) Plain() string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			r, _ := s.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
