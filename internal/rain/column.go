package rain

// Column is a single vertical stream of glyphs. Its x never changes; y is the
// position of the leading glyph and grows by speed every advance.
type Column struct {
	x, y          float64
	speed         float64
	fontSize      float64
	lineHeight    float64
	canvasHeight  float64
	flashInterval float64
	lastFlashTime float64
	flashAlpha    float64
	lenMin        int
	lenMax        int

	text   []rune
	glyphs GlyphSet
	rng    Rand
	ops    []GlyphOp
}

// NewColumn creates a column at x with a random text, a random flash interval
// and a starting position somewhere in the canvasHeight above the surface.
func NewColumn(x, canvasHeight, speed float64, p Params, glyphs GlyphSet, rng Rand) *Column {
	c := &Column{
		x:            x,
		y:            rng.Float64()*canvasHeight - canvasHeight,
		speed:        speed,
		fontSize:     p.FontSize,
		lineHeight:   p.LineHeight(),
		canvasHeight: canvasHeight,
		flashAlpha:   p.FlashAlpha,
		lenMin:       p.TextLenMin,
		lenMax:       p.TextLenMax,
		glyphs:       glyphs,
		rng:          rng,
		text:         make([]rune, 0, p.TextLenMax),
		ops:          make([]GlyphOp, 0, p.TextLenMax+1),
	}
	c.generateText()
	c.flashInterval = uniform(rng, p.FlashIntervalMin, p.FlashIntervalMax)
	return c
}

func (c *Column) generateText() {
	n := c.lenMin + c.rng.IntN(c.lenMax-c.lenMin)
	c.text = c.text[:0]
	for range n {
		c.text = append(c.text, c.glyphs.Random(c.rng))
	}
}

// Advance emits the draw instructions for the frame at time t and moves the
// column down. The returned slice is reused by the next call.
//
// Glyph opacity falls linearly from 1 at the head to 0.2 at the tail. Once the
// flash interval has elapsed since the last flicker, one extra bright glyph is
// emitted at a random offset inside the column. A column that falls below the
// canvas gets a new text and restarts fully above the top edge.
func (c *Column) Advance(t float64) []GlyphOp {
	ops := c.ops[:0]
	n := float64(len(c.text))
	y := c.y
	for i, g := range c.text {
		alpha := 1 - (float64(i)/n)*tailFade
		ops = append(ops, GlyphOp{Glyph: g, X: c.x, Y: y, Color: Green.WithAlpha(alpha)})
		y += c.lineHeight
	}

	if t-c.lastFlashTime > c.flashInterval {
		g := c.text[c.rng.IntN(len(c.text))]
		fy := c.y + c.rng.Float64()*n*c.fontSize
		ops = append(ops, GlyphOp{Glyph: g, X: c.x, Y: fy, Color: White.WithAlpha(c.flashAlpha)})
		c.lastFlashTime = t
	}

	c.y += c.speed
	if c.y > c.canvasHeight {
		c.generateText()
		c.y = -float64(len(c.text)) * c.fontSize
	}
	c.ops = ops
	return ops
}

func (c *Column) X() float64             { return c.x }
func (c *Column) Y() float64             { return c.y }
func (c *Column) Speed() float64         { return c.speed }
func (c *Column) Text() string           { return string(c.text) }
func (c *Column) Len() int               { return len(c.text) }
func (c *Column) CanvasHeight() float64  { return c.canvasHeight }
func (c *Column) FlashInterval() float64 { return c.flashInterval }
func (c *Column) LastFlashTime() float64 { return c.lastFlashTime }
