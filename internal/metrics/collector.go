package metrics

import (
	"github.com/san-kum/digirain/internal/rain"
)

const DefaultHistory = 600

// Collector is a rain.Surface that counts draw calls before forwarding them.
// Hosts call Commit after every frame to close it.
type Collector struct {
	inner   rain.Surface
	current Frame
	metrics []Metric
	history int
	glyphs  []float64
	live    []float64
	frames  int
}

func NewCollector(inner rain.Surface, metrics ...Metric) *Collector {
	if inner == nil {
		inner = rain.NopSurface{}
	}
	if len(metrics) == 0 {
		metrics = Default()
	}
	return &Collector{
		inner:   inner,
		metrics: metrics,
		history: DefaultHistory,
	}
}

// Default returns a fresh set of every built-in metric.
func Default() []Metric {
	return []Metric{NewFrameRate(), NewGlyphRate(), NewFlashRate(), NewBoltLoad()}
}

func (c *Collector) FillRect(x, y, w, h float64, col rain.RGBA) {
	c.current.Fills++
	c.inner.FillRect(x, y, w, h, col)
}

func (c *Collector) SetFont(f rain.Font, a rain.Align) { c.inner.SetFont(f, a) }

func (c *Collector) DrawGlyph(op rain.GlyphOp) {
	if op.Color.R > 0 {
		c.current.Flashes++
	} else {
		c.current.Glyphs++
	}
	c.inner.DrawGlyph(op)
}

func (c *Collector) StrokePath(op rain.StrokeOp) {
	c.current.Strokes++
	c.inner.StrokePath(op)
}

// Commit closes the current frame with the driver's counters and feeds it to
// every metric.
func (c *Collector) Commit(s rain.Stats) Frame {
	f := c.current
	f.T = s.LastTime
	f.Live = s.Live
	for _, m := range c.metrics {
		m.Observe(f)
	}
	c.glyphs = appendBounded(c.glyphs, float64(f.Glyphs), c.history)
	c.live = appendBounded(c.live, float64(f.Live), c.history)
	c.frames++
	c.current = Frame{}
	return f
}

func (c *Collector) Frames() int { return c.frames }

func (c *Collector) Metrics() []Metric { return c.metrics }

// Value returns the named metric rounded to two places, or false.
func (c *Collector) Value(name string) (float64, bool) {
	for _, m := range c.metrics {
		if m.Name() == name {
			return round(m.Value(), 2), true
		}
	}
	return 0, false
}

// GlyphSeries is the per-frame glyph count of the most recent frames.
func (c *Collector) GlyphSeries() []float64 { return c.glyphs }

// LiveSeries is the per-frame live bolt count of the most recent frames.
func (c *Collector) LiveSeries() []float64 { return c.live }

func (c *Collector) Reset() {
	for _, m := range c.metrics {
		m.Reset()
	}
	c.glyphs = c.glyphs[:0]
	c.live = c.live[:0]
	c.frames = 0
	c.current = Frame{}
}

func appendBounded(s []float64, v float64, limit int) []float64 {
	s = append(s, v)
	if len(s) > limit {
		s = s[1:]
	}
	return s
}
