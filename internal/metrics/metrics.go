package metrics

import (
	"math"
)

// Frame is what one tick of the effect produced.
type Frame struct {
	T       float64
	Glyphs  int
	Flashes int
	Strokes int
	Fills   int
	Live    int
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type GlyphRate struct {
	name    string
	total   int
	samples int
}

func NewGlyphRate() *GlyphRate { return &GlyphRate{name: "glyphs"} }

func (g *GlyphRate) Name() string { return g.name }

func (g *GlyphRate) Observe(f Frame) {
	g.total += f.Glyphs
	g.samples++
}

func (g *GlyphRate) Value() float64 {
	if g.samples == 0 {
		return 0
	}
	return float64(g.total) / float64(g.samples)
}

func (g *GlyphRate) Reset() {
	g.total = 0
	g.samples = 0
}

type FlashRate struct {
	name    string
	total   int
	samples int
}

func NewFlashRate() *FlashRate { return &FlashRate{name: "flashes"} }

func (r *FlashRate) Name() string { return r.name }

func (r *FlashRate) Observe(f Frame) {
	r.total += f.Flashes
	r.samples++
}

func (r *FlashRate) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.total) / float64(r.samples)
}

func (r *FlashRate) Reset() {
	r.total = 0
	r.samples = 0
}

// BoltLoad tracks the mean and peak number of live bolts.
type BoltLoad struct {
	name    string
	sum     int
	peak    int
	samples int
}

func NewBoltLoad() *BoltLoad { return &BoltLoad{name: "bolts"} }

func (b *BoltLoad) Name() string { return b.name }

func (b *BoltLoad) Observe(f Frame) {
	b.sum += f.Live
	b.peak = max(b.peak, f.Live)
	b.samples++
}

func (b *BoltLoad) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return float64(b.sum) / float64(b.samples)
}

func (b *BoltLoad) Peak() int { return b.peak }

func (b *BoltLoad) Reset() {
	b.sum = 0
	b.peak = 0
	b.samples = 0
}

// FrameRate estimates frames per second from frame times in milliseconds.
type FrameRate struct {
	name    string
	first   float64
	last    float64
	samples int
}

func NewFrameRate() *FrameRate { return &FrameRate{name: "fps"} }

func (r *FrameRate) Name() string { return r.name }

func (r *FrameRate) Observe(f Frame) {
	if r.samples == 0 {
		r.first = f.T
	}
	r.last = f.T
	r.samples++
}

func (r *FrameRate) Value() float64 {
	elapsed := r.last - r.first
	if r.samples < 2 || elapsed <= 0 {
		return 0
	}
	return float64(r.samples-1) / (elapsed / 1000)
}

func (r *FrameRate) Reset() {
	r.first, r.last = 0, 0
	r.samples = 0
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
