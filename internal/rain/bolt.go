package rain

// boltStops is the green, white-hot, green gradient every bolt is stroked with.
var boltStops = []GradientStop{
	{Offset: 0, Color: Green.WithAlpha(0)},
	{Offset: 0.2, Color: Green},
	{Offset: 0.4, Color: White},
	{Offset: 0.6, Color: Green},
	{Offset: 1, Color: Green.WithAlpha(0)},
}

// BoltStops returns a copy of the bolt gradient.
func BoltStops() []GradientStop {
	return append([]GradientStop(nil), boltStops...)
}

// Bolt is a lightning bolt spanning the surface from y=0 to its height. Its
// path is regenerated on every draw so it flickers while alive.
type Bolt struct {
	start, end Point
	lifeTime   float64
	age        int

	stepX     float64
	stepYMin  float64
	stepYMax  float64
	lineWidth float64
	rng       Rand
	path      []Point
}

// NewBolt creates a bolt from a random point on the top edge to a random point
// on the bottom edge of a width x height surface.
func NewBolt(width, height float64, p Params, rng Rand) *Bolt {
	b := &Bolt{
		stepX:     p.BoltStepX,
		stepYMin:  p.BoltStepYMin,
		stepYMax:  p.BoltStepYMax,
		lineWidth: p.BoltLineWidth,
		rng:       rng,
	}
	b.start = Point{X: rng.Float64() * width, Y: 0}
	b.end = Point{X: rng.Float64() * width, Y: height}
	b.lifeTime = uniform(rng, p.BoltLifeMin, p.BoltLifeMax)
	return b
}

// Advance returns the stroke for this frame and ages the bolt by one. It
// returns false, without drawing, once the bolt has outlived its lifetime.
func (b *Bolt) Advance() (StrokeOp, bool) {
	if b.Expired() {
		return StrokeOp{}, false
	}
	path := append(b.path[:0], b.start)
	x, y := b.start.X, b.start.Y
	for y < b.end.Y {
		x += uniform(b.rng, -b.stepX, b.stepX)
		y += uniform(b.rng, b.stepYMin, b.stepYMax)
		path = append(path, Point{X: x, Y: y})
	}
	b.path = path
	b.age++
	return StrokeOp{
		Path:  path,
		From:  b.start,
		To:    b.end,
		Stops: boltStops,
		Width: b.lineWidth,
	}, true
}

// Expired reports whether the bolt has been drawn more than its lifetime.
func (b *Bolt) Expired() bool { return float64(b.age) > b.lifeTime }

func (b *Bolt) Start() Point      { return b.start }
func (b *Bolt) End() Point        { return b.end }
func (b *Bolt) Age() int          { return b.age }
func (b *Bolt) LifeTime() float64 { return b.lifeTime }
