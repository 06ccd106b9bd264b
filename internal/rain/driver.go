package rain

import (
	"github.com/rs/zerolog"
)

// FrameFunc is a frame callback receiving the current time in milliseconds.
type FrameFunc func(t float64)

// Scheduler arranges for fn to run on the next frame of the host.
type Scheduler interface {
	ScheduleNextFrame(fn FrameFunc)
}

// Stats are the running counters of a Driver.
type Stats struct {
	Frames   int
	Spawned  int
	Expired  int
	Dropped  int
	Live     int
	Resizes  int
	LastTime float64
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for resize and bolt lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithSpawnHook registers fn to be called for every bolt that spawns.
func WithSpawnHook(fn func(*Bolt)) Option {
	return func(d *Driver) { d.hooks = append(d.hooks, fn) }
}

// Driver runs the per-frame fade, draw, spawn and prune cycle of a Field on a
// Surface and reschedules itself after every frame.
type Driver struct {
	field     *Field
	surface   Surface
	scheduler Scheduler
	log       zerolog.Logger
	hooks     []func(*Bolt)

	fontSet bool
	stats   Stats
}

func NewDriver(field *Field, surface Surface, scheduler Scheduler, opts ...Option) *Driver {
	d := &Driver{
		field:     field,
		surface:   surface,
		scheduler: scheduler,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start draws the first frame at time 0.
func (d *Driver) Start() { d.Tick(0) }

// Tick renders one frame at time t and schedules the next one.
func (d *Driver) Tick(t float64) {
	f := d.field
	p := f.params
	d.surface.FillRect(0, 0, f.width, f.height, Black.WithAlpha(p.FadeAlpha))

	if !d.fontSet {
		d.surface.SetFont(Font{Size: p.FontSize, Family: "monospace"}, AlignCenter)
		d.fontSet = true
	}

	for _, c := range f.columns {
		for _, op := range c.Advance(t) {
			d.surface.DrawGlyph(op)
		}
	}

	if b, ok := f.MaybeSpawnBolt(); ok {
		d.stats.Spawned++
		d.log.Debug().
			Float64("start_x", b.start.X).
			Float64("end_x", b.end.X).
			Float64("lifetime", b.lifeTime).
			Msg("bolt spawned")
		for _, hook := range d.hooks {
			hook(b)
		}
	}

	for _, b := range f.Bolts() {
		if op, ok := b.Advance(); ok {
			d.surface.StrokePath(op)
		}
	}
	if n := f.Prune(); n > 0 {
		d.stats.Expired += n
		d.log.Debug().Int("count", n).Msg("bolts expired")
	}

	d.stats.Frames++
	d.stats.LastTime = t
	d.scheduler.ScheduleNextFrame(d.Tick)
}

// Resize rebuilds the field for new surface dimensions. Live bolts are lost
// and counted as dropped.
func (d *Driver) Resize(width, height float64) {
	d.stats.Dropped += len(d.field.bolts)
	d.field.Resize(width, height)
	d.stats.Resizes++
	d.log.Debug().
		Float64("width", width).
		Float64("height", height).
		Int("columns", len(d.field.columns)).
		Msg("field resized")
}

func (d *Driver) Field() *Field { return d.field }

func (d *Driver) Stats() Stats {
	s := d.stats
	s.Live = len(d.field.bolts)
	return s
}
