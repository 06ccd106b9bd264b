// Package rain implements the digital rain effect: falling glyph columns with
// flicker and short-lived lightning bolts, driven one frame at a time.
//
// The package is split into entity models and the loop that drives them:
//
//   - [GlyphSet]: the alphabet column text is drawn from
//   - [Column]: one vertical stream of glyphs with its own speed and flicker timer
//   - [Bolt]: a jagged top-to-bottom stroke with a finite lifetime in frames
//   - [Field]: owns all columns and live bolts, rebuilds them on resize
//   - [Driver]: the per-frame loop that fades the surface and draws every entity
//
// Entities never draw directly. They return [GlyphOp] and [StrokeOp] values and
// the [Driver] replays them on a [Surface] supplied by the host.
//
// # Example
//
//	rng := rain.NewRand(42)
//	field := rain.NewField(840, 600, rain.DefaultParams(), rng)
//	loop := &rain.Loop{}
//	d := rain.NewDriver(field, surface, loop)
//	d.Start()
//	for loop.Step(now()) {
//	}
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Hosts must deliver ticks
// and resize notifications from a single goroutine.
package rain
