// Package viz renders the rain effect in a terminal.
//
// The package maps the effect's pixel coordinates onto terminal cells:
//
//   - [CellSurface]: a rain.Surface where each cell is one column wide and one
//     glyph line tall, with a braille layer for lightning strokes
//   - [Canvas]: Braille-based pixel canvas for the stroke layer
//   - [Theme]: color schemes the effect is tinted with
//   - [Model]: the Bubble Tea program used by the tui command
//
// # Key Bindings
//
//	Q, Esc, Ctrl+C - Quit
//
// Wide katakana are folded to their half-width forms so every glyph fits in
// one cell. See [NarrowGlyph].
package viz
