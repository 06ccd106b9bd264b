package viz

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NarrowGlyph returns a single-cell form of r. Voiced kana lose their mark
// and full-width kana become half-width. Glyphs with no narrow form fall back
// to a digit derived from the rune.
func NarrowGlyph(r rune) rune {
	base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	n, _ := utf8.DecodeRuneInString(width.Narrow.String(string(base)))
	if n != utf8.RuneError && runewidth.RuneWidth(n) == 1 {
		return n
	}
	return '0' + r%10
}

// glyphCache memoizes NarrowGlyph for one surface.
type glyphCache map[rune]rune

func (c glyphCache) narrow(r rune) rune {
	if n, ok := c[r]; ok {
		return n
	}
	n := NarrowGlyph(r)
	c[r] = n
	return n
}
