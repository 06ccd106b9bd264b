package rain

// Katakana is the classic alphabet of the effect: full-width katakana
// followed by the ten ASCII digits.
const Katakana = "アァカサタナハマヤャラワガザダバパイィキシチニヒミリヰギジヂビピウゥクスツヌフムユュルグズブヅプエェケセテネへメレヱゲゼデベペオォコソトノホモヨョロヲゴゾドボポヴッン0123456789"

// GlyphSet is an ordered, read-only set of glyphs.
type GlyphSet []rune

// DefaultGlyphs is the [Katakana] alphabet as a GlyphSet.
var DefaultGlyphs = GlyphSet([]rune(Katakana))

// Random returns a glyph chosen uniformly from the set.
func (g GlyphSet) Random(r Rand) rune {
	return g[r.IntN(len(g))]
}

// Contains reports whether c belongs to the set.
func (g GlyphSet) Contains(c rune) bool {
	for _, x := range g {
		if x == c {
			return true
		}
	}
	return false
}

// String returns the glyphs as a string.
func (g GlyphSet) String() string { return string(g) }
