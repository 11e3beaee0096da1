package faderport

// Glyph is one of the sixteen hexadecimal symbols the button matrix can
// approximate (0-9, A-F).
type Glyph uint8

const (
	Glyph0 Glyph = iota
	Glyph1
	Glyph2
	Glyph3
	Glyph4
	Glyph5
	Glyph6
	Glyph7
	Glyph8
	Glyph9
	GlyphA
	GlyphB
	GlyphC
	GlyphD
	GlyphE
	GlyphF

	numGlyphs
)

// glyphPatterns maps each glyph to the buttons that form it, by position
// in the buttons table. Treating the snake-ordered buttons as a crude
// dot matrix, lighting exactly these positions draws the character.
var glyphPatterns = [numGlyphs][]ButtonID{
	Glyph0: {0, 1, 3, 6, 7, 9, 10, 11, 13, 14, 15, 18, 20, 21, 22},
	Glyph1: {1, 4, 5, 9, 12, 17, 19, 20, 21, 22},
	Glyph2: {0, 1, 3, 6, 10, 12, 16, 19, 20, 21, 22, 23},
	Glyph3: {0, 1, 3, 6, 9, 11, 15, 18, 20, 21, 22},
	Glyph4: {1, 4, 5, 7, 9, 11, 12, 13, 14, 17, 20, 21},
	Glyph5: {0, 1, 2, 6, 7, 8, 9, 11, 15, 18, 20, 21, 22},
	Glyph6: {0, 1, 2, 6, 7, 8, 9, 11, 14, 15, 18, 20, 21, 22},
	Glyph7: {3, 4, 5, 6, 10, 12, 16, 23},
	Glyph8: {0, 1, 3, 6, 8, 9, 11, 14, 15, 18, 20, 21, 22},
	Glyph9: {0, 1, 3, 6, 8, 9, 10, 11, 15, 18, 20, 21, 22},
	GlyphA: {4, 5, 7, 10, 11, 12, 13, 14, 15, 18, 19, 23},
	GlyphB: {4, 5, 6, 7, 10, 12, 13, 14, 15, 18, 20, 21, 22, 23},
	GlyphC: {4, 5, 7, 10, 14, 15, 18, 20, 21, 22},
	GlyphD: {4, 5, 6, 7, 10, 11, 14, 15, 18, 20, 21, 22, 23},
	GlyphE: {4, 5, 6, 7, 13, 14, 15, 20, 21, 22, 23},
	GlyphF: {4, 5, 6, 7, 13, 14, 15, 23},
}

// Valid reports whether g is one of the sixteen glyphs.
func (g Glyph) Valid() bool {
	return g < numGlyphs
}

// Pattern returns the buttons lit for this glyph, in table order.
func (g Glyph) Pattern() []ButtonID {
	if !g.Valid() {
		return nil
	}
	out := make([]ButtonID, len(glyphPatterns[g]))
	copy(out, glyphPatterns[g])
	return out
}

func (g Glyph) String() string {
	if !g.Valid() {
		return "?"
	}
	return string("0123456789ABCDEF"[g])
}

// GlyphFromByte converts an ASCII hex digit to its Glyph.
func GlyphFromByte(c byte) (Glyph, error) {
	switch {
	case c >= '0' && c <= '9':
		return Glyph(c - '0'), nil
	case c >= 'A' && c <= 'F':
		return Glyph(c-'A') + GlyphA, nil
	case c >= 'a' && c <= 'f':
		return Glyph(c-'a') + GlyphA, nil
	}
	return 0, &ValidationError{What: "glyph", Value: int(c)}
}

// glyphLit reports whether id is part of g's pattern.
func glyphLit(g Glyph, id ButtonID) bool {
	for _, b := range glyphPatterns[g] {
		if b == id {
			return true
		}
	}
	return false
}
