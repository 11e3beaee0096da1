package faderport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphPatternsInRange(t *testing.T) {
	require.EqualValues(t, 16, numGlyphs)

	for g := Glyph(0); g < numGlyphs; g++ {
		pattern := glyphPatterns[g]
		require.NotEmpty(t, pattern, "glyph %s has no pattern", g)

		seen := make(map[ButtonID]bool)
		for _, id := range pattern {
			assert.True(t, id.Valid(), "glyph %s references invalid button %d", g, id)
			assert.False(t, seen[id], "glyph %s lights %s twice", g, id)
			seen[id] = true
		}
	}
}

func TestGlyphFromByte(t *testing.T) {
	tests := []struct {
		in   byte
		want Glyph
	}{
		{'0', Glyph0},
		{'9', Glyph9},
		{'A', GlyphA},
		{'a', GlyphA},
		{'F', GlyphF},
		{'f', GlyphF},
	}

	for _, tt := range tests {
		got, err := GlyphFromByte(tt.in)
		require.NoError(t, err, "byte %q", tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, c := range []byte{'G', 'z', ' ', '-'} {
		_, err := GlyphFromByte(c)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "byte %q", c)
	}
}

func TestGlyphString(t *testing.T) {
	assert.Equal(t, "0", Glyph0.String())
	assert.Equal(t, "A", GlyphA.String())
	assert.Equal(t, "F", GlyphF.String())
	assert.Equal(t, "?", Glyph(20).String())
}

func TestGlyphPatternIsACopy(t *testing.T) {
	p := Glyph8.Pattern()
	require.NotEmpty(t, p)
	p[0] = ButtonID(99)
	assert.NotEqual(t, ButtonID(99), glyphPatterns[Glyph8][0])

	assert.Nil(t, Glyph(77).Pattern())
}
