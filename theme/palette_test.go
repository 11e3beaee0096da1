package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupClampsAndBlends(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {100, 200, 40}}}

	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(0))
	assert.Equal(t, RGB{100, 200, 40}, p.Lookup(1))
	assert.Equal(t, RGB{100, 200, 40}, p.Lookup(2))
	assert.Equal(t, RGB{50, 100, 20}, p.Lookup(0.5))
}

func TestAmberRampOrder(t *testing.T) {
	p := Amber()
	// The ramp only ever brightens: each red channel step is >= the last.
	for i := 1; i < len(p.Colors); i++ {
		assert.GreaterOrEqual(t, p.Colors[i][0], p.Colors[i-1][0])
	}
}
