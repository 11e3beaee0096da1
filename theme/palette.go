package theme

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
}

// Amber is the built-in panel palette: a dark-to-amber ramp that
// matches the look of the device's LEDs.
func Amber() *Palette {
	return &Palette{
		Name: "amber",
		Colors: []RGB{
			{0x1a, 0x12, 0x08},
			{0x44, 0x30, 0x10},
			{0x88, 0x5c, 0x14},
			{0xcc, 0x8a, 0x0a},
			{0xff, 0xb0, 0x00},
			{0xff, 0xd0, 0x40},
		},
	}
}

// Lookup returns the ramp color for a normalized value, blending
// between the two nearest stops. Values outside [0, 1] clamp to the
// ends of the ramp.
func (p *Palette) Lookup(norm float64) RGB {
	last := len(p.Colors) - 1
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[last]
	}

	pos := norm * float64(last)
	i := int(pos)
	return mix(p.Colors[i], p.Colors[i+1], pos-float64(i))
}

// mix blends two colors channel by channel, t in [0, 1].
func mix(a, b RGB, t float64) RGB {
	var c RGB
	for i := range c {
		c[i] = uint8(float64(a[i])*(1-t) + float64(b[i])*t)
	}
	return c
}
