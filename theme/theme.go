// Package theme holds the monitor TUI's palette and glyph symbols so
// every widget draws from the same ramp.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Lit   rune // ■ LED on
	Unlit rune // □ LED off

	BarFull  rune // █ filled gauge segment
	BarEmpty rune // ░ empty gauge segment
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Lit:   '■',
			Unlit: '□',

			BarFull:  '█',
			BarEmpty: '░',
		},
	}
}

// Default is the theme the monitor uses out of the box.
func Default() *Theme {
	return New(Amber())
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG     = 0.0 // near black
	RoleMuted  = 0.2 // dim brown, unlit LEDs and help text
	RoleFG     = 0.5 // readable amber
	RoleActive = 0.8 // lit LED amber
	RoleAccent = 1.0 // bright highlight
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

// Color returns the lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
