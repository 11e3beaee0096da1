// Package widgets renders terminal views of the FaderPort's front
// panel for the monitor TUI.
package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fergy-nz/faderport/theme"
)

// Cell is one button in a rendered panel row.
type Cell struct {
	Name string
	Lit  bool
}

var (
	th         = theme.Default()
	litStyle   = lipgloss.NewStyle().Foreground(th.Active())
	unlitStyle = lipgloss.NewStyle().Foreground(th.Muted())
)

// RenderCell renders one button as a lit or unlit lamp plus its label.
func RenderCell(c Cell) string {
	if c.Lit {
		return litStyle.Render(string(th.Symbols.Lit) + " " + c.Name)
	}
	return unlitStyle.Render(string(th.Symbols.Unlit) + " " + c.Name)
}

// RenderPanel renders rows of buttons, one row per physical row of the
// device, with columns padded to line up.
func RenderPanel(rows [][]Cell) string {
	width := 0
	for _, row := range rows {
		for _, c := range row {
			if len(c.Name) > width {
				width = len(c.Name)
			}
		}
	}

	var lines []string
	for _, row := range rows {
		var line strings.Builder
		for i, c := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			pad := width - len(c.Name)
			line.WriteString(RenderCell(c))
			line.WriteString(strings.Repeat(" ", pad))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderFader renders a horizontal gauge for a fader position. The
// filled part takes its color from the palette ramp, so the bar warms
// up as the fader rises.
func RenderFader(value, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := value * width / max
	if filled > width {
		filled = width
	}
	fillStyle := lipgloss.NewStyle().Foreground(th.Color(float64(value) / float64(max)))
	bar := fillStyle.Render(strings.Repeat(string(th.Symbols.BarFull), filled)) +
		unlitStyle.Render(strings.Repeat(string(th.Symbols.BarEmpty), width-filled))
	return fmt.Sprintf("fader [%s] %4d", bar, value)
}

// KeySection groups related key bindings.
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description.
type KeyBinding struct {
	Key  string
	Desc string
}

// RenderKeyHelp formats key bindings in a friendly way.
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}
