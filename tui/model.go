// Package tui is a bubbletea monitor for a connected FaderPort: it
// mirrors the panel lights and fader, logs incoming events, and maps a
// few keys onto driver commands so everything can be poked by hand.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fergy-nz/faderport"
	"github.com/fergy-nz/faderport/theme"
	"github.com/fergy-nz/faderport/widgets"
)

// EventKind classifies a forwarded device event.
type EventKind int

const (
	EventOpen EventKind = iota
	EventClose
	EventButton
	EventFaderTouch
	EventFader
	EventRotary
	EventError
)

// Event is one device event, forwarded from the Handler goroutine to
// the TUI loop.
type Event struct {
	Kind    EventKind
	Button  faderport.ButtonID
	Pressed bool
	Value   int
	Delta   int
	Shift   bool
	Err     error
}

func (e Event) String() string {
	switch e.Kind {
	case EventOpen:
		return "opened"
	case EventClose:
		return "closing"
	case EventButton:
		if e.Pressed {
			return fmt.Sprintf("button %s pressed", e.Button)
		}
		return fmt.Sprintf("button %s released", e.Button)
	case EventFaderTouch:
		if e.Pressed {
			return "fader touched"
		}
		return "fader released"
	case EventFader:
		return fmt.Sprintf("fader %d", e.Value)
	case EventRotary:
		dir := "clockwise"
		if e.Delta < 0 {
			dir = "counterclockwise"
		}
		if e.Shift {
			return fmt.Sprintf("pan %s (shift)", dir)
		}
		return "pan " + dir
	case EventError:
		return fmt.Sprintf("error: %v", e.Err)
	}
	return "?"
}

// Forwarder implements faderport.Handler by pushing events onto a
// channel the TUI listens to. Pushes never block the dispatch path;
// if the TUI falls behind, events are dropped.
type Forwarder struct {
	C chan Event
}

func NewForwarder() *Forwarder {
	return &Forwarder{C: make(chan Event, 64)}
}

func (f *Forwarder) push(e Event) {
	select {
	case f.C <- e:
	default:
	}
}

func (f *Forwarder) OnOpen()  { f.push(Event{Kind: EventOpen}) }
func (f *Forwarder) OnClose() { f.push(Event{Kind: EventClose}) }

func (f *Forwarder) OnButton(id faderport.ButtonID, pressed bool) {
	f.push(Event{Kind: EventButton, Button: id, Pressed: pressed})
}

func (f *Forwarder) OnFaderTouch(touched bool) {
	f.push(Event{Kind: EventFaderTouch, Pressed: touched})
}

func (f *Forwarder) OnFader(value int) {
	f.push(Event{Kind: EventFader, Value: value})
}

func (f *Forwarder) OnRotary(delta int, shift bool) {
	f.push(Event{Kind: EventRotary, Delta: delta, Shift: shift})
}

// OnError forwards decode errors; wire it via faderport.WithErrorHandler.
func (f *Forwarder) OnError(err error) {
	f.push(Event{Kind: EventError, Err: err})
}

// panelRows lays the buttons out the way they sit on the device,
// top row first.
var panelRows = [][]faderport.ButtonID{
	{faderport.ButtonMute, faderport.ButtonSolo, faderport.ButtonRec},
	{faderport.ButtonChanDown, faderport.ButtonBank, faderport.ButtonChanUp, faderport.ButtonOutput},
	{faderport.ButtonRead, faderport.ButtonWrite, faderport.ButtonTouch, faderport.ButtonOff},
	{faderport.ButtonMix, faderport.ButtonProj, faderport.ButtonTrns, faderport.ButtonUndo},
	{faderport.ButtonShift, faderport.ButtonPunch, faderport.ButtonUser, faderport.ButtonLoop},
	{faderport.ButtonRewind, faderport.ButtonFastFwd, faderport.ButtonStop, faderport.ButtonPlay, faderport.ButtonRecord},
}

const eventLogLen = 10

// helpSections feeds the key help widget at the bottom of the view.
var helpSections = []widgets.KeySection{
	{Title: "animations", Keys: []widgets.KeyBinding{
		{Key: "c", Desc: "countdown"},
		{Key: "n", Desc: "snake"},
		{Key: "h", Desc: "chase"},
		{Key: "b", Desc: "blink Play"},
		{Key: "x", Desc: "stop animation, clear lights"},
	}},
	{Title: "device", Keys: []widgets.KeyBinding{
		{Key: "o", Desc: "toggle Off light"},
		{Key: "0-9", Desc: "draw glyph"},
		{Key: "left/right", Desc: "nudge fader"},
		{Key: "home/end", Desc: "fader to bottom/top"},
		{Key: "q", Desc: "quit"},
	}},
}

type Model struct {
	fp     *faderport.FaderPort
	events <-chan Event

	log      []string
	fader    int
	touched  bool
	quitting bool
}

func NewModel(fp *faderport.FaderPort, events <-chan Event) Model {
	return Model{fp: fp, events: events, fader: fp.Fader()}
}

type eventMsg Event

func listenForEvents(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-events)
	}
}

func (m Model) Init() tea.Cmd {
	return listenForEvents(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "c":
			m.fp.Countdown(5)
		case "n":
			m.fp.Snake()
		case "h":
			m.fp.Chase()
		case "b":
			m.fp.Blink(faderport.ButtonPlay, 3)
		case "x":
			m.fp.StopAnimation()
			m.fp.AllOff()
		case "o":
			if m.fp.LightState(faderport.ButtonOff) {
				m.fp.LightOff(faderport.ButtonOff)
			} else {
				m.fp.LightOn(faderport.ButtonOff)
			}

		case "left":
			m.setFader(m.fp.Fader() - 8)
		case "right":
			m.setFader(m.fp.Fader() + 8)
		case "home":
			m.setFader(0)
		case "end":
			m.setFader(faderport.FaderMax)

		case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
			g, _ := faderport.GlyphFromByte(msg.String()[0])
			m.fp.CharOn(g)
		}
		m.fader = m.fp.Fader()

	case eventMsg:
		e := Event(msg)
		switch e.Kind {
		case EventFader:
			m.fader = e.Value
		case EventFaderTouch:
			m.touched = e.Pressed
		}
		m.log = append(m.log, e.String())
		if len(m.log) > eventLogLen {
			m.log = m.log[len(m.log)-eventLogLen:]
		}
		return m, listenForEvents(m.events)
	}

	return m, nil
}

func (m *Model) setFader(v int) {
	if v < 0 {
		v = 0
	}
	if v > faderport.FaderMax {
		v = faderport.FaderMax
	}
	m.fp.SetFader(v)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	th := theme.Default()
	headerStyle := lipgloss.NewStyle().Foreground(th.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(th.FG())

	touch := ""
	if m.touched {
		touch = "  [touch]"
	}
	shift := ""
	if m.fp.ShiftHeld() {
		shift = "  [shift]"
	}
	header := headerStyle.Render("faderport monitor" + touch + shift)

	rows := make([][]widgets.Cell, len(panelRows))
	for i, row := range panelRows {
		for _, id := range row {
			rows[i] = append(rows[i], widgets.Cell{
				Name: id.String(),
				Lit:  m.fp.LightState(id),
			})
		}
	}
	panel := widgets.RenderPanel(rows)

	gauge := widgets.RenderFader(m.fader, faderport.FaderMax, 32)

	logView := dimStyle.Render(strings.Join(m.log, "\n"))

	help := dimStyle.Render(widgets.RenderKeyHelp(helpSections))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(panel)
	out.WriteString("\n\n")
	out.WriteString(gauge)
	out.WriteString("\n\n")
	out.WriteString(logView)
	out.WriteString("\n\n")
	out.WriteString(help)
	return out.String()
}
