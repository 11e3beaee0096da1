package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fergy-nz/faderport"
	"github.com/fergy-nz/faderport/config"
	"github.com/fergy-nz/faderport/debug"
	"github.com/fergy-nz/faderport/midi"
	"github.com/fergy-nz/faderport/tui"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detect()
	case "demo":
		demo()
	case "monitor":
		monitor()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("FaderPort test tool")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list     - List all MIDI ports")
	fmt.Println("  detect   - Find a connected FaderPort")
	fmt.Println("  demo     - Run the display demo, then echo events")
	fmt.Println("  monitor  - Interactive TUI monitor")
}

func listPorts() {
	defer midi.CloseDriver()

	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range midi.ListInPorts() {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range midi.ListOutPorts() {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func detect() {
	defer midi.CloseDriver()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		return
	}

	in, err := midi.FindInPort(cfg.Port)
	if err != nil {
		fmt.Println(err)
		return
	}
	out, err := midi.FindOutPort(cfg.Port)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Found input:  %s\n", in.String())
	fmt.Printf("Found output: %s\n", out.String())
}

// demoHandler echoes events, mirrors presses onto the lights, and
// nudges the fader from the rotary while Shift is held. Releasing Off
// ends the demo.
type demoHandler struct {
	fp   *faderport.FaderPort
	once sync.Once
	exit chan struct{}
}

func (h *demoHandler) OnOpen()  { fmt.Println("FaderPort opened") }
func (h *demoHandler) OnClose() { fmt.Println("FaderPort closing...") }

func (h *demoHandler) OnButton(id faderport.ButtonID, pressed bool) {
	state := "released"
	if pressed {
		state = "pressed"
	}
	fmt.Printf("button: %s %s\n", id, state)

	if pressed {
		h.fp.LightOn(id)
	} else {
		h.fp.LightOff(id)
	}
	if id == faderport.ButtonOff && !pressed {
		h.once.Do(func() { close(h.exit) })
	}
}

func (h *demoHandler) OnFaderTouch(touched bool) {
	if touched {
		fmt.Println("fader: touched")
	} else {
		fmt.Println("fader: released")
	}
}

func (h *demoHandler) OnFader(value int) {
	fmt.Printf("fader: %d\n", value)
}

func (h *demoHandler) OnRotary(delta int, shift bool) {
	dir := "clockwise"
	if delta < 0 {
		dir = "counterclockwise"
	}
	fmt.Printf("pan: %s\n", dir)

	if shift {
		v := h.fp.Fader() + delta
		if v >= 0 && v <= faderport.FaderMax {
			h.fp.SetFader(v)
		}
	}
}

func demo() {
	defer midi.CloseDriver()

	fp, h, err := open()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fp.Countdown(5)
	wait(4 * time.Second)
	fp.SetFader(faderport.FaderMax)

	fp.Snake()
	wait(2 * time.Second)
	fp.SetFader(512)

	fp.Blink(faderport.ButtonPlay, 3)
	wait(time.Second)
	fp.SetFader(128)

	fp.Chase()
	wait(2 * time.Second)
	fp.SetFader(0)

	fmt.Println("Try the buttons, the rotary and the fader. Releasing Off exits.")
	<-h.exit

	if err := fp.Close(); err != nil {
		fmt.Println(err)
	}
}

func monitor() {
	defer midi.CloseDriver()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Debug {
		debug.Enable()
		defer debug.Disable()
	}

	fwd := tui.NewForwarder()
	opts := append(cfg.Options(), faderport.WithErrorHandler(fwd.OnError))
	fp := faderport.New(fwd, opts...)

	conn, err := midi.Open(cfg.Port)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := fp.Open(conn); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(fp, fwd.C), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	if err := fp.Close(); err != nil {
		fmt.Println(err)
	}
}

func open() (*faderport.FaderPort, *demoHandler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Debug {
		debug.Enable()
	}

	h := &demoHandler{exit: make(chan struct{})}
	fp := faderport.New(h, cfg.Options()...)
	h.fp = fp

	conn, err := midi.Open(cfg.Port)
	if err != nil {
		return nil, nil, err
	}
	if err := fp.Open(conn); err != nil {
		return nil, nil, err
	}
	return fp, h, nil
}

// wait sleeps so an animation can play out before the demo moves on.
// Playback itself never blocks; this just paces the scripted tour.
func wait(d time.Duration) {
	time.Sleep(d)
}
