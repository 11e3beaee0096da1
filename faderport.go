// Package faderport drives a Presonus FaderPort USB MIDI control
// surface: one motorized fader, an endless rotary encoder and a grid of
// illuminable buttons.
//
// The package translates the device's raw MIDI stream into the typed
// callbacks of the Handler interface, and application intents (light a
// button, move the fader, draw a glyph, run an animation) back into
// correctly formatted MIDI output. It also carries the workaround for
// the device's one well-known quirk: while the Off button light is lit
// the fader stops reporting value telemetry, so the driver holds the
// last commanded value as ground truth until the light clears.
package faderport

import (
	"errors"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/fergy-nz/faderport/debug"
)

// Connection is the duplex MIDI transport the driver runs over. The
// midi subpackage provides the real one; tests substitute fakes.
type Connection interface {
	// Send writes one MIDI message to the device.
	Send(msg gomidi.Message) error
	// OnReceive registers the inbound message handler. The transport
	// must deliver messages sequentially from a single goroutine.
	OnReceive(fn func(msg gomidi.Message))
	// Close releases the transport.
	Close() error
}

type connState int

const (
	stateClosed connState = iota
	stateOpening
	stateOpen
	stateClosing
)

// FaderPort is the driver for one device. Create one with New, then
// attach a transport with Open. All exported methods are safe to call
// from any goroutine, including from inside Handler callbacks.
type FaderPort struct {
	handler Handler
	opts    options

	mu    sync.Mutex
	conn  Connection
	st    connState
	state deviceState

	anim *animator
}

// New creates a driver that reports events to handler.
func New(handler Handler, opts ...Option) *FaderPort {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	fp := &FaderPort{handler: handler, opts: o}
	fp.anim = newAnimator(fp)
	return fp
}

// Open attaches the transport, runs the hardware reset sequence and
// fires OnOpen. The reset (a MIDI system reset before any traffic is
// accepted) is the documented fix for the device coming up with a
// stuck Bank light.
func (fp *FaderPort) Open(conn Connection) error {
	fp.mu.Lock()
	if fp.st != stateClosed {
		fp.mu.Unlock()
		return &ConnectionError{Op: "open", Err: errors.New("already open")}
	}
	fp.st = stateOpening
	fp.conn = conn

	if err := conn.Send(gomidi.Reset()); err != nil {
		fp.conn = nil
		fp.st = stateClosed
		fp.mu.Unlock()
		return &ConnectionError{Op: "open: reset", Err: err}
	}
	for id := ButtonID(0); id < numButtons; id++ {
		fp.state.setLight(id, false)
		if err := fp.conn.Send(encodeLight(id, false)); err != nil {
			fp.conn = nil
			fp.st = stateClosed
			fp.mu.Unlock()
			return &ConnectionError{Op: "open: clear lights", Err: err}
		}
	}

	conn.OnReceive(fp.handleMessage)
	fp.st = stateOpen
	fp.mu.Unlock()

	debug.Log("lifecycle", "open")
	fp.handler.OnOpen()
	return nil
}

// Close fires OnClose, parks the fader, clears the lights and releases
// the transport. The driver ends in the Closed state whatever happens
// on the way down.
func (fp *FaderPort) Close() error {
	fp.mu.Lock()
	if fp.st != stateOpen {
		fp.mu.Unlock()
		return &ConnectionError{Op: "close", Err: ErrNotOpen}
	}
	fp.st = stateClosing
	fp.mu.Unlock()

	fp.anim.stop()

	debug.Log("lifecycle", "closing")
	fp.handler.OnClose()

	fp.mu.Lock()
	conn := fp.conn
	fp.state.setFader(0)
	if msgs, err := encodeFader(0); err == nil {
		for _, m := range msgs {
			conn.Send(m)
		}
	}
	for id := ButtonID(0); id < numButtons; id++ {
		fp.state.setLight(id, false)
		conn.Send(encodeLight(id, false))
	}
	conn.Send(gomidi.Reset())
	fp.conn = nil
	fp.st = stateClosed
	fp.mu.Unlock()

	if err := conn.Close(); err != nil {
		return &ConnectionError{Op: "close", Err: err}
	}
	return nil
}

// handleMessage is the single inbound entry point, invoked from the
// transport's delivery goroutine once per received message. It must
// not block: callbacks gate both later events and animation frames.
func (fp *FaderPort) handleMessage(msg gomidi.Message) {
	m, err := Decode(msg)
	if err != nil {
		debug.Log("decode", "%v", err)
		if fp.opts.onError != nil {
			fp.opts.onError(err)
		}
		return
	}

	fp.mu.Lock()
	if fp.st != stateOpen {
		fp.mu.Unlock()
		return
	}
	ev := fp.state.applyInbound(m)
	fp.mu.Unlock()
	if ev == nil {
		return
	}

	// Callbacks run outside the lock so they can issue commands.
	switch ev := ev.(type) {
	case ButtonMessage:
		fp.handler.OnButton(ev.Button, ev.Pressed)
	case FaderTouchMessage:
		fp.handler.OnFaderTouch(ev.Touched)
	case FaderMessage:
		fp.handler.OnFader(ev.Value)
	case RotaryMessage:
		fp.handler.OnRotary(ev.Delta, ev.Shift)
	}
}

// sendLocked writes messages to the transport. Callers hold fp.mu.
func (fp *FaderPort) sendLocked(msgs ...gomidi.Message) error {
	if fp.st != stateOpen || fp.conn == nil {
		return ErrNotOpen
	}
	for _, m := range msgs {
		if err := fp.conn.Send(m); err != nil {
			return err
		}
	}
	return nil
}
