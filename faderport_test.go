package faderport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// fakeConn is an in-memory Connection that records what the driver
// sends and lets tests inject inbound messages.
type fakeConn struct {
	mu     sync.Mutex
	sent   []gomidi.Message
	recv   func(msg gomidi.Message)
	closed bool
}

func (c *fakeConn) Send(msg gomidi.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

func (c *fakeConn) OnReceive(fn func(msg gomidi.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recv = fn
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// deliver injects an inbound message the way the transport would.
func (c *fakeConn) deliver(msg gomidi.Message) {
	c.mu.Lock()
	fn := c.recv
	c.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (c *fakeConn) sentMessages() []gomidi.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]gomidi.Message, len(c.sent))
	copy(out, c.sent)
	return out
}

func (c *fakeConn) clearSent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = nil
}

// recordingHandler captures every callback.
type recordingHandler struct {
	mu       sync.Mutex
	opens    int
	closes   int
	buttons  []ButtonMessage
	touches  []bool
	faders   []int
	rotaries []RotaryMessage
}

func (h *recordingHandler) OnOpen() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opens++
}

func (h *recordingHandler) OnClose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closes++
}

func (h *recordingHandler) OnButton(id ButtonID, pressed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buttons = append(h.buttons, ButtonMessage{Button: id, Pressed: pressed})
}

func (h *recordingHandler) OnFaderTouch(touched bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.touches = append(h.touches, touched)
}

func (h *recordingHandler) OnFader(value int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.faders = append(h.faders, value)
}

func (h *recordingHandler) OnRotary(delta int, shift bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rotaries = append(h.rotaries, RotaryMessage{Delta: delta, Shift: shift})
}

func (h *recordingHandler) faderValues() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]int, len(h.faders))
	copy(out, h.faders)
	return out
}

func newTestPort(t *testing.T, opts ...Option) (*FaderPort, *fakeConn, *recordingHandler) {
	t.Helper()
	h := &recordingHandler{}
	fp := New(h, opts...)
	conn := &fakeConn{}
	require.NoError(t, fp.Open(conn))
	return fp, conn, h
}

func TestOpenResetsThenFiresOnOpen(t *testing.T) {
	h := &recordingHandler{}
	fp := New(h)
	conn := &fakeConn{}

	require.NoError(t, fp.Open(conn))

	sent := conn.sentMessages()
	require.NotEmpty(t, sent)
	assert.Equal(t, gomidi.Reset(), sent[0], "reset must precede all other traffic")
	// All 24 lights are cleared as part of the open sequence.
	assert.Len(t, sent, 1+int(numButtons))
	assert.Equal(t, 1, h.opens)

	// A second open on the same driver is a connection error.
	err := fp.Open(&fakeConn{})
	var cerr *ConnectionError
	require.ErrorAs(t, err, &cerr)
}

func TestCloseSequence(t *testing.T) {
	fp, conn, h := newTestPort(t)
	conn.clearSent()

	require.NoError(t, fp.Close())

	assert.Equal(t, 1, h.closes)
	assert.True(t, conn.closed)

	sent := conn.sentMessages()
	require.NotEmpty(t, sent)
	// Fader parked at zero, all lights off, then a final reset.
	assert.Equal(t, gomidi.ControlChange(0, ccFaderMSB, 0), sent[0])
	assert.Equal(t, gomidi.ControlChange(0, ccFaderLSB, 0), sent[1])
	assert.Equal(t, gomidi.Reset(), sent[len(sent)-1])

	// Closed is terminal; a second close is an error.
	err := fp.Close()
	var cerr *ConnectionError
	require.ErrorAs(t, err, &cerr)
}

func TestCommandsBeforeOpen(t *testing.T) {
	fp := New(&recordingHandler{})
	assert.ErrorIs(t, fp.LightOn(ButtonMute), ErrNotOpen)
	assert.ErrorIs(t, fp.SetFader(10), ErrNotOpen)
}

func TestLightRoundTrip(t *testing.T) {
	fp, _, _ := newTestPort(t)

	for _, id := range Buttons() {
		before := fp.LightState(id)
		require.NoError(t, fp.LightOn(id))
		assert.True(t, fp.LightState(id))
		require.NoError(t, fp.LightOff(id))
		assert.Equal(t, before, fp.LightState(id), "light %s", id)
	}
}

func TestLightInvalidButton(t *testing.T) {
	fp, conn, _ := newTestPort(t)
	conn.clearSent()

	var verr *ValidationError
	require.ErrorAs(t, fp.LightOn(ButtonID(99)), &verr)
	require.ErrorAs(t, fp.LightOff(ButtonID(-1)), &verr)
	assert.Empty(t, conn.sentMessages(), "invalid commands must not reach the wire")
}

func TestSetFaderEcho(t *testing.T) {
	fp, _, _ := newTestPort(t)

	for _, v := range []int{0, 1, 512, 1000, FaderMax} {
		require.NoError(t, fp.SetFader(v))
		assert.Equal(t, v, fp.Fader())
	}

	// The echo re-syncs even while the Off light suppresses telemetry.
	require.NoError(t, fp.LightOn(ButtonOff))
	require.NoError(t, fp.SetFader(700))
	assert.Equal(t, 700, fp.Fader())
}

func TestSetFaderInvalid(t *testing.T) {
	fp, conn, _ := newTestPort(t)
	require.NoError(t, fp.SetFader(300))
	conn.clearSent()

	var verr *ValidationError
	require.ErrorAs(t, fp.SetFader(2000), &verr)
	assert.Equal(t, 2000, verr.Value)
	assert.Empty(t, conn.sentMessages())
	assert.Equal(t, 300, fp.Fader())
}

func deliverFader(conn *fakeConn, value int) {
	wire := value << 4 // the device reports 14-bit values
	conn.deliver(gomidi.ControlChange(0, ccFaderMSB, uint8(wire>>7)))
	conn.deliver(gomidi.ControlChange(0, ccFaderLSB, uint8(wire&0x7F)))
}

func TestFaderEventsDispatch(t *testing.T) {
	fp, conn, h := newTestPort(t)

	deliverFader(conn, 321)
	assert.Equal(t, []int{321}, h.faderValues())
	assert.Equal(t, 321, fp.Fader())
}

func TestOffLightSuppressesFaderTelemetry(t *testing.T) {
	fp, conn, h := newTestPort(t)

	require.NoError(t, fp.SetFader(500))
	require.NoError(t, fp.LightOn(ButtonOff))

	deliverFader(conn, 123)
	assert.Empty(t, h.faderValues(), "fader events must be dropped while Off is lit")
	assert.Equal(t, 500, fp.Fader(), "last commanded value stands while suppressed")

	require.NoError(t, fp.LightOff(ButtonOff))
	deliverFader(conn, 123)
	assert.Equal(t, []int{123}, h.faderValues())
	assert.Equal(t, 123, fp.Fader())
}

func TestTouchNotSuppressedByOffLight(t *testing.T) {
	fp, conn, h := newTestPort(t)
	require.NoError(t, fp.LightOn(ButtonOff))

	conn.deliver(gomidi.PolyAfterTouch(0, faderTouchNote, 1))
	conn.deliver(gomidi.PolyAfterTouch(0, faderTouchNote, 0))
	assert.Equal(t, []bool{true, false}, h.touches)
}

func TestButtonEventsDispatch(t *testing.T) {
	_, conn, h := newTestPort(t)

	conn.deliver(gomidi.PolyAfterTouch(0, buttons[ButtonPlay].Press, 1))
	conn.deliver(gomidi.PolyAfterTouch(0, buttons[ButtonPlay].Press, 0))

	require.Len(t, h.buttons, 2)
	assert.Equal(t, ButtonMessage{Button: ButtonPlay, Pressed: true}, h.buttons[0])
	assert.Equal(t, ButtonMessage{Button: ButtonPlay, Pressed: false}, h.buttons[1])
}

func TestShiftStampsRotaryEvents(t *testing.T) {
	fp, conn, h := newTestPort(t)

	conn.deliver(gomidi.Pitchbend(0, -100))

	conn.deliver(gomidi.PolyAfterTouch(0, buttons[ButtonShift].Press, 1))
	assert.True(t, fp.ShiftHeld())
	conn.deliver(gomidi.Pitchbend(0, -100))
	conn.deliver(gomidi.Pitchbend(0, 100))

	conn.deliver(gomidi.PolyAfterTouch(0, buttons[ButtonShift].Press, 0))
	assert.False(t, fp.ShiftHeld())
	conn.deliver(gomidi.Pitchbend(0, 100))

	require.Len(t, h.rotaries, 4)
	assert.Equal(t, RotaryMessage{Delta: 1, Shift: false}, h.rotaries[0])
	assert.Equal(t, RotaryMessage{Delta: 1, Shift: true}, h.rotaries[1])
	assert.Equal(t, RotaryMessage{Delta: -1, Shift: true}, h.rotaries[2])
	assert.Equal(t, RotaryMessage{Delta: -1, Shift: false}, h.rotaries[3])
}

func TestDecodeErrorSurfacedAndDropped(t *testing.T) {
	var got error
	fp, conn, h := newTestPort(t, WithErrorHandler(func(err error) { got = err }))

	conn.deliver(gomidi.ControlChange(0, 77, 1))

	var derr *DecodeError
	require.ErrorAs(t, got, &derr)
	assert.Empty(t, h.buttons)
	assert.Empty(t, h.faderValues())
	assert.Equal(t, 0, fp.Fader())
}

func TestCharOnLightsExactlyThePattern(t *testing.T) {
	fp, _, _ := newTestPort(t)

	for g := Glyph(0); g < numGlyphs; g++ {
		require.NoError(t, fp.CharOn(g))
		for _, id := range Buttons() {
			assert.Equal(t, glyphLit(g, id), fp.LightState(id),
				"glyph %s button %s", g, id)
		}
	}
}

func TestCharOnClearsPreviousGlyph(t *testing.T) {
	fp, _, _ := newTestPort(t)

	require.NoError(t, fp.CharOn(Glyph8))
	require.NoError(t, fp.CharOn(Glyph1))

	for _, id := range Buttons() {
		assert.Equal(t, glyphLit(Glyph1, id), fp.LightState(id),
			"stale segment on %s", id)
	}
}

func TestCharOnInvalidGlyph(t *testing.T) {
	fp, conn, _ := newTestPort(t)
	conn.clearSent()

	var verr *ValidationError
	require.ErrorAs(t, fp.CharOn(Glyph(16)), &verr)
	assert.Empty(t, conn.sentMessages())
}

// Commands must be re-entrant from inside callbacks: a handler that
// lights the button it was told about must not deadlock.
type mirrorHandler struct {
	NopHandler
	fp *FaderPort
}

func (h *mirrorHandler) OnButton(id ButtonID, pressed bool) {
	if pressed {
		h.fp.LightOn(id)
	} else {
		h.fp.LightOff(id)
	}
}

func TestCommandsReentrantFromCallback(t *testing.T) {
	h := &mirrorHandler{}
	fp := New(h)
	h.fp = fp
	conn := &fakeConn{}
	require.NoError(t, fp.Open(conn))

	conn.deliver(gomidi.PolyAfterTouch(0, buttons[ButtonSolo].Press, 1))
	assert.True(t, fp.LightState(ButtonSolo))

	conn.deliver(gomidi.PolyAfterTouch(0, buttons[ButtonSolo].Press, 0))
	assert.False(t, fp.LightState(ButtonSolo))
}

func TestAllOnAllOff(t *testing.T) {
	fp, _, _ := newTestPort(t)

	require.NoError(t, fp.AllOn())
	for _, id := range Buttons() {
		assert.True(t, fp.LightState(id))
	}

	require.NoError(t, fp.AllOff())
	for _, id := range Buttons() {
		assert.False(t, fp.LightState(id))
	}
}
