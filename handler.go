package faderport

// Handler receives FaderPort events. Implement it with your
// application's reactions; embed NopHandler to pick and choose.
//
// Callbacks are invoked synchronously from the single inbound dispatch
// goroutine, in arrival order, one at a time. A callback that needs to
// do slow work should hand it off; blocking here delays every later
// event. Output commands (LightOn, SetFader, ...) are safe to call
// from inside any callback.
type Handler interface {
	// OnOpen is called once, after the connection is open and the
	// hardware reset sequence has run.
	OnOpen()

	// OnButton is called when a button is pressed (true) or released.
	OnButton(id ButtonID, pressed bool)

	// OnFaderTouch is called when the fader cap is touched or released.
	// Touch telemetry is reported even while the Off light suppresses
	// value telemetry.
	OnFaderTouch(touched bool)

	// OnFader is called with the new position when the fader moves.
	OnFader(value int)

	// OnRotary is called for each tick of the Pan encoder, with the
	// Shift-held state captured at the moment of rotation.
	OnRotary(delta int, shift bool)

	// OnClose is called once, before the transport is torn down.
	OnClose()
}

// NopHandler implements Handler with no-ops.
type NopHandler struct{}

func (NopHandler) OnOpen()                 {}
func (NopHandler) OnButton(ButtonID, bool) {}
func (NopHandler) OnFaderTouch(bool)       {}
func (NopHandler) OnFader(int)             {}
func (NopHandler) OnRotary(int, bool)      {}
func (NopHandler) OnClose()                {}

var _ Handler = NopHandler{}
