package faderport

// deviceState is the driver's snapshot of the hardware: which LEDs are
// lit, the last known fader position, the pending fader MSB and whether
// Shift is held. There is exactly one of these per FaderPort and it is
// only ever touched under the FaderPort mutex, from one of inbound
// dispatch, an output command or an animation frame at a time.
type deviceState struct {
	lights [numButtons]bool
	fader  int
	msb    uint8
	shift  bool
}

// applyInbound folds a decoded message into the snapshot and returns
// the message to hand to the dispatcher, or nil when the message is
// internal (a fader MSB half) or suppressed.
//
// Suppression: while the Off light is lit the hardware does not emit
// reliable fader value telemetry, so inbound fader reports are dropped
// and the last commanded value stands as ground truth until the light
// clears. This is a documented hardware quirk, not a bug to fix here.
// Touch and button telemetry are unaffected.
func (s *deviceState) applyInbound(m Message) Message {
	switch m := m.(type) {
	case FaderMSBMessage:
		s.msb = m.Value
		return nil

	case FaderLSBMessage:
		if s.lights[ButtonOff] {
			return nil
		}
		s.fader = faderFromWire(s.msb, m.Value)
		return FaderMessage{Value: s.fader}

	case ButtonMessage:
		if m.Button == ButtonShift {
			s.shift = m.Pressed
		}
		return m

	case FaderTouchMessage:
		return m

	case RotaryMessage:
		m.Shift = s.shift
		return m
	}
	return nil
}

// setLight records an outbound light change.
func (s *deviceState) setLight(id ButtonID, on bool) {
	s.lights[id] = on
}

// setFader records an outbound fader move. Outbound commands are not
// subject to the Off-light suppression, so the echo value re-syncs
// immediately and optimistically.
func (s *deviceState) setFader(value int) {
	s.fader = value
}

// lightSnapshot copies the current light bits for the given buttons.
func (s *deviceState) lightSnapshot(region []ButtonID) map[ButtonID]bool {
	snap := make(map[ButtonID]bool, len(region))
	for _, id := range region {
		snap[id] = s.lights[id]
	}
	return snap
}
