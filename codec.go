package faderport

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// The FaderPort speaks three message families on channel 0:
//
//   PolyAfterTouch  key 0-23  -> button press/release (pressure 0/1),
//                   key 127   -> fader touch/release;
//                   the same family outbound drives the button LEDs,
//                   addressed by the (different) light note numbers.
//   ControlChange   CC 0      -> fader MSB, CC 32 -> fader LSB; the
//                   device reports 14-bit values scaled down to 0-1023,
//                   and accepts the 10-bit value split MSB/LSB.
//   PitchBend                 -> rotary encoder, sign gives direction.

const (
	faderTouchNote = 127
	ccFaderMSB     = 0
	ccFaderLSB     = 32
)

// FaderMax is the top of the fader's value range.
const FaderMax = 1023

// Message is a semantic device message produced by Decode or consumed
// by Encode. The codec is stateless: the fader MSB/LSB halves are
// separate messages here and are paired by the device state layer.
type Message interface {
	isDeviceMessage()
}

// ButtonMessage is a button press or release.
type ButtonMessage struct {
	Button  ButtonID
	Pressed bool
}

// FaderTouchMessage is the fader cap being touched or released.
type FaderTouchMessage struct {
	Touched bool
}

// FaderMSBMessage carries the high 7 bits of a fader report.
type FaderMSBMessage struct {
	Value uint8
}

// FaderLSBMessage carries the low 7 bits of a fader report.
type FaderLSBMessage struct {
	Value uint8
}

// RotaryMessage is one tick of the Pan encoder. Delta is +1 for
// clockwise, -1 for counterclockwise. Shift is stamped on by the
// device state layer; the wire carries no modifier.
type RotaryMessage struct {
	Delta int
	Shift bool
}

// FaderMessage is a complete fader position, assembled from an MSB/LSB
// pair by the device state layer. It never comes out of Decode.
type FaderMessage struct {
	Value int
}

func (ButtonMessage) isDeviceMessage()     {}
func (FaderTouchMessage) isDeviceMessage() {}
func (FaderMSBMessage) isDeviceMessage()   {}
func (FaderLSBMessage) isDeviceMessage()   {}
func (RotaryMessage) isDeviceMessage()     {}
func (FaderMessage) isDeviceMessage()      {}

// Decode classifies a raw MIDI message into a device message. Unknown
// controller numbers, unmapped notes and foreign message types all
// return a *DecodeError; the caller surfaces and drops those.
func Decode(msg gomidi.Message) (Message, error) {
	var channel, key, value uint8

	switch {
	case msg.GetPolyAfterTouch(&channel, &key, &value):
		if key == faderTouchNote {
			return FaderTouchMessage{Touched: value != 0}, nil
		}
		if id, ok := buttonFromPress(key); ok {
			return ButtonMessage{Button: id, Pressed: value != 0}, nil
		}
		return nil, &DecodeError{Reason: "unmapped poly aftertouch note", Raw: msg.String()}

	case msg.GetControlChange(&channel, &key, &value):
		switch key {
		case ccFaderMSB:
			return FaderMSBMessage{Value: value}, nil
		case ccFaderLSB:
			return FaderLSBMessage{Value: value}, nil
		}
		return nil, &DecodeError{Reason: "out of range controller", Raw: msg.String()}
	}

	var rel int16
	var abs uint16
	if msg.GetPitchBend(&channel, &rel, &abs) {
		if rel < 0 {
			return RotaryMessage{Delta: 1}, nil
		}
		return RotaryMessage{Delta: -1}, nil
	}

	return nil, &DecodeError{Reason: "unrecognized message", Raw: msg.String()}
}

// Encode is the inverse of Decode: it renders a device message in the
// form the device itself would have sent it. Commands have their own
// encoders below (lights are addressed by light note, not press note).
func Encode(m Message) ([]gomidi.Message, error) {
	switch m := m.(type) {
	case ButtonMessage:
		if !m.Button.Valid() {
			return nil, &ValidationError{What: "button", Value: int(m.Button)}
		}
		return []gomidi.Message{gomidi.PolyAfterTouch(0, buttons[m.Button].Press, boolByte(m.Pressed))}, nil
	case FaderTouchMessage:
		return []gomidi.Message{gomidi.PolyAfterTouch(0, faderTouchNote, boolByte(m.Touched))}, nil
	case FaderMSBMessage:
		return []gomidi.Message{gomidi.ControlChange(0, ccFaderMSB, m.Value)}, nil
	case FaderLSBMessage:
		return []gomidi.Message{gomidi.ControlChange(0, ccFaderLSB, m.Value)}, nil
	case RotaryMessage:
		if m.Delta > 0 {
			return []gomidi.Message{gomidi.Pitchbend(0, -1)}, nil
		}
		return []gomidi.Message{gomidi.Pitchbend(0, 1)}, nil
	case FaderMessage:
		return encodeFader(m.Value)
	}
	return nil, &DecodeError{Reason: "unknown device message"}
}

// encodeLight renders a LightOn/LightOff command for one button.
func encodeLight(id ButtonID, on bool) gomidi.Message {
	return gomidi.PolyAfterTouch(0, buttons[id].Light, boolByte(on))
}

// encodeFader renders a fader move as an MSB/LSB controller pair.
// Values outside [0, FaderMax] are rejected rather than clamped so the
// wire never carries an ambiguous position.
func encodeFader(value int) ([]gomidi.Message, error) {
	if value < 0 || value > FaderMax {
		return nil, &ValidationError{What: "fader value", Value: value}
	}
	return []gomidi.Message{
		gomidi.ControlChange(0, ccFaderMSB, uint8(value>>7)),
		gomidi.ControlChange(0, ccFaderLSB, uint8(value&0x7F)),
	}, nil
}

// faderFromWire scales the device's 14-bit report to the 0-1023 range.
func faderFromWire(msb, lsb uint8) int {
	return (int(msb)<<7 | int(lsb)) >> 4
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
