package faderport

// Output commands. Each validates its input, updates the device state
// snapshot and then writes the encoded message(s), all under the one
// mutation lock. They are idempotent and safe to call from inside
// Handler callbacks.

// LightOn lights the LED of the given button.
//
// Lighting the Off button has a side effect on the hardware: the fader
// stops reporting value telemetry until the light is cleared. See the
// package documentation.
func (fp *FaderPort) LightOn(id ButtonID) error {
	return fp.setLight(id, true)
}

// LightOff clears the LED of the given button.
func (fp *FaderPort) LightOff(id ButtonID) error {
	return fp.setLight(id, false)
}

func (fp *FaderPort) setLight(id ButtonID, on bool) error {
	if !id.Valid() {
		return &ValidationError{What: "button", Value: int(id)}
	}
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.setLightLocked(id, on)
}

func (fp *FaderPort) setLightLocked(id ButtonID, on bool) error {
	if err := fp.sendLocked(encodeLight(id, on)); err != nil {
		return err
	}
	fp.state.setLight(id, on)
	return nil
}

// AllOn lights every button LED. Note that this lights Off too, which
// suppresses fader telemetry until AllOff or LightOff(ButtonOff).
func (fp *FaderPort) AllOn() error {
	return fp.setAll(true)
}

// AllOff clears every button LED.
func (fp *FaderPort) AllOff() error {
	return fp.setAll(false)
}

func (fp *FaderPort) setAll(on bool) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	for id := ButtonID(0); id < numButtons; id++ {
		if err := fp.setLightLocked(id, on); err != nil {
			return err
		}
	}
	return nil
}

// CharOn draws a hex glyph on the button matrix. The whole matrix
// region is cleared first so no segments of a previous glyph survive.
func (fp *FaderPort) CharOn(g Glyph) error {
	if !g.Valid() {
		return &ValidationError{What: "glyph", Value: int(g)}
	}
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.drawGlyphLocked(g)
}

func (fp *FaderPort) drawGlyphLocked(g Glyph) error {
	for id := ButtonID(0); id < numButtons; id++ {
		if glyphLit(g, id) {
			continue
		}
		if err := fp.setLightLocked(id, false); err != nil {
			return err
		}
	}
	for _, id := range glyphPatterns[g] {
		if err := fp.setLightLocked(id, true); err != nil {
			return err
		}
	}
	return nil
}

// SetFader moves the fader to a position in [0, FaderMax]. The stored
// echo value re-syncs immediately; outbound moves are not affected by
// the Off-light quirk. Out-of-range values are rejected with a
// ValidationError before anything is sent.
func (fp *FaderPort) SetFader(value int) error {
	msgs, err := encodeFader(value)
	if err != nil {
		return err
	}
	fp.mu.Lock()
	defer fp.mu.Unlock()
	if err := fp.sendLocked(msgs...); err != nil {
		return err
	}
	fp.state.setFader(value)
	return nil
}

// Fader returns the last known fader position: the last value reported
// by the device, or the last value commanded, whichever is newer.
func (fp *FaderPort) Fader() int {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.state.fader
}

// LightState reports whether the given button's LED is currently lit,
// per the driver's snapshot.
func (fp *FaderPort) LightState(id ButtonID) bool {
	if !id.Valid() {
		return false
	}
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.state.lights[id]
}

// ShiftHeld reports whether the Shift button is currently held.
func (fp *FaderPort) ShiftHeld() bool {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.state.shift
}
