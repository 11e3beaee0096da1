package faderport

import (
	"sync"
	"time"

	"github.com/fergy-nz/faderport/debug"
)

// A frame is one step of an animation: the set of region buttons lit,
// held for a duration. Buttons in the region but not in lit are dark.
type frame struct {
	lit  []ButtonID
	hold time.Duration
}

// A sequence is a complete animation over a fixed region of buttons.
// Sequences are built on demand, played once and discarded.
type sequence struct {
	name   string
	region []ButtonID
	frames []frame
}

// animator plays one sequence at a time on its own goroutine. Frames
// are applied through the FaderPort's single mutation point and the
// hold between frames is a timer wait, so inbound dispatch is never
// starved during playback. Starting a new sequence cancels the one in
// flight; the cancelled sequence restores the lights it was overriding
// to their pre-animation snapshot before the new one begins.
type animator struct {
	fp     *FaderPort
	playMu sync.Mutex // serializes play/stop, never held during playback
	cancel chan struct{}
	done   chan struct{}
}

func newAnimator(fp *FaderPort) *animator {
	return &animator{fp: fp}
}

// play cancels any running sequence, waits for its restore pass, then
// starts seq on a fresh goroutine and returns immediately.
func (a *animator) play(seq sequence) {
	a.playMu.Lock()
	defer a.playMu.Unlock()

	if a.cancel != nil {
		close(a.cancel)
		<-a.done
	}
	cancel := make(chan struct{})
	done := make(chan struct{})
	a.cancel, a.done = cancel, done

	debug.Log("animate", "play %s (%d frames)", seq.name, len(seq.frames))
	go a.run(seq, cancel, done)
}

// stop cancels the running sequence, if any, and waits for it.
func (a *animator) stop() {
	a.playMu.Lock()
	defer a.playMu.Unlock()

	if a.cancel != nil {
		close(a.cancel)
		<-a.done
		a.cancel, a.done = nil, nil
	}
}

func (a *animator) run(seq sequence, cancel, done chan struct{}) {
	defer close(done)

	fp := a.fp
	fp.mu.Lock()
	snap := fp.state.lightSnapshot(seq.region)
	fp.mu.Unlock()

	for _, f := range seq.frames {
		a.applyFrame(seq.region, f.lit)

		t := time.NewTimer(f.hold)
		select {
		case <-cancel:
			t.Stop()
			a.restore(seq.region, snap)
			return
		case <-t.C:
		}
	}
	a.restore(seq.region, snap)
}

// applyFrame sets every region button to exactly the frame's state.
func (a *animator) applyFrame(region, lit []ButtonID) {
	on := make(map[ButtonID]bool, len(lit))
	for _, id := range lit {
		on[id] = true
	}
	fp := a.fp
	fp.mu.Lock()
	for _, id := range region {
		if err := fp.setLightLocked(id, on[id]); err != nil {
			fp.mu.Unlock()
			debug.Log("animate", "frame aborted: %v", err)
			return
		}
	}
	fp.mu.Unlock()
}

// restore puts the region back to its pre-animation snapshot so a
// cancelled or finished sequence never leaves stuck lights.
func (a *animator) restore(region []ButtonID, snap map[ButtonID]bool) {
	fp := a.fp
	fp.mu.Lock()
	defer fp.mu.Unlock()
	for _, id := range region {
		if err := fp.setLightLocked(id, snap[id]); err != nil {
			debug.Log("animate", "restore aborted: %v", err)
			return
		}
	}
}

// Countdown plays the glyphs n, n-1, ..., 0 on the button matrix, each
// held for the configured interval with a short dark gap between
// digits. n must be a valid glyph value (0-15).
func (fp *FaderPort) Countdown(n int) error {
	if n < 0 || int(Glyph(n)) >= int(numGlyphs) {
		return &ValidationError{What: "countdown start", Value: n}
	}
	fp.anim.play(countdownSequence(n, fp.opts.countdownInterval))
	return nil
}

// Snake lights the buttons one by one in table order, then turns them
// off again in reverse, like the worst Snake game you ever played.
func (fp *FaderPort) Snake() {
	fp.anim.play(snakeSequence(fp.opts.snakeStep))
}

// Chase runs lit positions around a fixed loop of buttons with
// wraparound. Shape and speed come from the options.
func (fp *FaderPort) Chase() {
	fp.anim.play(chaseSequence(fp.opts.chaseStep, fp.opts.chaseLights, fp.opts.chaseTicks))
}

// Blink flashes one button's light for exactly the given number of
// on/off cycles, then leaves it in the state it started in.
func (fp *FaderPort) Blink(id ButtonID, times int) error {
	if !id.Valid() {
		return &ValidationError{What: "button", Value: int(id)}
	}
	if times < 1 {
		return &ValidationError{What: "blink count", Value: times}
	}
	fp.anim.play(blinkSequence(id, times, fp.opts.blinkInterval))
	return nil
}

// StopAnimation cancels any animation in flight and restores the
// lights it was overriding.
func (fp *FaderPort) StopAnimation() {
	fp.anim.stop()
}

func countdownSequence(n int, interval time.Duration) sequence {
	seq := sequence{name: "countdown", region: Buttons()}
	for i := n; i >= 0; i-- {
		seq.frames = append(seq.frames,
			frame{lit: glyphPatterns[Glyph(i)], hold: interval * 2 / 3},
			frame{lit: nil, hold: interval / 3},
		)
	}
	return seq
}

func snakeSequence(step time.Duration) sequence {
	seq := sequence{name: "snake", region: Buttons()}
	all := Buttons()
	for i := 1; i <= int(numButtons); i++ {
		seq.frames = append(seq.frames, frame{lit: all[:i], hold: step})
	}
	for i := int(numButtons) - 1; i >= 0; i-- {
		seq.frames = append(seq.frames, frame{lit: all[:i], hold: step})
	}
	return seq
}

// chasePath is the loop of buttons the chase walks, chosen to trace the
// outline of the button block. It runs through Off, so fader telemetry
// is suppressed while a chase is playing.
var chasePath = []ButtonID{
	ButtonChanDown,
	ButtonBank,
	ButtonChanUp,
	ButtonOutput,
	ButtonOff,
	ButtonUndo,
	ButtonLoop,
	ButtonUser,
	ButtonPunch,
	ButtonShift,
	ButtonMix,
	ButtonRead,
}

func chaseSequence(step time.Duration, lights, ticks int) sequence {
	if lights < 1 || lights > 4 {
		lights = 2
	}
	seq := sequence{name: "chase", region: chasePath}
	n := len(chasePath)
	for t := 0; t < ticks; t++ {
		var lit []ButtonID
		for k := 0; k < lights; k++ {
			lit = append(lit, chasePath[(t+k*n/lights)%n])
		}
		seq.frames = append(seq.frames, frame{lit: lit, hold: step})
	}
	return seq
}

func blinkSequence(id ButtonID, times int, interval time.Duration) sequence {
	seq := sequence{name: "blink", region: []ButtonID{id}}
	for i := 0; i < times; i++ {
		seq.frames = append(seq.frames,
			frame{lit: []ButtonID{id}, hold: interval / 2},
			frame{lit: nil, hold: interval / 2},
		)
	}
	return seq
}
