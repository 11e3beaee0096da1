package faderport

import "time"

type options struct {
	onError           func(error)
	countdownInterval time.Duration
	snakeStep         time.Duration
	chaseStep         time.Duration
	blinkInterval     time.Duration
	chaseLights       int
	chaseTicks        int
}

func defaultOptions() options {
	return options{
		countdownInterval: 500 * time.Millisecond,
		snakeStep:         30 * time.Millisecond,
		chaseStep:         80 * time.Millisecond,
		blinkInterval:     200 * time.Millisecond,
		chaseLights:       2,
		chaseTicks:        20,
	}
}

// Option configures a FaderPort.
type Option func(*options)

// WithErrorHandler installs a hook for decode errors. Without one they
// only go to the debug log.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

// WithCountdownInterval sets the hold per digit during Countdown.
func WithCountdownInterval(d time.Duration) Option {
	return func(o *options) { o.countdownInterval = d }
}

// WithSnakeStep sets the hold per button during Snake.
func WithSnakeStep(d time.Duration) Option {
	return func(o *options) { o.snakeStep = d }
}

// WithChaseStep sets the hold per chase step.
func WithChaseStep(d time.Duration) Option {
	return func(o *options) { o.chaseStep = d }
}

// WithBlinkInterval sets the length of one on/off cycle during Blink.
func WithBlinkInterval(d time.Duration) Option {
	return func(o *options) { o.blinkInterval = d }
}

// WithChaseShape sets how many lights run the chase path (1-4) and how
// many steps the chase lasts.
func WithChaseShape(lights, ticks int) Option {
	return func(o *options) {
		if lights >= 1 && lights <= 4 {
			o.chaseLights = lights
		}
		if ticks > 0 {
			o.chaseTicks = ticks
		}
	}
}
