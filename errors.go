package faderport

import (
	"errors"
	"fmt"
)

// ErrNotOpen is returned by commands issued while no connection is open.
var ErrNotOpen = errors.New("faderport: not open")

// DecodeError reports an inbound MIDI message the codec could not map to
// a device event. These are surfaced and dropped; silently discarding
// them has previously masked real device faults (the stuck Bank light).
type DecodeError struct {
	Reason string
	Raw    string // String() of the offending message
}

func (e *DecodeError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("faderport: decode: %s", e.Reason)
	}
	return fmt.Sprintf("faderport: decode: %s (%s)", e.Reason, e.Raw)
}

// ValidationError reports an out-of-range value passed to an output
// command. Nothing is sent and no state changes when one is returned.
type ValidationError struct {
	What  string
	Value int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("faderport: invalid %s: %d", e.What, e.Value)
}

// ConnectionError reports a failure to open or close the transport.
// The session does not retry; the caller decides what to do.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("faderport: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
