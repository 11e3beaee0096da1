// Package midi is the transport boundary: it finds the FaderPort's
// MIDI ports and provides the duplex Connection the driver core runs
// over. Everything device-protocol-specific lives in the root package;
// this one only moves messages.
package midi

import (
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver
)

// DefaultPortName matches the port names a FaderPort registers under.
const DefaultPortName = "faderport"

// ListInPorts returns the names of all MIDI input ports.
func ListInPorts() []string {
	ins := gomidi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of all MIDI output ports.
func ListOutPorts() []string {
	outs := gomidi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// FindInPort returns the first input port whose name contains substr,
// case-insensitively.
func FindInPort(substr string) (drivers.In, error) {
	lower := strings.ToLower(substr)
	for _, port := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("no MIDI input port matching %q", substr)
}

// FindOutPort returns the first output port whose name contains substr,
// case-insensitively.
func FindOutPort(substr string) (drivers.Out, error) {
	lower := strings.ToLower(substr)
	for _, port := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output port matching %q", substr)
}

// CloseDriver releases the underlying MIDI driver. Call once at
// process shutdown, after all connections are closed.
func CloseDriver() {
	gomidi.CloseDriver()
}
