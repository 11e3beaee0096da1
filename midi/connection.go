package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Connection is an open duplex MIDI link to one device. It satisfies
// the driver core's Connection interface. Inbound messages are
// delivered sequentially from gomidi's single listener goroutine.
type Connection struct {
	name string
	send func(msg gomidi.Message) error
	stop func()

	mu   sync.Mutex
	recv func(msg gomidi.Message)
}

// Open finds the input and output ports whose names contain name
// (case-insensitive) and opens both directions. It does not retry:
// a missing or unopenable port is the caller's problem to surface.
func Open(name string) (*Connection, error) {
	inPort, err := FindInPort(name)
	if err != nil {
		return nil, err
	}
	outPort, err := FindOutPort(name)
	if err != nil {
		return nil, err
	}

	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", outPort.String(), err)
	}

	c := &Connection{name: inPort.String(), send: send}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		c.mu.Lock()
		fn := c.recv
		c.mu.Unlock()
		if fn != nil {
			fn(msg)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", inPort.String(), err)
	}
	c.stop = stop

	return c, nil
}

// String returns the port name the connection is bound to.
func (c *Connection) String() string { return c.name }

// Send writes one MIDI message to the device.
func (c *Connection) Send(msg gomidi.Message) error {
	return c.send(msg)
}

// OnReceive registers the inbound handler. Messages arriving before
// registration are dropped; the driver registers its handler before it
// accepts traffic, after the reset sequence.
func (c *Connection) OnReceive(fn func(msg gomidi.Message)) {
	c.mu.Lock()
	c.recv = fn
	c.mu.Unlock()
}

// Close stops the listener and detaches the handler. Safe to call
// more than once. The underlying driver stays up for other
// connections; see CloseDriver.
func (c *Connection) Close() error {
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.recv = nil
	c.mu.Unlock()

	// Stop outside the lock: it may wait for an in-flight delivery,
	// and deliveries take the lock to read the handler.
	if stop != nil {
		stop()
	}
	return nil
}
