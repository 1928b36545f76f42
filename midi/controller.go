package midi

import (
	"errors"

	"go-gridlink/config"
	"go-gridlink/control"
)

// ErrClosed is returned when talking to a controller that was closed.
var ErrClosed = errors.New("controller closed")

// Controller is a connected MIDI input device.
type Controller interface {
	ID() string
	Type() config.ControllerType
	Close() error
}

// Engine is what controllers drive: the control surface contract plus
// change notifications. *sequencer.Engine is an Engine.
type Engine interface {
	control.Engine
	Receiver
	Subscribe(fn func(track, slot int)) (cancel func())
}

// Receiver takes the messages a plain keyboard plays.
type Receiver interface {
	control.NoteSink
	ReceiveControlChange(controller, value, channel uint8, timestamp int32)
	ReceivePitchBend(value int16, channel uint8, timestamp int32)
	ReceiveProgramChange(program, channel uint8, timestamp int32)
}
