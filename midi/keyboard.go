package midi

import (
	"fmt"

	"go-gridlink/config"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Keyboard is an input-only controller whose every message is played
// through the engine.
type Keyboard struct {
	id       string
	channel  int // 1-16 to only accept one channel, 0 for all
	target   Receiver
	stopFunc func()
}

// NewKeyboard creates a keyboard feeding target. Input is fed with Receive.
func NewKeyboard(id string, channel int, target Receiver) *Keyboard {
	return &Keyboard{id: id, channel: channel, target: target}
}

// OpenKeyboard listens to a keyboard port.
func OpenKeyboard(id string, channel int, target Receiver, inPort drivers.In) (*Keyboard, error) {
	kb := NewKeyboard(id, channel, target)
	stop, err := gomidi.ListenTo(inPort, kb.Receive)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", inPort, err)
	}
	kb.stopFunc = stop
	return kb, nil
}

func (kb *Keyboard) ID() string {
	return kb.id
}

func (kb *Keyboard) Type() config.ControllerType {
	return config.ControllerKeyboard
}

// Receive handles one incoming message. It is the ListenTo callback.
func (kb *Keyboard) Receive(msg gomidi.Message, timestampms int32) {
	ev, ok := Decode(msg, timestampms)
	if !ok {
		return
	}
	if kb.channel > 0 && ev.Kind != KindSysEx && int(ev.Channel) != kb.channel-1 {
		return
	}
	Dispatch(kb, ev)
}

func (kb *Keyboard) OnNoteOn(note, velocity, channel uint8, timestamp int32) {
	if velocity == 0 {
		kb.target.ReceiveNoteOff(note, 0, channel, timestamp)
		return
	}
	kb.target.ReceiveNoteOn(note, velocity, channel, timestamp)
}

func (kb *Keyboard) OnNoteOff(note, velocity, channel uint8, timestamp int32) {
	kb.target.ReceiveNoteOff(note, velocity, channel, timestamp)
}

func (kb *Keyboard) OnControlChange(cc, value, channel uint8, timestamp int32) {
	kb.target.ReceiveControlChange(cc, value, channel, timestamp)
}

func (kb *Keyboard) OnPolyAftertouch(note, pressure, channel uint8, timestamp int32) {
	kb.target.ReceivePolyAftertouch(note, pressure, channel, timestamp)
}

func (kb *Keyboard) OnChannelAftertouch(pressure, channel uint8, timestamp int32) {
	kb.target.ReceiveChannelAftertouch(pressure, channel, timestamp)
}

func (kb *Keyboard) OnPitchBend(value int16, channel uint8, timestamp int32) {
	kb.target.ReceivePitchBend(value, channel, timestamp)
}

func (kb *Keyboard) OnProgramChange(program, channel uint8, timestamp int32) {
	kb.target.ReceiveProgramChange(program, channel, timestamp)
}

// OnSysEx ignores SysEx; keyboards have no surface protocol.
func (kb *Keyboard) OnSysEx(frame []byte) {}

func (kb *Keyboard) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	return nil
}
