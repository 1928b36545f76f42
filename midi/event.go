package midi

import (
	"go-gridlink/launchpad"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Kind is the type of an incoming MIDI message.
type Kind int

const (
	KindNoteOn Kind = iota
	KindNoteOff
	KindControlChange
	KindPolyAftertouch
	KindChannelAftertouch
	KindPitchBend
	KindProgramChange
	KindSysEx
)

func (k Kind) String() string {
	switch k {
	case KindNoteOn:
		return "note-on"
	case KindNoteOff:
		return "note-off"
	case KindControlChange:
		return "cc"
	case KindPolyAftertouch:
		return "poly-aftertouch"
	case KindChannelAftertouch:
		return "channel-aftertouch"
	case KindPitchBend:
		return "pitch-bend"
	case KindProgramChange:
		return "program-change"
	case KindSysEx:
		return "sysex"
	}
	return "unknown"
}

// Event is a decoded incoming message.
//
// Primary is the note, controller number, program or channel pressure;
// Secondary is the velocity, value or key pressure.
type Event struct {
	Kind      Kind
	Primary   uint8
	Secondary uint8
	Channel   uint8
	Bend      int16  // pitch bend, -8192..8191
	Data      []byte // sysex data without F0/F7
	Timestamp int32  // milliseconds since the port opened
}

// Decode converts a gomidi message. Realtime and other unsupported
// messages report false.
func Decode(msg gomidi.Message, ts int32) (Event, bool) {
	ev := Event{Timestamp: ts}
	var abs uint16

	switch {
	case msg.GetNoteOn(&ev.Channel, &ev.Primary, &ev.Secondary):
		ev.Kind = KindNoteOn
	case msg.GetNoteOff(&ev.Channel, &ev.Primary, &ev.Secondary):
		ev.Kind = KindNoteOff
	case msg.GetControlChange(&ev.Channel, &ev.Primary, &ev.Secondary):
		ev.Kind = KindControlChange
	case msg.GetPolyAfterTouch(&ev.Channel, &ev.Primary, &ev.Secondary):
		ev.Kind = KindPolyAftertouch
	case msg.GetAfterTouch(&ev.Channel, &ev.Primary):
		ev.Kind = KindChannelAftertouch
	case msg.GetPitchBend(&ev.Channel, &ev.Bend, &abs):
		ev.Kind = KindPitchBend
	case msg.GetProgramChange(&ev.Channel, &ev.Primary):
		ev.Kind = KindProgramChange
	case msg.GetSysEx(&ev.Data):
		ev.Kind = KindSysEx
	default:
		return Event{}, false
	}
	return ev, true
}

// Handler receives decoded events. *control.Controller is a Handler.
type Handler interface {
	OnNoteOn(note, velocity, channel uint8, timestamp int32)
	OnNoteOff(note, velocity, channel uint8, timestamp int32)
	OnControlChange(cc, value, channel uint8, timestamp int32)
	OnPolyAftertouch(note, pressure, channel uint8, timestamp int32)
	OnChannelAftertouch(pressure, channel uint8, timestamp int32)
	OnSysEx(frame []byte)
}

// PitchBendHandler is implemented by handlers that take pitch bend.
type PitchBendHandler interface {
	OnPitchBend(value int16, channel uint8, timestamp int32)
}

// ProgramChangeHandler is implemented by handlers that take program changes.
type ProgramChangeHandler interface {
	OnProgramChange(program, channel uint8, timestamp int32)
}

// Dispatch routes an event to h. Pitch bend and program change are dropped
// unless h handles them.
func Dispatch(h Handler, ev Event) {
	switch ev.Kind {
	case KindNoteOn:
		h.OnNoteOn(ev.Primary, ev.Secondary, ev.Channel, ev.Timestamp)
	case KindNoteOff:
		h.OnNoteOff(ev.Primary, ev.Secondary, ev.Channel, ev.Timestamp)
	case KindControlChange:
		h.OnControlChange(ev.Primary, ev.Secondary, ev.Channel, ev.Timestamp)
	case KindPolyAftertouch:
		h.OnPolyAftertouch(ev.Primary, ev.Secondary, ev.Channel, ev.Timestamp)
	case KindChannelAftertouch:
		h.OnChannelAftertouch(ev.Primary, ev.Channel, ev.Timestamp)
	case KindPitchBend:
		if pb, ok := h.(PitchBendHandler); ok {
			pb.OnPitchBend(ev.Bend, ev.Channel, ev.Timestamp)
		}
	case KindProgramChange:
		if pc, ok := h.(ProgramChangeHandler); ok {
			pc.OnProgramChange(ev.Primary, ev.Channel, ev.Timestamp)
		}
	case KindSysEx:
		h.OnSysEx(launchpad.Frame(ev.Data))
	}
}
