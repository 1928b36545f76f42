package launchpad

import "bytes"

// Message is one raw outgoing MIDI message: a 3-byte lighting message or a
// complete SysEx frame including F0 and F7.
type Message []byte

const (
	sysExStart = 0xF0
	sysExEnd   = 0xF7

	statusNoteOn        = 0x90
	statusControlChange = 0xB0
)

// SysEx command bytes
const (
	cmdSetLayout        = 0x00
	cmdClearDawState    = 0x12
	cmdSetSessionButton = 0x14
	cmdSetMode          = 0x10

	modeStandalone = 0x00
	modeDaw        = 0x01

	layoutSession = 0x00
	layoutChord   = 0x02
	layoutCustom  = 0x03
	layoutNote    = 0x04
)

// LayoutID is a device layout reported by the layout readback.
type LayoutID int

const (
	LayoutSession LayoutID = iota
	LayoutNote
	LayoutChord
	LayoutCustom
	LayoutInternal // any device-internal layout such as the sequencer
)

func (l LayoutID) String() string {
	switch l {
	case LayoutSession:
		return "session"
	case LayoutNote:
		return "note"
	case LayoutChord:
		return "chord"
	case LayoutCustom:
		return "custom"
	case LayoutInternal:
		return "internal"
	}
	return "unknown"
}

// AckKind classifies an incoming SysEx frame.
type AckKind int

const (
	AckUnrecognized AckKind = iota
	AckStandalone
	AckDaw
	AckLayout
)

func (k AckKind) String() string {
	switch k {
	case AckStandalone:
		return "standalone"
	case AckDaw:
		return "daw"
	case AckLayout:
		return "layout"
	}
	return "unrecognized"
}

// Ack is the result of matching an incoming SysEx frame.
type Ack struct {
	Kind   AckKind
	Layout LayoutID // set when Kind is AckLayout
}

// SysEx frames a payload with this model's identity.
func (m *Model) SysEx(payload ...byte) Message {
	msg := make(Message, 0, len(m.Identity)+len(payload)+2)
	msg = append(msg, sysExStart)
	msg = append(msg, m.Identity...)
	msg = append(msg, payload...)
	return append(msg, sysExEnd)
}

// EnterDawMode returns the mode switch followed by the mode readback query.
func (m *Model) EnterDawMode() []Message {
	return []Message{
		m.SysEx(cmdSetMode, modeDaw),
		m.SysEx(cmdSetMode),
	}
}

// EnterStandaloneMode returns the mode switch followed by the mode readback query.
func (m *Model) EnterStandaloneMode() []Message {
	return []Message{
		m.SysEx(cmdSetMode, modeStandalone),
		m.SysEx(cmdSetMode),
	}
}

// SessionLayout switches the device to its session layout.
func (m *Model) SessionLayout() Message {
	return m.SetLayout(LayoutSession)
}

// SetLayout switches the device to layout. Internal layouts cannot be
// selected from the host and yield nil.
func (m *Model) SetLayout(layout LayoutID) Message {
	var b byte
	switch layout {
	case LayoutSession:
		b = layoutSession
	case LayoutNote:
		b = layoutNote
	case LayoutChord:
		b = layoutChord
	case LayoutCustom:
		b = layoutCustom
	default:
		return nil
	}
	if m.LayoutReadback {
		return m.layoutMessage(b)
	}
	return m.SysEx(cmdSetLayout, b)
}

// RequestLayout asks the device to report its current layout.
func (m *Model) RequestLayout() Message {
	return m.SysEx(cmdSetLayout)
}

func (m *Model) layoutMessage(layout byte) Message {
	return m.SysEx(cmdSetLayout, layout, 0, 0)
}

// ConnectMessages puts the device in DAW mode. Models with a layout
// readback also ask for the current layout.
func (m *Model) ConnectMessages() []Message {
	msgs := m.EnterDawMode()
	if m.LayoutReadback {
		msgs = append(msgs, m.RequestLayout())
	}
	return msgs
}

// DisconnectMessages hands the device back to standalone mode.
func (m *Model) DisconnectMessages() []Message {
	return m.EnterStandaloneMode()
}

// Clear turns off every pad and button.
func (m *Model) Clear() []Message {
	if m.ClearCommand {
		return []Message{m.SysEx(cmdClearDawState, 1, 0, 1)}
	}

	msgs := make([]Message, 0, m.Layout.Rows*m.Layout.Cols+len(m.Buttons))
	for row := 0; row < m.Layout.Rows; row++ {
		for col := 0; col < m.Layout.Cols; col++ {
			msgs = append(msgs, m.PadMessage(Pad{Row: row, Col: col}, Off))
		}
	}
	for _, b := range m.Buttons {
		msgs = append(msgs, m.ButtonMessage(b, Off))
	}
	return msgs
}

// ResetSessionButton restores the session button's default colours.
func (m *Model) ResetSessionButton() Message {
	return m.SysEx(cmdSetSessionButton, 0, 0)
}

// SetSessionButton gives the session button custom active/inactive colours.
func (m *Model) SetSessionButton(active, inactive Color) Message {
	return m.SysEx(cmdSetSessionButton, byte(active), byte(inactive))
}

// ButtonMessage lights a button. The session button is driven by its own
// SysEx and ignores the lighting mode.
func (m *Model) ButtonMessage(b Button, s Style) Message {
	if b == ButtonSession {
		if s.Color == ColorOff {
			return m.ResetSessionButton()
		}
		return m.SetSessionButton(s.Color, ColorOff)
	}
	return Message{statusControlChange + byte(s.Lighting), byte(b), byte(s.Color)}
}

// PadMessage lights a pad.
func (m *Model) PadMessage(p Pad, s Style) Message {
	return Message{statusNoteOn + byte(s.Lighting), m.Layout.NoteFromPad(p), byte(s.Color)}
}

// Match recognizes an incoming SysEx frame (F0 ... F7) using the same
// builders that produce outgoing messages. Unknown frames are unrecognized.
func (m *Model) Match(frame []byte) Ack {
	switch {
	case bytes.Equal(frame, m.SysEx(cmdSetMode, modeStandalone)):
		return Ack{Kind: AckStandalone}
	case bytes.Equal(frame, m.SysEx(cmdSetMode, modeDaw)):
		return Ack{Kind: AckDaw}
	}

	if !m.LayoutReadback {
		return Ack{Kind: AckUnrecognized}
	}

	switch {
	case bytes.Equal(frame, m.layoutMessage(layoutSession)):
		return Ack{Kind: AckLayout, Layout: LayoutSession}
	case bytes.Equal(frame, m.layoutMessage(layoutNote)):
		return Ack{Kind: AckLayout, Layout: LayoutNote}
	case bytes.Equal(frame, m.layoutMessage(layoutChord)):
		return Ack{Kind: AckLayout, Layout: LayoutChord}
	}

	// Custom and internal layouts carry variable trailing parameters.
	custom := m.SysEx(cmdSetLayout, layoutCustom)
	if len(frame) >= 8 && bytes.Equal(frame[:8], custom[:8]) {
		return Ack{Kind: AckLayout, Layout: LayoutCustom}
	}
	internal := m.RequestLayout()
	if len(frame) >= 7 && bytes.Equal(frame[:7], internal[:7]) {
		return Ack{Kind: AckLayout, Layout: LayoutInternal}
	}

	return Ack{Kind: AckUnrecognized}
}

// Frame wraps SysEx data without its F0/F7 delimiters back into a frame.
func Frame(data []byte) []byte {
	frame := make([]byte, 0, len(data)+2)
	frame = append(frame, sysExStart)
	frame = append(frame, data...)
	return append(frame, sysExEnd)
}

// Data strips the F0/F7 delimiters from a SysEx message.
func (msg Message) Data() []byte {
	if len(msg) >= 2 && msg[0] == sysExStart && msg[len(msg)-1] == sysExEnd {
		return msg[1 : len(msg)-1]
	}
	return msg
}

// IsSysEx reports whether the message is a SysEx frame.
func (msg Message) IsSysEx() bool {
	return len(msg) > 0 && msg[0] == sysExStart
}
