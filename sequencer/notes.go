package sequencer

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// LastNote is the most recent note received from a surface or keyboard.
type LastNote struct {
	Pitch    uint8
	Velocity uint8
	Channel  uint8
	On       bool
	Valid    bool
}

// LastNote returns the most recent received note.
func (e *Engine) LastNote() LastNote {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastNote
}

// echoChannel is the output channel for live input: the focused clip's
// track, or the incoming channel when nothing is focused.
func (e *Engine) echoChannel(channel uint8) uint8 {
	if e.hasFocus {
		return uint8(e.focus.Track % 16)
	}
	return channel & 0x0F
}

// echo sends a live message outside the lock.
func (e *Engine) echo(build func(ch uint8) gomidi.Message, channel uint8) {
	e.mu.RLock()
	msg := build(e.echoChannel(channel))
	out := e.out
	e.mu.RUnlock()
	e.send([]gomidi.Message{msg}, out)
}

// ReceiveNoteOn plays a note through and records it into every armed,
// playing clip.
func (e *Engine) ReceiveNoteOn(note, velocity, channel uint8, timestamp int32) {
	e.mu.Lock()
	e.lastNote = LastNote{Pitch: note, Velocity: velocity, Channel: channel, On: true, Valid: true}
	if e.playing {
		for _, c := range e.sortedClips() {
			if !c.armed || c.state != statePlaying {
				continue
			}
			steps := int64(c.length * StepsPerBeat)
			pos := (e.step - c.start) % steps
			if c.quantized {
				pos = (pos + StepsPerBeat/2) / StepsPerBeat * StepsPerBeat % steps
			}
			c.notes = append(c.notes, Note{Step: int(pos), Pitch: note, Velocity: velocity})
			e.touch(c)
		}
	}
	e.unlockAndNotify()

	e.echo(func(ch uint8) gomidi.Message { return gomidi.NoteOn(ch, note, velocity) }, channel)
}

func (e *Engine) ReceiveNoteOff(note, velocity, channel uint8, timestamp int32) {
	e.mu.Lock()
	e.lastNote = LastNote{Pitch: note, Velocity: velocity, Channel: channel, Valid: true}
	e.mu.Unlock()

	e.echo(func(ch uint8) gomidi.Message { return gomidi.NoteOffVelocity(ch, note, velocity) }, channel)
}

func (e *Engine) ReceivePolyAftertouch(note, pressure, channel uint8, timestamp int32) {
	e.echo(func(ch uint8) gomidi.Message { return gomidi.PolyAfterTouch(ch, note, pressure) }, channel)
}

func (e *Engine) ReceiveChannelAftertouch(pressure, channel uint8, timestamp int32) {
	e.echo(func(ch uint8) gomidi.Message { return gomidi.AfterTouch(ch, pressure) }, channel)
}

// ReceiveControlChange plays a keyboard control change through.
func (e *Engine) ReceiveControlChange(controller, value, channel uint8, timestamp int32) {
	e.echo(func(ch uint8) gomidi.Message { return gomidi.ControlChange(ch, controller, value) }, channel)
}

// ReceivePitchBend plays a keyboard pitch bend through.
func (e *Engine) ReceivePitchBend(value int16, channel uint8, timestamp int32) {
	e.echo(func(ch uint8) gomidi.Message { return gomidi.Pitchbend(ch, value) }, channel)
}

// ReceiveProgramChange plays a keyboard program change through.
func (e *Engine) ReceiveProgramChange(program, channel uint8, timestamp int32) {
	e.echo(func(ch uint8) gomidi.Message { return gomidi.ProgramChange(ch, program) }, channel)
}
