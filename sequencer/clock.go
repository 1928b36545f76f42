package sequencer

import (
	"context"
	"time"

	"go-gridlink/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Tempo limits
const (
	MinTempo = 20
	MaxTempo = 300
)

// Play starts the transport from the top.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.unlockAndNotify()
	e.startLocked()
}

func (e *Engine) startLocked() {
	if e.playing {
		return
	}
	e.playing = true
	e.step = 0
	debug.Log("engine", "play tempo=%d", e.tempo)
}

// Stop halts the transport and every clip immediately.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.playing {
		e.mu.Unlock()
		return
	}
	e.playing = false
	for _, c := range e.sortedClips() {
		if c.state != stateStopped {
			c.state = stateStopped
			e.touch(c)
		}
	}
	clear(e.bulkTrigger)
	clear(e.bulkRelease)
	offs := e.pendingOff
	e.pendingOff = nil
	out := e.out
	debug.Log("engine", "stop")
	e.unlockAndNotify()

	e.send(offs, out)
}

// Toggle starts or stops the transport.
func (e *Engine) Toggle() {
	if e.Playing() {
		e.Stop()
	} else {
		e.Play()
	}
}

// Playing reports whether the transport runs.
func (e *Engine) Playing() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.playing
}

// SetTempo sets the BPM, clamped to MinTempo..MaxTempo.
func (e *Engine) SetTempo(bpm int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tempo = max(MinTempo, min(MaxTempo, bpm))
}

// Position returns the current bar and beat, both from zero.
func (e *Engine) Position() (bar, beat int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	beats := int(e.step / StepsPerBeat)
	return beats / e.beatsPerBar, beats % e.beatsPerBar
}

// State returns the transport state.
func (e *Engine) State() (step int64, playing bool, tempo int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.step, e.playing, e.tempo
}

func (e *Engine) stepDuration() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return time.Minute / time.Duration(e.tempo*StepsPerBeat)
}

// Tick advances the clock one step. On a bar boundary pending launches
// and stops take effect.
func (e *Engine) Tick() {
	e.mu.Lock()
	if !e.playing {
		e.mu.Unlock()
		return
	}

	msgs := e.pendingOff
	e.pendingOff = nil

	if e.step%int64(e.beatsPerBar*StepsPerBeat) == 0 {
		e.settleLocked()
	}
	msgs = append(msgs, e.playLocked()...)
	e.step++
	out := e.out
	e.unlockAndNotify()

	e.send(msgs, out)
}

// settleLocked applies every pending transition.
func (e *Engine) settleLocked() {
	for _, c := range e.sortedClips() {
		if c.settle() {
			if c.state == statePlaying {
				c.start = e.step
			}
			e.touch(c)
		}
	}
	clear(e.bulkTrigger)
	clear(e.bulkRelease)
}

// playLocked returns the notes due on the current step. Each note is
// held for one step.
func (e *Engine) playLocked() []gomidi.Message {
	soloing := false
	for _, c := range e.clips {
		if c.soloed && c.playing() {
			soloing = true
			break
		}
	}

	var msgs []gomidi.Message
	for _, c := range e.sortedClips() {
		if !c.playing() || c.muted || (soloing && !c.soloed) {
			continue
		}
		pos := int((e.step - c.start) % int64(c.length*StepsPerBeat))
		ch := uint8(c.track % 16)
		for _, n := range c.notes {
			if n.Step == pos {
				msgs = append(msgs, gomidi.NoteOn(ch, n.Pitch, n.Velocity))
				e.pendingOff = append(e.pendingOff, gomidi.NoteOff(ch, n.Pitch))
			}
		}
	}
	return msgs
}

// Run drives Tick at the current tempo until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	d := e.stepDuration()
	ticker := time.NewTicker(d)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.Stop()
			return nil
		case <-ticker.C:
			e.Tick()
			if next := e.stepDuration(); next != d {
				d = next
				ticker.Reset(d)
			}
		}
	}
}
