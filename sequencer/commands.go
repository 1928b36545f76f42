package sequencer

import (
	"go-gridlink/debug"
	"go-gridlink/launchpad"
)

func (e *Engine) clipAt(track, slot int) *clip {
	return e.clips[launchpad.TrackSlot{Track: track, Slot: slot}]
}

// LaunchClip queues a clip to start on the next bar, replacing whatever
// its track plays. Launching starts the transport.
func (e *Engine) LaunchClip(track, slot int) {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if e.launchLocked(track, slot) {
		e.startLocked()
	}
}

func (e *Engine) launchLocked(track, slot int) bool {
	c := e.clipAt(track, slot)
	if c == nil {
		return false
	}
	for _, other := range e.clipsOnTrack(track) {
		if other != c && other.state != stateStopped {
			other.stop()
			e.touch(other)
		}
	}
	c.launch()
	e.touch(c)
	e.focus = launchpad.TrackSlot{Track: track, Slot: slot}
	e.hasFocus = true
	debug.Log("engine", "launch %d/%d", track, slot)
	return true
}

func (e *Engine) StopClip(track, slot int) {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if c := e.clipAt(track, slot); c != nil {
		c.stop()
		e.touch(c)
	}
}

func (e *Engine) StopTrack(track int) {
	e.mu.Lock()
	defer e.unlockAndNotify()
	e.stopTrackLocked(track)
}

func (e *Engine) stopTrackLocked(track int) {
	for _, c := range e.clipsOnTrack(track) {
		if c.state == stateStopped {
			continue
		}
		if c.stop() {
			e.bulkRelease[track] = true
		}
		e.touch(c)
	}
}

// LaunchScene launches every clip in a slot and stops tracks that have no
// clip there. A slot past the grid stops everything.
func (e *Engine) LaunchScene(slot int) {
	e.mu.Lock()
	defer e.unlockAndNotify()

	triggered := false
	for track := 0; track < e.tracks; track++ {
		if e.launchLocked(track, slot) {
			triggered = true
		} else {
			e.stopTrackLocked(track)
		}
	}
	if triggered {
		e.bulkTrigger[slot] = true
		e.startLocked()
	}
	debug.Log("engine", "scene %d triggered=%v", slot, triggered)
}

func (e *Engine) ArmClip(track, slot int) {
	e.setClip(track, slot, func(c *clip) { c.armed = true })
}

func (e *Engine) DisarmClip(track, slot int) {
	e.setClip(track, slot, func(c *clip) { c.armed = false })
}

// ArmTrack arms the lowest launched clip on a track, or its lowest clip.
func (e *Engine) ArmTrack(track int) {
	e.mu.Lock()
	defer e.unlockAndNotify()
	clips := e.clipsOnTrack(track)
	if len(clips) == 0 {
		return
	}
	target := clips[0]
	for _, c := range clips {
		if c.launched() {
			target = c
			break
		}
	}
	target.armed = true
	e.touch(target)
}

func (e *Engine) DisarmTrack(track int) {
	e.setTrack(track, func(c *clip) { c.armed = false })
}

func (e *Engine) SoloTrack(track int) {
	e.setTrack(track, func(c *clip) { c.soloed = true })
}

func (e *Engine) UnsoloTrack(track int) {
	e.setTrack(track, func(c *clip) { c.soloed = false })
}

func (e *Engine) MuteTrack(track int) {
	e.setTrack(track, func(c *clip) { c.muted = true })
}

func (e *Engine) UnmuteTrack(track int) {
	e.setTrack(track, func(c *clip) { c.muted = false })
}

// ClearActivePattern erases a clip's recorded notes.
func (e *Engine) ClearActivePattern(track, slot int) {
	e.setClip(track, slot, func(c *clip) { c.notes = nil })
}

// DuplicateActivePattern doubles a clip, repeating its notes.
func (e *Engine) DuplicateActivePattern(track, slot int) {
	e.setClip(track, slot, func(c *clip) {
		steps := c.length * StepsPerBeat
		for _, n := range c.notes {
			n.Step += steps
			c.notes = append(c.notes, n)
		}
		c.length *= 2
	})
}

// ToggleQuantization switches recording between free steps and whole beats.
func (e *Engine) ToggleQuantization(track, slot int) {
	e.setClip(track, slot, func(c *clip) { c.quantized = !c.quantized })
}

func (e *Engine) setClip(track, slot int, f func(*clip)) {
	e.mu.Lock()
	defer e.unlockAndNotify()
	if c := e.clipAt(track, slot); c != nil {
		f(c)
		e.touch(c)
	}
}

func (e *Engine) setTrack(track int, f func(*clip)) {
	e.mu.Lock()
	defer e.unlockAndNotify()
	for _, c := range e.clipsOnTrack(track) {
		f(c)
		e.touch(c)
	}
}
