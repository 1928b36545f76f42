package sequencer

import (
	"slices"

	"go-gridlink/control"
	"go-gridlink/launchpad"
)

func (e *Engine) Clip(track, slot int) (control.Clip, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.clips[launchpad.TrackSlot{Track: track, Slot: slot}]
	if !ok {
		return nil, false
	}
	return c.snapshot(), true
}

func (e *Engine) Clips() []control.Clip {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sorted := e.sortedClips()
	out := make([]control.Clip, len(sorted))
	for i, c := range sorted {
		out[i] = c.snapshot()
	}
	return out
}

// Snapshot returns copies of every clip, ordered by track then slot.
func (e *Engine) Snapshot() []Clip {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sorted := e.sortedClips()
	out := make([]Clip, len(sorted))
	for i, c := range sorted {
		out[i] = c.snapshot()
	}
	return out
}

// FocusedClips returns the most recently launched clip, if any.
func (e *Engine) FocusedClips() []control.Clip {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.hasFocus {
		return nil
	}
	c, ok := e.clips[e.focus]
	if !ok {
		return nil
	}
	return []control.Clip{c.snapshot()}
}

func (e *Engine) HasFocusedClips() bool {
	return len(e.FocusedClips()) > 0
}

func (e *Engine) tracksWhere(f func(*clip) bool) []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var tracks []int
	for _, c := range e.clips {
		if f(c) && !slices.Contains(tracks, c.track) {
			tracks = append(tracks, c.track)
		}
	}
	slices.Sort(tracks)
	return tracks
}

func (e *Engine) PlayingTracks() []int {
	return e.tracksWhere((*clip).playing)
}

func (e *Engine) HasPlayingTracks() bool {
	return len(e.PlayingTracks()) > 0
}

func (e *Engine) RecordingTracks() []int {
	return e.tracksWhere(func(c *clip) bool { return c.armed })
}

func (e *Engine) HasRecordingTracks() bool {
	return len(e.RecordingTracks()) > 0
}

// MaxTrackAndSlot returns the highest track and slot index of the grid.
func (e *Engine) MaxTrackAndSlot() (track, slot int) {
	return e.tracks - 1, e.slots - 1
}

func (e *Engine) anyOnTrack(track int, f func(*clip) bool) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, c := range e.clips {
		if c.track == track && f(c) {
			return true
		}
	}
	return false
}

// allOnTrack reports whether the track has clips and f holds for all of them.
func (e *Engine) allOnTrack(track int, f func(*clip) bool) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	found := false
	for _, c := range e.clips {
		if c.track != track {
			continue
		}
		if !f(c) {
			return false
		}
		found = true
	}
	return found
}

func (e *Engine) HasClipOnTrack(track int) bool {
	return e.anyOnTrack(track, func(*clip) bool { return true })
}

func (e *Engine) IsAnyPlayingOnTrack(track int) bool {
	return e.anyOnTrack(track, (*clip).playing)
}

func (e *Engine) IsAnyTriggeringOnTrack(track int) bool {
	return e.anyOnTrack(track, func(c *clip) bool { return c.state == stateStarting })
}

func (e *Engine) IsAnyNotStoppedOnTrack(track int) bool {
	return e.anyOnTrack(track, func(c *clip) bool { return c.state != stateStopped })
}

func (e *Engine) IsAnyReleasingOnTrack(track int) bool {
	return e.anyOnTrack(track, func(c *clip) bool { return c.state == stateStopping })
}

func (e *Engine) IsAllSoloingOnTrack(track int) bool {
	return e.allOnTrack(track, func(c *clip) bool { return c.soloed })
}

func (e *Engine) IsAllMutedOnTrack(track int) bool {
	return e.allOnTrack(track, func(c *clip) bool { return c.muted })
}

func (e *Engine) IsAnyRecordingOnTrack(track int) bool {
	return e.anyOnTrack(track, func(c *clip) bool { return c.armed })
}

func (e *Engine) IsBulkReleasingOnTrack(track int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bulkRelease[track]
}

func (e *Engine) IsBulkTriggeringOnSlot(slot int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bulkTrigger[slot]
}

func (e *Engine) LaunchedClipWithLowestSlotOnTrack(track int) (control.Clip, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, c := range e.clipsOnTrack(track) {
		if c.launched() {
			return c.snapshot(), true
		}
	}
	return nil, false
}

func (e *Engine) ClipWithLowestSlotOnTrack(track int) (control.Clip, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	clips := e.clipsOnTrack(track)
	if len(clips) == 0 {
		return nil, false
	}
	return clips[0].snapshot(), true
}
