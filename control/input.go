package control

import "go-gridlink/launchpad"

// activeInput is the input mode in effect for the current view. On
// surfaces with a mixer view, input modes only apply there.
func (c *Controller) activeInput() InputMode {
	if c.profile.Has(FeatureMixer) && c.state.View != ViewMixer {
		return InputNone
	}
	return c.state.Input
}

// onTrackRow reports whether a pad belongs to the bottom row that acts on
// whole tracks while an input mode is active.
func (c *Controller) onTrackRow(p launchpad.Pad) bool {
	return c.profile.Has(FeaturePadTrackRow) && p.Row == c.profile.Model.Layout.Rows-1
}

// pressPad handles a pad press outside passthrough views and reports
// whether anything changed.
func (c *Controller) pressPad(p launchpad.Pad) bool {
	if !c.profile.Model.Layout.InBounds(p) {
		return false
	}
	ts := c.viewport.Logical(p)

	if c.state.Momentary != MomentaryNone {
		c.state.highlighting.add(ts)
		return true
	}
	if !c.state.View.launches() {
		return false
	}

	input := c.activeInput()
	switch {
	case input == InputRecord && !c.onTrackRow(p):
		c.armSlot(ts)
	case input == InputNone || !c.onTrackRow(p):
		c.launchSlot(ts, true)
	default:
		c.trackAction(input, ts.Track)
	}
	return true
}

// releasePad handles a pad release outside passthrough views.
func (c *Controller) releasePad(p launchpad.Pad) bool {
	if !c.profile.Model.Layout.InBounds(p) {
		return false
	}
	ts := c.viewport.Logical(p)

	switch c.state.Momentary {
	case MomentaryClear:
		c.state.highlighting.remove(ts)
		c.engine.ClearActivePattern(ts.Track, ts.Slot)
		return true
	case MomentaryDuplicate:
		c.state.highlighting.remove(ts)
		c.engine.DuplicateActivePattern(ts.Track, ts.Slot)
		return true
	case MomentaryQuantize:
		c.state.highlighting.remove(ts)
		c.engine.ToggleQuantization(ts.Track, ts.Slot)
		return true
	}

	if !c.state.View.launches() {
		return false
	}
	if c.activeInput() == InputNone || !c.onTrackRow(p) {
		c.launchSlot(ts, false)
		return true
	}
	return false
}

// launchSlot applies a clip's press or release launch behavior. Pressing
// an empty slot stops its track.
func (c *Controller) launchSlot(ts launchpad.TrackSlot, press bool) {
	clip, ok := c.engine.Clip(ts.Track, ts.Slot)
	if !ok {
		if press {
			c.stopEmpty(ts)
		}
		return
	}

	behavior := clip.NoteOffBehavior()
	if press {
		behavior = clip.NoteOnBehavior()
	}
	switch behavior.Action(clip.IsLaunched()) {
	case ActionLaunch:
		c.engine.LaunchClip(ts.Track, ts.Slot)
	case ActionRetrigger:
		c.engine.StopClip(ts.Track, ts.Slot)
		c.engine.LaunchClip(ts.Track, ts.Slot)
	case ActionStop:
		c.engine.StopClip(ts.Track, ts.Slot)
	}
}

func (c *Controller) stopEmpty(ts launchpad.TrackSlot) {
	switch {
	case c.engine.IsAnyPlayingOnTrack(ts.Track):
		c.state.stopping.add(ts)
		c.engine.StopTrack(ts.Track)
	case c.engine.IsAnyTriggeringOnTrack(ts.Track):
		c.engine.StopTrack(ts.Track)
	}
}

// armSlot toggles recording on a clip while in record mode.
func (c *Controller) armSlot(ts launchpad.TrackSlot) {
	clip, ok := c.engine.Clip(ts.Track, ts.Slot)
	switch {
	case ok && !clip.IsRecording():
		c.engine.ArmClip(ts.Track, ts.Slot)
	case ok:
		c.engine.DisarmClip(ts.Track, ts.Slot)
	default:
		c.stopEmpty(ts)
	}
}

// trackAction applies an input mode to a whole track.
func (c *Controller) trackAction(input InputMode, track int) {
	if !c.engine.HasClipOnTrack(track) {
		return
	}
	switch input {
	case InputRecord:
		if c.engine.IsAnyRecordingOnTrack(track) {
			c.engine.DisarmTrack(track)
			return
		}
		if clip, ok := c.engine.LaunchedClipWithLowestSlotOnTrack(track); ok {
			c.engine.ArmClip(track, clip.Slot())
		} else if clip, ok := c.engine.ClipWithLowestSlotOnTrack(track); ok {
			c.engine.ArmClip(track, clip.Slot())
		}
	case InputStop:
		c.engine.StopTrack(track)
	case InputSolo:
		if c.engine.IsAllSoloingOnTrack(track) {
			c.engine.UnsoloTrack(track)
		} else {
			c.engine.SoloTrack(track)
		}
	case InputMute:
		if c.engine.IsAllMutedOnTrack(track) {
			c.engine.UnmuteTrack(track)
		} else {
			c.engine.MuteTrack(track)
		}
	}
}

// scrollBy moves the viewport, saturating at zero and at the engine's
// highest track and slot.
func (c *Controller) scrollBy(tracks, slots int) {
	maxTrack, maxSlot := c.engine.MaxTrackAndSlot()
	c.viewport.TrackOffset = max(0, min(maxTrack, c.viewport.TrackOffset+tracks))
	c.viewport.SlotOffset = max(0, min(maxSlot, c.viewport.SlotOffset+slots))
}

// pressButton handles a button press and reports whether it was used.
func (c *Controller) pressButton(b launchpad.Button) bool {
	fn := c.profile.Function(b)

	switch fn {
	case FuncUp:
		c.scrollBy(0, -1)
		return true
	case FuncDown:
		c.scrollBy(0, 1)
		return true
	case FuncLeft:
		c.scrollBy(-1, 0)
		return true
	case FuncRight:
		c.scrollBy(1, 0)
		return true
	case FuncSession:
		if c.profile.Has(FeatureMixer) && c.state.View == ViewSession {
			c.state.View = ViewMixer
		} else {
			c.state.View = ViewSession
		}
		return true
	}

	if view, ok := viewButtons[fn]; ok {
		c.state.View = view
		return true
	}

	// Outside session view, scene buttons may double as input buttons.
	sceneView := !c.profile.Has(FeatureSceneSessionOnly) || c.state.View == ViewSession
	if i := launchpad.SceneButtonIndex(b); i >= 0 && i < c.profile.Scenes && sceneView {
		c.launchScene(c.viewport.SlotOffset + i)
		return true
	}

	switch fn {
	case FuncPlay:
		c.play()
		return true
	case FuncArm:
		c.arm()
		return true
	case FuncInputCycle:
		c.state.Input = nextCycleInput(c.state.Input)
		return true
	}

	if mode, ok := inputButtons[fn]; ok {
		if c.profile.Has(FeatureMixer) && c.state.View != ViewMixer {
			return false
		}
		if c.state.Input == mode {
			c.state.Input = InputNone
		} else {
			c.state.Input = mode
		}
		return true
	}

	if i := launchpad.TrackButtonIndex(b); i >= 0 && c.profile.Has(FeatureTrackButtons) {
		input := c.activeInput()
		if input == InputNone {
			return false
		}
		c.trackAction(input, c.viewport.TrackOffset+i)
		return true
	}

	if mode, ok := momentaryButtons[fn]; ok && c.profile.Has(FeatureMomentary) && c.state.View == ViewSession {
		c.state.Momentary = mode
		return true
	}
	return false
}

// releaseButton ends the momentary overlay. Releasing any overlay button
// ends it, whichever overlay is active.
func (c *Controller) releaseButton(b launchpad.Button) bool {
	if _, ok := momentaryButtons[c.profile.Function(b)]; !ok || c.state.View != ViewSession {
		return false
	}
	c.state.Momentary = MomentaryNone
	clear(c.state.highlighting)
	return true
}

// launchScene launches a scene. Clips playing on other slots before the
// launch are shown as stopping until their track settles.
func (c *Controller) launchScene(slot int) {
	for _, clip := range c.engine.Clips() {
		if clip.IsPlaying() && clip.Slot() != slot {
			c.state.stopping.add(launchpad.TrackSlot{Track: clip.Track(), Slot: clip.Slot()})
		}
	}
	c.engine.LaunchScene(slot)
}

// play launches the first scene, or the empty scene past the last slot
// when anything is playing.
func (c *Controller) play() {
	if c.engine.HasPlayingTracks() {
		_, maxSlot := c.engine.MaxTrackAndSlot()
		c.engine.LaunchScene(maxSlot + 1)
		return
	}
	c.engine.LaunchScene(0)
}

// arm arms the focused clips, or disarms whatever is recording.
func (c *Controller) arm() {
	focused := c.engine.FocusedClips()
	recording := c.engine.RecordingTracks()
	switch {
	case len(focused) > 0 && len(recording) > 0:
		for _, clip := range focused {
			c.engine.DisarmClip(clip.Track(), clip.Slot())
		}
	case len(focused) > 0:
		for _, clip := range focused {
			c.engine.ArmClip(clip.Track(), clip.Slot())
		}
	default:
		for _, track := range recording {
			c.engine.DisarmTrack(track)
		}
	}
}

func nextCycleInput(m InputMode) InputMode {
	switch m {
	case InputNone:
		return InputStop
	case InputStop:
		return InputSolo
	case InputSolo:
		return InputMute
	}
	return InputNone
}
