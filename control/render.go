package control

import "go-gridlink/launchpad"

// rawColor is a clip's own colour regardless of play state.
func rawColor(clip Clip) launchpad.Color {
	return launchpad.AccentColor(clip.Color())
}

func clipColor(clip Clip) launchpad.Color {
	switch {
	case clip.IsRecording():
		return launchpad.ColorRed
	case clip.WillStart() || clip.IsPlaying():
		return launchpad.ColorGreen
	}
	return rawColor(clip)
}

func clipLighting(clip Clip) launchpad.Lighting {
	switch {
	case clip.WillStart() || clip.WillStop():
		return launchpad.LightingFlashing
	case clip.IsPlaying():
		return launchpad.LightingPulsing
	}
	return launchpad.LightingStatic
}

// setAlias styles the button bound to fn, if the surface has one.
func (c *Controller) setAlias(vs *launchpad.ViewState, fn Function, s launchpad.Style) {
	if b, ok := c.profile.Button(fn); ok {
		vs.SetButton(b, s)
	}
}

// buildView computes the complete lighting for the current state.
func (c *Controller) buildView(clear bool) *launchpad.ViewState {
	vs := launchpad.NewViewState(clear)
	maxTrack, maxSlot := c.engine.MaxTrackAndSlot()
	waiting := c.state.Momentary != MomentaryNone

	for _, clip := range c.engine.FocusedClips() {
		vs.SetButton(launchpad.ButtonLogo, launchpad.Style{Color: rawColor(clip), Lighting: clipLighting(clip)})
	}

	for _, ts := range c.state.stopping.sorted() {
		vs.SetPad(c.viewport.Pad(ts), launchpad.Flashing(launchpad.ColorDarkGreen))
	}

	for _, clip := range c.engine.Clips() {
		color := clipColor(clip)
		if waiting {
			color = launchpad.ColorLightGray
			if clip.IsLaunched() {
				color = rawColor(clip)
			}
		}
		p := c.viewport.Pad(launchpad.TrackSlot{Track: clip.Track(), Slot: clip.Slot()})
		vs.SetPad(p, launchpad.Style{Color: color, Lighting: clipLighting(clip)})
	}

	for _, ts := range c.state.highlighting.sorted() {
		vs.SetPad(c.viewport.Pad(ts), launchpad.Static(launchpad.ColorWhite))
	}

	scroll := launchpad.Static(launchpad.ColorLightGray)
	if c.viewport.TrackOffset > 0 {
		c.setAlias(vs, FuncLeft, scroll)
	}
	if c.viewport.TrackOffset < maxTrack {
		c.setAlias(vs, FuncRight, scroll)
	}
	if c.viewport.SlotOffset > 0 {
		c.setAlias(vs, FuncUp, scroll)
	}
	if c.viewport.SlotOffset < maxSlot {
		c.setAlias(vs, FuncDown, scroll)
	}

	triggering := false
	for i := 0; i < c.profile.Scenes; i++ {
		if c.engine.IsBulkTriggeringOnSlot(c.viewport.SlotOffset + i) {
			vs.SetButton(launchpad.SceneButton(i), launchpad.Flashing(launchpad.ColorGreen))
			triggering = true
		}
	}

	if c.profile.Has(FeatureMomentary) && c.state.View == ViewSession {
		for fn, mode := range momentaryButtons {
			s := launchpad.Static(launchpad.ColorGray)
			if c.state.Momentary == mode {
				s = launchpad.Static(launchpad.ColorWhite)
			}
			c.setAlias(vs, fn, s)
		}
	}

	if c.profile.Has(FeatureArm) {
		c.renderArm(vs)
	}

	if c.profile.Has(FeaturePlay) {
		if triggering || c.engine.HasPlayingTracks() {
			c.setAlias(vs, FuncPlay, launchpad.Pulsing(launchpad.ColorGreen))
		} else {
			c.setAlias(vs, FuncPlay, launchpad.Static(launchpad.ColorLightGray))
		}
	}

	c.renderInput(vs)
	return vs
}

func (c *Controller) renderArm(vs *launchpad.ViewState) {
	recording := c.engine.HasRecordingTracks()
	switch {
	case c.engine.HasFocusedClips() && recording:
		c.setAlias(vs, FuncArm, launchpad.Static(launchpad.ColorRed))
	case c.engine.HasFocusedClips():
		c.setAlias(vs, FuncArm, launchpad.Static(launchpad.ColorDarkRed))
	case recording:
		c.setAlias(vs, FuncArm, launchpad.Flashing(launchpad.ColorRed))
	}
}

// renderInput lights the input mode buttons and the per-track indicators.
func (c *Controller) renderInput(vs *launchpad.ViewState) {
	input := c.state.Input
	switch {
	case c.profile.Has(FeatureMixer):
		if c.state.View != ViewMixer {
			return
		}
		c.setAlias(vs, FuncSession, launchpad.Static(launchpad.ColorLightOrange))
		c.renderModeButtons(vs, input)
	case c.profile.Has(FeatureInputCycle):
		c.setAlias(vs, FuncInputCycle, launchpad.Static(input.color()))
	default:
		c.renderModeButtons(vs, input)
	}

	for i := 0; i < c.profile.Model.Layout.Cols; i++ {
		track := c.viewport.TrackOffset + i
		if !c.engine.HasClipOnTrack(track) {
			continue
		}
		s, ok := c.trackIndicator(input, track)
		if !ok {
			continue
		}
		switch {
		case c.profile.Has(FeaturePadTrackRow):
			vs.SetPad(launchpad.Pad{Row: c.profile.Model.Layout.Rows - 1, Col: i}, s)
		case c.profile.Has(FeatureTrackButtons):
			vs.SetButton(launchpad.TrackButton(i), s)
		}
	}
}

func (c *Controller) renderModeButtons(vs *launchpad.ViewState, active InputMode) {
	for fn, mode := range inputButtons {
		s := launchpad.Static(launchpad.ColorLightGray)
		if mode == active {
			s = launchpad.Static(mode.color())
		}
		c.setAlias(vs, fn, s)
	}
}

// trackIndicator is the style of a track's indicator in an input mode.
func (c *Controller) trackIndicator(input InputMode, track int) (launchpad.Style, bool) {
	e := c.engine
	switch input {
	case InputStop:
		color := launchpad.ColorDarkRed
		if e.IsAnyNotStoppedOnTrack(track) {
			color = launchpad.ColorRed
		}
		if e.IsBulkReleasingOnTrack(track) {
			return launchpad.Flashing(color), true
		}
		return launchpad.Static(color), true
	case InputSolo:
		if e.IsAllSoloingOnTrack(track) {
			return launchpad.Static(launchpad.ColorBlue), true
		}
		return launchpad.Static(launchpad.ColorDarkBlue), true
	case InputMute:
		if e.IsAllMutedOnTrack(track) {
			return launchpad.Static(launchpad.ColorDarkYellow), true
		}
		return launchpad.Static(launchpad.ColorYellow), true
	case InputRecord:
		if e.IsAnyRecordingOnTrack(track) {
			return launchpad.Static(launchpad.ColorRed), true
		}
		return launchpad.Static(launchpad.ColorDarkRed), true
	}
	// Track buttons stay lit while idle; pad rows show clips instead.
	if c.profile.Has(FeatureTrackButtons) {
		return launchpad.Static(launchpad.ColorLightGray), true
	}
	return launchpad.Off, false
}
