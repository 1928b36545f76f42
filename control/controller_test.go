package control_test

import (
	"bytes"
	"slices"
	"testing"

	"go-gridlink/control"
	"go-gridlink/launchpad"
)

func padNote(row, col int) uint8 {
	return launchpad.Mk3Layout.NoteFromPad(launchpad.Pad{Row: row, Col: col})
}

func pressPad(c *control.Controller, row, col int) {
	c.OnNoteOn(padNote(row, col), 100, 0, 0)
}

func releasePad(c *control.Controller, row, col int) {
	c.OnNoteOff(padNote(row, col), 0, 0, 0)
}

func press(c *control.Controller, b launchpad.Button) {
	c.OnControlChange(uint8(b), 127, 0, 0)
}

func release(c *control.Controller, b launchpad.Button) {
	c.OnControlChange(uint8(b), 0, 0, 0)
}

func newController(p *control.Profile, e *fakeEngine) (*control.Controller, *fakeSink) {
	sink := &fakeSink{}
	return control.New(p, e, sink), sink
}

func expectCalls(t *testing.T, e *fakeEngine, want ...string) {
	t.Helper()
	if !slices.Equal(e.calls, want) {
		t.Fatalf("engine calls = %q, want %q", e.calls, want)
	}
}

func slots(pairs ...int) []launchpad.TrackSlot {
	var out []launchpad.TrackSlot
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, launchpad.TrackSlot{Track: pairs[i], Slot: pairs[i+1]})
	}
	return out
}

func TestPressRetriggersLaunchedClip(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 0, slot: 0, launched: true, playing: true,
		onBehavior: control.LaunchTriggerRetrigger})
	c, _ := newController(control.LaunchpadX, e)

	pressPad(c, 0, 0)
	expectCalls(t, e, "stopClip 0 0", "launchClip 0 0")
}

func TestPressAndReleaseBehaviors(t *testing.T) {
	tests := []struct {
		name     string
		launched bool
		on, off  control.LaunchBehavior
		pressed  []string
		released []string
	}{
		{"trigger", false, control.LaunchTrigger, control.LaunchNoop, []string{"launchClip 2 1"}, nil},
		{"noop launched", true, control.LaunchTrigger, control.LaunchNoop, nil, nil},
		{"gate", false, control.LaunchTriggerRelease, control.LaunchRelease, []string{"launchClip 2 1"}, nil},
		{"gate release", true, control.LaunchTriggerRelease, control.LaunchRelease, []string{"stopClip 2 1"}, []string{"stopClip 2 1"}},
		{"trigger on release", false, control.LaunchNoop, control.LaunchTrigger, nil, []string{"launchClip 2 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newFakeEngine(&fakeClip{track: 2, slot: 1, launched: tt.launched,
				onBehavior: tt.on, offBehavior: tt.off})
			c, _ := newController(control.LaunchpadMiniMk3, e)

			pressPad(c, 1, 2)
			expectCalls(t, e, tt.pressed...)
			e.reset()
			releasePad(c, 1, 2)
			expectCalls(t, e, tt.released...)
		})
	}
}

func TestZeroVelocityIsRelease(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 0, slot: 0, offBehavior: control.LaunchTrigger})
	c, _ := newController(control.LaunchpadX, e)

	c.OnNoteOn(padNote(0, 0), 0, 0, 0)
	expectCalls(t, e, "launchClip 0 0")
}

func TestEmptySlotStopsTrack(t *testing.T) {
	e := newFakeEngine(
		&fakeClip{track: 0, slot: 1, launched: true, playing: true},
		&fakeClip{track: 1, slot: 1, launched: true, willStart: true},
	)
	c, _ := newController(control.LaunchpadX, e)

	pressPad(c, 0, 0)
	pressPad(c, 0, 1)
	pressPad(c, 0, 2) // nothing on track 2
	expectCalls(t, e, "stopTrack 0", "stopTrack 1")

	if got := c.Snapshot().Stopping; !slices.Equal(got, slots(0, 0)) {
		t.Fatalf("stopping = %v, want [(0,0)]", got)
	}

	// Empty slots do nothing on release.
	e.reset()
	releasePad(c, 0, 0)
	expectCalls(t, e)
}

func TestScenePreemption(t *testing.T) {
	e := newFakeEngine(
		&fakeClip{track: 0, slot: 0, launched: true, playing: true},
		&fakeClip{track: 1, slot: 1, launched: true, playing: true},
		&fakeClip{track: 0, slot: 2},
	)
	c, _ := newController(control.LaunchpadX, e)

	press(c, launchpad.SceneButton(2))
	expectCalls(t, e, "launchScene 2")
	if got := c.Snapshot().Stopping; !slices.Equal(got, slots(0, 0, 1, 1)) {
		t.Fatalf("stopping = %v, want [(0,0) (1,1)]", got)
	}

	e.releasing[1] = true
	c.OnUpdate(0, 0)
	if got := c.Snapshot().Stopping; !slices.Equal(got, slots(1, 1)) {
		t.Fatalf("after update stopping = %v, want [(1,1)]", got)
	}

	// Still releasing, so the pad stays.
	c.OnUpdate(1, 1)
	if got := c.Snapshot().Stopping; !slices.Equal(got, slots(1, 1)) {
		t.Fatalf("after second update stopping = %v, want [(1,1)]", got)
	}
}

func TestSceneRelaunchKeepsItsClips(t *testing.T) {
	e := newFakeEngine(
		&fakeClip{track: 0, slot: 2, launched: true, playing: true},
		&fakeClip{track: 1, slot: 0, launched: true, playing: true},
	)
	c, _ := newController(control.LaunchpadX, e)

	press(c, launchpad.SceneButton(2))
	expectCalls(t, e, "launchScene 2")
	if got := c.Snapshot().Stopping; !slices.Equal(got, slots(1, 0)) {
		t.Fatalf("stopping = %v, want [(1,0)]", got)
	}
}

func TestSceneButtonsUseViewport(t *testing.T) {
	e := newFakeEngine()
	c, _ := newController(control.LaunchpadProMk3, e)

	c.Scroll(0, 3)
	press(c, launchpad.SceneButton(1))
	expectCalls(t, e, "launchScene 4")
}

func TestMomentaryOverlay(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 3, slot: 2, launched: true, onBehavior: control.LaunchTrigger})
	c, _ := newController(control.LaunchpadProMk3, e)
	clearButton, _ := control.LaunchpadProMk3.Button(control.FuncClear)

	press(c, clearButton)
	if m := c.Snapshot().Momentary; m != control.MomentaryClear {
		t.Fatalf("momentary = %v, want clear", m)
	}

	pressPad(c, 2, 3)
	expectCalls(t, e)
	if got := c.Snapshot().Highlighting; !slices.Equal(got, slots(3, 2)) {
		t.Fatalf("highlighting = %v, want [(3,2)]", got)
	}

	releasePad(c, 2, 3)
	expectCalls(t, e, "clearActivePattern 3 2")
	if got := c.Snapshot().Highlighting; len(got) != 0 {
		t.Fatalf("highlighting = %v, want empty", got)
	}

	pressPad(c, 0, 0)
	pressPad(c, 1, 1)
	release(c, clearButton)
	snap := c.Snapshot()
	if snap.Momentary != control.MomentaryNone {
		t.Fatalf("momentary = %v after release, want none", snap.Momentary)
	}
	if len(snap.Highlighting) != 0 {
		t.Fatalf("highlighting = %v after release, want empty", snap.Highlighting)
	}
}

func TestMomentaryReleaseEndsAnyOverlay(t *testing.T) {
	e := newFakeEngine()
	c, _ := newController(control.LaunchpadProMk3, e)
	clearButton, _ := control.LaunchpadProMk3.Button(control.FuncClear)
	dupButton, _ := control.LaunchpadProMk3.Button(control.FuncDuplicate)

	press(c, clearButton)
	press(c, dupButton)
	if m := c.Snapshot().Momentary; m != control.MomentaryDuplicate {
		t.Fatalf("momentary = %v, want duplicate", m)
	}
	pressPad(c, 0, 0)

	release(c, clearButton)
	snap := c.Snapshot()
	if snap.Momentary != control.MomentaryNone {
		t.Fatalf("momentary = %v after releasing clear, want none", snap.Momentary)
	}
	if len(snap.Highlighting) != 0 {
		t.Fatalf("highlighting = %v after releasing clear, want empty", snap.Highlighting)
	}
	expectCalls(t, e)
}

func TestMomentaryPatternCommands(t *testing.T) {
	for _, tt := range []struct {
		fn   control.Function
		want string
	}{
		{control.FuncDuplicate, "duplicateActivePattern 1 0"},
		{control.FuncQuantize, "toggleQuantization 1 0"},
	} {
		e := newFakeEngine()
		c, _ := newController(control.LaunchpadProMk3, e)
		b, _ := control.LaunchpadProMk3.Button(tt.fn)

		press(c, b)
		pressPad(c, 0, 1)
		releasePad(c, 0, 1)
		expectCalls(t, e, tt.want)
	}
}

func TestMomentaryRendering(t *testing.T) {
	launched := &fakeClip{track: 0, slot: 0, color: 1, launched: true, playing: true}
	idle := &fakeClip{track: 1, slot: 0, color: 2}
	e := newFakeEngine(launched, idle)
	c, _ := newController(control.LaunchpadProMk3, e)
	clearButton, _ := control.LaunchpadProMk3.Button(control.FuncClear)
	dupButton, _ := control.LaunchpadProMk3.Button(control.FuncDuplicate)

	press(c, clearButton)
	pressPad(c, 3, 3)
	lights := c.Snapshot().Lights

	if got, want := lights.Pad(launchpad.Pad{Row: 0, Col: 0}), launchpad.Pulsing(launchpad.AccentColor(1)); got != want {
		t.Errorf("launched clip = %+v, want %+v", got, want)
	}
	if got, want := lights.Pad(launchpad.Pad{Row: 0, Col: 1}), launchpad.Static(launchpad.ColorLightGray); got != want {
		t.Errorf("idle clip = %+v, want %+v", got, want)
	}
	if got, want := lights.Pad(launchpad.Pad{Row: 3, Col: 3}), launchpad.Static(launchpad.ColorWhite); got != want {
		t.Errorf("highlighted pad = %+v, want %+v", got, want)
	}
	if got, want := lights.Button(clearButton), launchpad.Static(launchpad.ColorWhite); got != want {
		t.Errorf("clear button = %+v, want %+v", got, want)
	}
	if got, want := lights.Button(dupButton), launchpad.Static(launchpad.ColorGray); got != want {
		t.Errorf("duplicate button = %+v, want %+v", got, want)
	}
}

func TestMomentaryOnlyInSessionView(t *testing.T) {
	e := newFakeEngine()
	c, _ := newController(control.LaunchpadProMk3, e)
	c.OnSysEx(control.LaunchpadProMk3.Model.SysEx(0x00, 0x04, 0, 0)) // note layout
	c.OnSysEx(control.LaunchpadProMk3.Model.SysEx(0x00, 0x04, 0, 0))

	clearButton, _ := control.LaunchpadProMk3.Button(control.FuncClear)
	press(c, clearButton)
	if m := c.Snapshot().Momentary; m != control.MomentaryNone {
		t.Fatalf("momentary = %v in note view, want none", m)
	}
}

func TestNavigationSaturates(t *testing.T) {
	e := newFakeEngine()
	e.maxTrack, e.maxSlot = 2, 1
	c, _ := newController(control.LaunchpadX, e)

	up, _ := control.LaunchpadX.Button(control.FuncUp)
	down, _ := control.LaunchpadX.Button(control.FuncDown)
	left, _ := control.LaunchpadX.Button(control.FuncLeft)
	right, _ := control.LaunchpadX.Button(control.FuncRight)

	press(c, left)
	press(c, up)
	if vp := c.Snapshot().Viewport; vp != (launchpad.Viewport{}) {
		t.Fatalf("viewport = %+v, want origin", vp)
	}

	for range 5 {
		press(c, right)
		press(c, down)
	}
	if vp := c.Snapshot().Viewport; vp != (launchpad.Viewport{TrackOffset: 2, SlotOffset: 1}) {
		t.Fatalf("viewport = %+v, want {2 1}", vp)
	}

	press(c, left)
	if vp := c.Snapshot().Viewport; vp.TrackOffset != 1 {
		t.Fatalf("track offset = %d, want 1", vp.TrackOffset)
	}
}

func TestViewportShiftsPads(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 3, slot: 4, onBehavior: control.LaunchTrigger})
	c, _ := newController(control.LaunchpadX, e)

	c.Scroll(2, 3)
	pressPad(c, 1, 1)
	expectCalls(t, e, "launchClip 3 4")
}

func TestMixerToggle(t *testing.T) {
	e := newFakeEngine()
	c, _ := newController(control.LaunchpadX, e)

	press(c, launchpad.ButtonRow4) // stop in mixer, scene 4 in session
	expectCalls(t, e, "launchScene 4")
	if in := c.Snapshot().Input; in != control.InputNone {
		t.Fatalf("input = %v in session view, want none", in)
	}

	e.reset()
	press(c, launchpad.ButtonSession)
	if v := c.Snapshot().View; v != control.ViewMixer {
		t.Fatalf("view = %v, want mixer", v)
	}

	press(c, launchpad.ButtonRow4)
	expectCalls(t, e)
	if in := c.Snapshot().Input; in != control.InputStop {
		t.Fatalf("input = %v, want stop", in)
	}

	press(c, launchpad.ButtonRow6)
	if in := c.Snapshot().Input; in != control.InputSolo {
		t.Fatalf("input = %v, want solo", in)
	}
	press(c, launchpad.ButtonRow6)
	if in := c.Snapshot().Input; in != control.InputNone {
		t.Fatalf("input = %v after second press, want none", in)
	}

	press(c, launchpad.ButtonSession)
	if v := c.Snapshot().View; v != control.ViewSession {
		t.Fatalf("view = %v, want session", v)
	}
}

func TestMixerTrackRow(t *testing.T) {
	e := newFakeEngine(
		&fakeClip{track: 2, slot: 0, launched: true, playing: true},
		&fakeClip{track: 2, slot: 3},
	)
	c, _ := newController(control.LaunchpadX, e)
	press(c, launchpad.ButtonSession)

	press(c, launchpad.ButtonRow4)
	pressPad(c, 7, 2)
	pressPad(c, 7, 5) // no clips on track 5
	expectCalls(t, e, "stopTrack 2")

	e.reset()
	press(c, launchpad.ButtonRow6)
	pressPad(c, 7, 2)
	e.soloed[2] = true
	pressPad(c, 7, 2)
	expectCalls(t, e, "soloTrack 2", "unsoloTrack 2")

	e.reset()
	press(c, launchpad.ButtonRow5)
	e.muted[2] = true
	pressPad(c, 7, 2)
	expectCalls(t, e, "unmuteTrack 2")

	// Pads above the track row still launch clips.
	e.reset()
	e.clips[1].onBehavior = control.LaunchTrigger
	pressPad(c, 3, 2)
	expectCalls(t, e, "launchClip 2 3")
}

func TestRecordMode(t *testing.T) {
	e := newFakeEngine(
		&fakeClip{track: 1, slot: 0},
		&fakeClip{track: 1, slot: 1, recording: true},
		&fakeClip{track: 3, slot: 1},
		&fakeClip{track: 3, slot: 4, launched: true},
		&fakeClip{track: 4, slot: 2, launched: true, playing: true},
	)
	c, _ := newController(control.LaunchpadX, e)
	press(c, launchpad.ButtonSession)
	press(c, launchpad.ButtonRow7)

	pressPad(c, 0, 1)
	pressPad(c, 1, 1)
	pressPad(c, 0, 4) // empty slot on a playing track
	expectCalls(t, e, "armClip 1 0", "disarmClip 1 1", "stopTrack 4")

	e.reset()
	pressPad(c, 7, 3)
	pressPad(c, 7, 1)
	expectCalls(t, e, "armClip 3 4", "disarmTrack 1")
}

func TestRecordArmsLowestClip(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 0, slot: 5}, &fakeClip{track: 0, slot: 2})
	c, _ := newController(control.LaunchpadProMk3, e)
	record, _ := control.LaunchpadProMk3.Button(control.FuncRecord)

	press(c, record)
	press(c, launchpad.TrackButton(0))
	expectCalls(t, e, "armClip 0 2")
}

func TestTrackButtons(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 1, slot: 0, launched: true, playing: true})
	c, _ := newController(control.LaunchpadProMk3, e)
	stop, _ := control.LaunchpadProMk3.Button(control.FuncStop)

	press(c, launchpad.TrackButton(1))
	expectCalls(t, e)

	press(c, stop)
	press(c, launchpad.TrackButton(1))
	expectCalls(t, e, "stopTrack 1")

	lights := c.Snapshot().Lights
	if got, want := lights.Button(launchpad.TrackButton(1)), launchpad.Static(launchpad.ColorRed); got != want {
		t.Errorf("track button = %+v, want %+v", got, want)
	}
	if got, want := lights.Button(stop), launchpad.Static(launchpad.ColorRed); got != want {
		t.Errorf("stop button = %+v, want %+v", got, want)
	}
	if got := lights.Button(launchpad.TrackButton(0)); got != launchpad.Off {
		t.Errorf("track without clips lit %+v", got)
	}
}

func TestInputCycle(t *testing.T) {
	e := newFakeEngine()
	c, _ := newController(control.LaunchpadMiniMk3, e)
	cycle, _ := control.LaunchpadMiniMk3.Button(control.FuncInputCycle)

	want := []control.InputMode{control.InputStop, control.InputSolo, control.InputMute, control.InputNone}
	for i, w := range want {
		press(c, cycle)
		if in := c.Snapshot().Input; in != w {
			t.Fatalf("press %d: input = %v, want %v", i+1, in, w)
		}
	}
	expectCalls(t, e)

	press(c, launchpad.SceneButton(0))
	expectCalls(t, e, "launchScene 0")
}

func TestInputCycleLighting(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 0, slot: 0})
	c, _ := newController(control.LaunchpadMiniMk3, e)
	cycle, _ := control.LaunchpadMiniMk3.Button(control.FuncInputCycle)

	c.OnRender(false)
	if got := c.Snapshot().Lights.Button(cycle); got != launchpad.Static(launchpad.ColorLightGray) {
		t.Fatalf("cycle button = %+v, want light gray", got)
	}

	press(c, cycle)
	press(c, cycle) // solo
	lights := c.Snapshot().Lights
	if got := lights.Button(cycle); got != launchpad.Static(launchpad.ColorBlue) {
		t.Errorf("cycle button = %+v, want blue", got)
	}
	if got := lights.Pad(launchpad.Pad{Row: 7, Col: 0}); got != launchpad.Static(launchpad.ColorDarkBlue) {
		t.Errorf("track row pad = %+v, want dark blue", got)
	}
}

func TestPassthrough(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 0, slot: 0, onBehavior: control.LaunchTrigger})
	c, _ := newController(control.LaunchpadX, e)

	press(c, launchpad.ButtonCol5) // note view
	if v := c.Snapshot().View; v != control.ViewNote {
		t.Fatalf("view = %v, want note", v)
	}

	c.OnNoteOn(81, 90, 1, 0)
	c.OnNoteOff(81, 0, 1, 0)
	c.OnPolyAftertouch(81, 40, 1, 0)
	c.OnChannelAftertouch(30, 1, 0)
	expectCalls(t, e, "noteOn 81 90 1", "noteOff 81 0 1", "polyAftertouch 81 40 1", "channelAftertouch 30 1")
}

func TestAftertouchNeedsFeature(t *testing.T) {
	e := newFakeEngine()
	c, _ := newController(control.LaunchpadMiniMk3, e)
	keys, _ := control.LaunchpadMiniMk3.Button(control.FuncKeys)

	press(c, keys)
	c.OnPolyAftertouch(60, 40, 0, 0)
	c.OnChannelAftertouch(40, 0, 0)
	expectCalls(t, e)

	// Session view never forwards pressure.
	x, _ := newController(control.LaunchpadX, e)
	x.OnPolyAftertouch(60, 40, 0, 0)
	expectCalls(t, e)
}

func TestOffGridNoteIgnored(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 4, slot: 8, launched: true, playing: true})
	c, sink := newController(control.LaunchpadX, e)

	c.OnNoteOn(5, 100, 0, 0)
	c.OnNoteOff(5, 0, 0, 0)
	expectCalls(t, e)
	if len(sink.batches) != 0 {
		t.Fatalf("off-grid note sent %d batches", len(sink.batches))
	}
}

func TestPlayButton(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 0, slot: 0})
	c, _ := newController(control.LaunchpadProMk3, e)
	play, _ := control.LaunchpadProMk3.Button(control.FuncPlay)

	press(c, play)
	if got := c.Snapshot().Lights.Button(play); got != launchpad.Static(launchpad.ColorLightGray) {
		t.Errorf("idle play button = %+v", got)
	}
	e.clips[0].playing = true
	press(c, play)
	expectCalls(t, e, "launchScene 0", "launchScene 16")

	if got := c.Snapshot().Lights.Button(play); got != launchpad.Pulsing(launchpad.ColorGreen) {
		t.Errorf("playing play button = %+v", got)
	}
}

func TestArmButton(t *testing.T) {
	focused := &fakeClip{track: 2, slot: 3}
	e := newFakeEngine(focused)
	e.focused = []*fakeClip{focused}
	c, _ := newController(control.LaunchpadX, e)
	arm, _ := control.LaunchpadX.Button(control.FuncArm)

	press(c, arm)
	focused.recording = true
	press(c, arm)
	expectCalls(t, e, "armClip 2 3", "disarmClip 2 3")

	if got := c.Snapshot().Lights.Button(arm); got != launchpad.Static(launchpad.ColorRed) {
		t.Errorf("arm button = %+v, want red", got)
	}

	e.reset()
	e.focused = nil
	press(c, arm)
	expectCalls(t, e, "disarmTrack 2")
	if got := c.Snapshot().Lights.Button(arm); got != launchpad.Flashing(launchpad.ColorRed) {
		t.Errorf("arm button = %+v, want flashing red", got)
	}
}

func TestRenderClipStates(t *testing.T) {
	e := newFakeEngine(
		&fakeClip{track: 0, slot: 0, color: 3},
		&fakeClip{track: 1, slot: 0, launched: true, playing: true},
		&fakeClip{track: 2, slot: 0, launched: true, willStart: true},
		&fakeClip{track: 3, slot: 0, launched: true, playing: true, recording: true},
		&fakeClip{track: 4, slot: 0, playing: true, willStop: true, color: 5},
	)
	e.focused = []*fakeClip{e.clips[1]}
	e.triggered[0] = true
	c, _ := newController(control.LaunchpadX, e)
	c.OnRender(true)
	lights := c.Snapshot().Lights

	want := []launchpad.Style{
		launchpad.Static(launchpad.AccentColor(3)),
		launchpad.Pulsing(launchpad.ColorGreen),
		launchpad.Flashing(launchpad.ColorGreen),
		launchpad.Pulsing(launchpad.ColorRed),
		launchpad.Flashing(launchpad.ColorGreen),
	}
	for col, w := range want {
		if got := lights.Pad(launchpad.Pad{Row: 0, Col: col}); got != w {
			t.Errorf("pad (0,%d) = %+v, want %+v", col, got, w)
		}
	}
	if got, want := lights.Button(launchpad.ButtonLogo), launchpad.Pulsing(launchpad.AccentColor(0)); got != want {
		t.Errorf("logo = %+v, want %+v", got, want)
	}
	if got := lights.Button(launchpad.SceneButton(0)); got != launchpad.Flashing(launchpad.ColorGreen) {
		t.Errorf("scene 0 = %+v, want flashing green", got)
	}
	if !lights.Clear {
		t.Error("forced render not marked clear")
	}
}

func TestRenderScrollAffordance(t *testing.T) {
	e := newFakeEngine()
	e.maxTrack, e.maxSlot = 1, 0
	c, _ := newController(control.LaunchpadX, e)
	c.OnRender(false)

	lit := func(fn control.Function) bool {
		b, _ := control.LaunchpadX.Button(fn)
		return c.Snapshot().Lights.Button(b) != launchpad.Off
	}
	if lit(control.FuncLeft) || lit(control.FuncUp) || lit(control.FuncDown) || !lit(control.FuncRight) {
		t.Fatal("at origin only right should be lit")
	}

	c.Scroll(1, 0)
	if !lit(control.FuncLeft) || lit(control.FuncRight) {
		t.Fatal("at the last track only left should be lit")
	}
}

func TestRenderStopping(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 0, slot: 1, launched: true, playing: true})
	c, _ := newController(control.LaunchpadX, e)

	pressPad(c, 0, 0)
	if got := c.Snapshot().Lights.Pad(launchpad.Pad{Row: 0, Col: 0}); got != launchpad.Flashing(launchpad.ColorDarkGreen) {
		t.Fatalf("stopping pad = %+v, want flashing dark green", got)
	}
}

func TestRenderMixerIndicators(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 0, slot: 0, launched: true, playing: true})
	e.releasing[0] = true
	c, _ := newController(control.LaunchpadX, e)

	c.OnRender(false)
	if got := c.Snapshot().Lights.Button(launchpad.ButtonSession); got != launchpad.Off {
		t.Fatalf("session button lit in session view: %+v", got)
	}

	press(c, launchpad.ButtonSession)
	press(c, launchpad.ButtonRow4)
	lights := c.Snapshot().Lights

	if got := lights.Button(launchpad.ButtonSession); got != launchpad.Static(launchpad.ColorLightOrange) {
		t.Errorf("session button = %+v", got)
	}
	if got := lights.Button(launchpad.ButtonRow4); got != launchpad.Static(launchpad.ColorRed) {
		t.Errorf("stop button = %+v", got)
	}
	if got := lights.Button(launchpad.ButtonRow6); got != launchpad.Static(launchpad.ColorLightGray) {
		t.Errorf("solo button = %+v", got)
	}
	if got := lights.Pad(launchpad.Pad{Row: 7, Col: 0}); got != launchpad.Flashing(launchpad.ColorRed) {
		t.Errorf("track row pad = %+v, want flashing red", got)
	}
}

func TestConnectHandshake(t *testing.T) {
	e := newFakeEngine()
	c, sink := newController(control.LaunchpadX, e)
	m := control.LaunchpadX.Model

	c.OnConnect()
	if len(sink.batches) != 2 {
		t.Fatalf("connect sent %d batches, want 2", len(sink.batches))
	}
	for i, msg := range m.ConnectMessages() {
		if !bytes.Equal(sink.batches[0][i], msg) {
			t.Errorf("connect message %d = % X, want % X", i, sink.batches[0][i], msg)
		}
	}
	if !bytes.Equal(sink.batches[1][0], m.Clear()[0]) {
		t.Errorf("render did not start with clear: % X", sink.batches[1][0])
	}

	sink.batches = nil
	c.OnSysEx(m.SysEx(0x10, 0x01))
	if len(sink.batches) < 2 || !bytes.Equal(sink.batches[0][0], m.SessionLayout()) {
		t.Fatalf("daw ack did not switch to session layout: % X", sink.all())
	}
}

func TestDisconnect(t *testing.T) {
	c, sink := newController(control.LaunchpadMiniMk3, newFakeEngine())
	c.OnDisconnect()

	want := control.LaunchpadMiniMk3.Model.DisconnectMessages()
	got := sink.all()
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("message %d = % X, want % X", i, got[i], want[i])
		}
	}
}

func TestProLayoutBootstrap(t *testing.T) {
	e := newFakeEngine()
	c, sink := newController(control.LaunchpadProMk3, e)
	m := control.LaunchpadProMk3.Model

	c.OnConnect()
	if n := len(sink.batches[0]); n != 3 {
		t.Fatalf("pro connect sent %d messages, want 3", n)
	}

	// First readback: the device is still in note layout.
	sink.batches = nil
	c.OnSysEx(m.SysEx(0x00, 0x04, 0, 0))
	if v := c.Snapshot().View; v != control.ViewNote {
		t.Fatalf("view = %v, want note", v)
	}
	if !bytes.Equal(sink.batches[0][0], m.SessionLayout()) {
		t.Fatalf("first readback did not request session layout: % X", sink.batches[0])
	}

	// Later readbacks only follow the device.
	sink.batches = nil
	c.OnSysEx(m.SysEx(0x00, 0x00, 0, 0))
	if v := c.Snapshot().View; v != control.ViewSession {
		t.Fatalf("view = %v, want session", v)
	}
	for _, msg := range sink.all() {
		if bytes.Equal(msg, m.SessionLayout()) {
			t.Fatal("session layout requested again")
		}
	}

	c.OnSysEx(m.SysEx(0x00, 0x11, 0x02))
	if v := c.Snapshot().View; v != control.ViewInternal {
		t.Fatalf("view = %v, want internal", v)
	}
	e.reset()
	pressPad(c, 0, 0)
	expectCalls(t, e)
}

func TestUnrecognizedSysExIgnored(t *testing.T) {
	c, sink := newController(control.LaunchpadX, newFakeEngine())
	c.OnSysEx([]byte{0xF0, 0x7E, 0x7F, 0x06, 0x02, 0xF7})
	c.OnSysEx(control.LaunchpadMiniMk3.Model.SysEx(0x10, 0x01))
	if len(sink.batches) != 0 {
		t.Fatalf("unrecognized sysex sent % X", sink.all())
	}
}

func TestRenderIsIncremental(t *testing.T) {
	e := newFakeEngine(&fakeClip{track: 0, slot: 0, launched: true, playing: true})
	c, sink := newController(control.LaunchpadX, e)

	c.OnRender(true)
	sink.batches = nil
	c.OnRender(false)
	if len(sink.batches) != 0 {
		t.Fatalf("unchanged render sent % X", sink.all())
	}

	e.clips[0].playing = false
	c.OnRender(false)
	if len(sink.all()) != 2 {
		t.Fatalf("lighting change sent %d messages, want off then new style", len(sink.all()))
	}
}

func TestPressFunction(t *testing.T) {
	e := newFakeEngine()
	c, _ := newController(control.LaunchpadMiniMk3, e)

	if c.Press(control.FuncMute) {
		t.Fatal("mini has no mute button")
	}
	if !c.Press(control.FuncDrums) {
		t.Fatal("drums button not found")
	}
	if v := c.Snapshot().View; v != control.ViewDrums {
		t.Fatalf("view = %v, want drums", v)
	}
}
