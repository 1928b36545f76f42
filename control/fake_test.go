package control_test

import (
	"fmt"
	"slices"

	"go-gridlink/control"
	"go-gridlink/launchpad"
)

type fakeClip struct {
	track, slot int
	color       int

	launched, playing, willStart, willStop, recording bool

	onBehavior, offBehavior control.LaunchBehavior
}

func (c *fakeClip) Track() int                              { return c.track }
func (c *fakeClip) Slot() int                               { return c.slot }
func (c *fakeClip) Color() int                              { return c.color }
func (c *fakeClip) IsLaunched() bool                        { return c.launched }
func (c *fakeClip) IsPlaying() bool                         { return c.playing }
func (c *fakeClip) WillStart() bool                         { return c.willStart }
func (c *fakeClip) WillStop() bool                          { return c.willStop }
func (c *fakeClip) IsRecording() bool                       { return c.recording }
func (c *fakeClip) NoteOnBehavior() control.LaunchBehavior  { return c.onBehavior }
func (c *fakeClip) NoteOffBehavior() control.LaunchBehavior { return c.offBehavior }

// fakeEngine answers queries from a fixed clip list and records every
// command and forwarded note as a string.
type fakeEngine struct {
	clips     []*fakeClip
	focused   []*fakeClip
	maxTrack  int
	maxSlot   int
	releasing map[int]bool
	triggered map[int]bool // bulk triggering slots
	soloed    map[int]bool
	muted     map[int]bool

	calls []string
}

func newFakeEngine(clips ...*fakeClip) *fakeEngine {
	return &fakeEngine{
		clips:     clips,
		maxTrack:  15,
		maxSlot:   15,
		releasing: make(map[int]bool),
		triggered: make(map[int]bool),
		soloed:    make(map[int]bool),
		muted:     make(map[int]bool),
	}
}

func (e *fakeEngine) record(format string, args ...any) {
	e.calls = append(e.calls, fmt.Sprintf(format, args...))
}

func (e *fakeEngine) reset() { e.calls = nil }

func (e *fakeEngine) Clip(track, slot int) (control.Clip, bool) {
	for _, c := range e.clips {
		if c.track == track && c.slot == slot {
			return c, true
		}
	}
	return nil, false
}

func (e *fakeEngine) Clips() []control.Clip {
	out := make([]control.Clip, len(e.clips))
	for i, c := range e.clips {
		out[i] = c
	}
	return out
}

func (e *fakeEngine) FocusedClips() []control.Clip {
	out := make([]control.Clip, len(e.focused))
	for i, c := range e.focused {
		out[i] = c
	}
	return out
}

func (e *fakeEngine) HasFocusedClips() bool { return len(e.focused) > 0 }

func (e *fakeEngine) tracksWhere(f func(*fakeClip) bool) []int {
	var tracks []int
	for _, c := range e.clips {
		if f(c) && !slices.Contains(tracks, c.track) {
			tracks = append(tracks, c.track)
		}
	}
	slices.Sort(tracks)
	return tracks
}

func (e *fakeEngine) anyOnTrack(track int, f func(*fakeClip) bool) bool {
	for _, c := range e.clips {
		if c.track == track && f(c) {
			return true
		}
	}
	return false
}

func (e *fakeEngine) PlayingTracks() []int {
	return e.tracksWhere(func(c *fakeClip) bool { return c.playing })
}
func (e *fakeEngine) HasPlayingTracks() bool { return len(e.PlayingTracks()) > 0 }
func (e *fakeEngine) RecordingTracks() []int {
	return e.tracksWhere(func(c *fakeClip) bool { return c.recording })
}
func (e *fakeEngine) HasRecordingTracks() bool      { return len(e.RecordingTracks()) > 0 }
func (e *fakeEngine) MaxTrackAndSlot() (int, int)   { return e.maxTrack, e.maxSlot }
func (e *fakeEngine) HasClipOnTrack(track int) bool { return e.anyOnTrack(track, func(*fakeClip) bool { return true }) }
func (e *fakeEngine) IsAnyPlayingOnTrack(track int) bool {
	return e.anyOnTrack(track, func(c *fakeClip) bool { return c.playing })
}
func (e *fakeEngine) IsAnyTriggeringOnTrack(track int) bool {
	return e.anyOnTrack(track, func(c *fakeClip) bool { return c.willStart })
}
func (e *fakeEngine) IsAnyNotStoppedOnTrack(track int) bool {
	return e.anyOnTrack(track, func(c *fakeClip) bool { return c.playing || c.willStart })
}
func (e *fakeEngine) IsBulkReleasingOnTrack(track int) bool { return e.releasing[track] }
func (e *fakeEngine) IsAnyReleasingOnTrack(track int) bool  { return e.releasing[track] }
func (e *fakeEngine) IsAllSoloingOnTrack(track int) bool    { return e.soloed[track] }
func (e *fakeEngine) IsAllMutedOnTrack(track int) bool      { return e.muted[track] }
func (e *fakeEngine) IsAnyRecordingOnTrack(track int) bool {
	return e.anyOnTrack(track, func(c *fakeClip) bool { return c.recording })
}
func (e *fakeEngine) IsBulkTriggeringOnSlot(slot int) bool { return e.triggered[slot] }

func (e *fakeEngine) LaunchedClipWithLowestSlotOnTrack(track int) (control.Clip, bool) {
	var best *fakeClip
	for _, c := range e.clips {
		if c.track == track && c.launched && (best == nil || c.slot < best.slot) {
			best = c
		}
	}
	return best, best != nil
}

func (e *fakeEngine) ClipWithLowestSlotOnTrack(track int) (control.Clip, bool) {
	var best *fakeClip
	for _, c := range e.clips {
		if c.track == track && (best == nil || c.slot < best.slot) {
			best = c
		}
	}
	return best, best != nil
}

func (e *fakeEngine) LaunchClip(track, slot int)             { e.record("launchClip %d %d", track, slot) }
func (e *fakeEngine) StopClip(track, slot int)               { e.record("stopClip %d %d", track, slot) }
func (e *fakeEngine) StopTrack(track int)                    { e.record("stopTrack %d", track) }
func (e *fakeEngine) LaunchScene(slot int)                   { e.record("launchScene %d", slot) }
func (e *fakeEngine) ArmClip(track, slot int)                { e.record("armClip %d %d", track, slot) }
func (e *fakeEngine) DisarmClip(track, slot int)             { e.record("disarmClip %d %d", track, slot) }
func (e *fakeEngine) ArmTrack(track int)                     { e.record("armTrack %d", track) }
func (e *fakeEngine) DisarmTrack(track int)                  { e.record("disarmTrack %d", track) }
func (e *fakeEngine) SoloTrack(track int)                    { e.record("soloTrack %d", track) }
func (e *fakeEngine) UnsoloTrack(track int)                  { e.record("unsoloTrack %d", track) }
func (e *fakeEngine) MuteTrack(track int)                    { e.record("muteTrack %d", track) }
func (e *fakeEngine) UnmuteTrack(track int)                  { e.record("unmuteTrack %d", track) }
func (e *fakeEngine) ClearActivePattern(track, slot int)     { e.record("clearActivePattern %d %d", track, slot) }
func (e *fakeEngine) DuplicateActivePattern(track, slot int) { e.record("duplicateActivePattern %d %d", track, slot) }
func (e *fakeEngine) ToggleQuantization(track, slot int)     { e.record("toggleQuantization %d %d", track, slot) }

func (e *fakeEngine) ReceiveNoteOn(note, velocity, channel uint8, ts int32) {
	e.record("noteOn %d %d %d", note, velocity, channel)
}
func (e *fakeEngine) ReceiveNoteOff(note, velocity, channel uint8, ts int32) {
	e.record("noteOff %d %d %d", note, velocity, channel)
}
func (e *fakeEngine) ReceivePolyAftertouch(note, pressure, channel uint8, ts int32) {
	e.record("polyAftertouch %d %d %d", note, pressure, channel)
}
func (e *fakeEngine) ReceiveChannelAftertouch(pressure, channel uint8, ts int32) {
	e.record("channelAftertouch %d %d", pressure, channel)
}

// fakeSink collects every batch sent to the device.
type fakeSink struct {
	batches [][]launchpad.Message
}

func (s *fakeSink) Send(msgs []launchpad.Message) error {
	s.batches = append(s.batches, msgs)
	return nil
}

func (s *fakeSink) all() []launchpad.Message {
	var out []launchpad.Message
	for _, b := range s.batches {
		out = append(out, b...)
	}
	return out
}
