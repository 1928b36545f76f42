package control

import (
	"cmp"
	"maps"
	"slices"

	"go-gridlink/launchpad"
)

// ViewMode is what the pad grid is currently showing.
type ViewMode int

const (
	ViewSession ViewMode = iota
	ViewMixer
	ViewNote
	ViewChord
	ViewCustom
	ViewDrums
	ViewKeys
	ViewUser
	ViewInternal // a device-internal layout such as the sequencer
)

func (v ViewMode) String() string {
	switch v {
	case ViewSession:
		return "session"
	case ViewMixer:
		return "mixer"
	case ViewNote:
		return "note"
	case ViewChord:
		return "chord"
	case ViewCustom:
		return "custom"
	case ViewDrums:
		return "drums"
	case ViewKeys:
		return "keys"
	case ViewUser:
		return "user"
	case ViewInternal:
		return "internal"
	}
	return "unknown"
}

// Passthrough reports whether pads are played as notes in this view.
func (v ViewMode) Passthrough() bool {
	switch v {
	case ViewNote, ViewChord, ViewCustom, ViewDrums, ViewKeys, ViewUser:
		return true
	}
	return false
}

// launches reports whether pads launch clips in this view.
func (v ViewMode) launches() bool {
	return v == ViewSession || v == ViewMixer
}

func viewForLayout(l launchpad.LayoutID) ViewMode {
	switch l {
	case launchpad.LayoutSession:
		return ViewSession
	case launchpad.LayoutNote:
		return ViewNote
	case launchpad.LayoutChord:
		return ViewChord
	case launchpad.LayoutCustom:
		return ViewCustom
	}
	return ViewInternal
}

// InputMode changes what the track row does.
type InputMode int

const (
	InputNone InputMode = iota
	InputStop
	InputSolo
	InputMute
	InputRecord
)

func (m InputMode) String() string {
	switch m {
	case InputNone:
		return "none"
	case InputStop:
		return "stop"
	case InputSolo:
		return "solo"
	case InputMute:
		return "mute"
	case InputRecord:
		return "record"
	}
	return "unknown"
}

// color is the indicator colour of a mode button while its mode is active.
func (m InputMode) color() launchpad.Color {
	switch m {
	case InputStop, InputRecord:
		return launchpad.ColorRed
	case InputSolo:
		return launchpad.ColorBlue
	case InputMute:
		return launchpad.ColorYellow
	}
	return launchpad.ColorLightGray
}

// MomentaryMode is a pattern-edit overlay held down by a button.
type MomentaryMode int

const (
	MomentaryNone MomentaryMode = iota
	MomentaryClear
	MomentaryDuplicate
	MomentaryQuantize
)

func (m MomentaryMode) String() string {
	switch m {
	case MomentaryNone:
		return "none"
	case MomentaryClear:
		return "clear"
	case MomentaryDuplicate:
		return "duplicate"
	case MomentaryQuantize:
		return "quantize"
	}
	return "unknown"
}

// slotSet is a set of clip slots. Membership survives scrolling.
type slotSet map[launchpad.TrackSlot]struct{}

func (s slotSet) add(ts launchpad.TrackSlot)      { s[ts] = struct{}{} }
func (s slotSet) remove(ts launchpad.TrackSlot)   { delete(s, ts) }
func (s slotSet) has(ts launchpad.TrackSlot) bool { _, ok := s[ts]; return ok }

func (s slotSet) sorted() []launchpad.TrackSlot {
	return slices.SortedFunc(maps.Keys(s), func(a, b launchpad.TrackSlot) int {
		if c := cmp.Compare(a.Track, b.Track); c != 0 {
			return c
		}
		return cmp.Compare(a.Slot, b.Slot)
	})
}

// State is the mutable mode state of one surface.
type State struct {
	View      ViewMode
	Input     InputMode
	Momentary MomentaryMode

	stopping     slotSet // slots shown as stopping until their track is released
	highlighting slotSet // pads held during a momentary overlay
}

func newState() State {
	return State{
		View:         ViewSession,
		stopping:     make(slotSet),
		highlighting: make(slotSet),
	}
}
