package control

import (
	"errors"
	"fmt"

	"go-gridlink/launchpad"
)

// ErrUnknownProfile is returned by LookupProfile.
var ErrUnknownProfile = errors.New("unknown controller profile")

// Function is the role a button plays on a particular surface.
type Function int

const (
	FuncNone Function = iota
	FuncUp
	FuncDown
	FuncLeft
	FuncRight
	FuncSession
	FuncNote
	FuncChord
	FuncCustom
	FuncDrums
	FuncKeys
	FuncUser
	FuncArm
	FuncPlay
	FuncStop
	FuncSolo
	FuncMute
	FuncRecord
	FuncInputCycle // one button stepping through stop, solo and mute
	FuncClear
	FuncDuplicate
	FuncQuantize
)

// viewButtons are functions that select a passthrough view.
var viewButtons = map[Function]ViewMode{
	FuncNote:   ViewNote,
	FuncChord:  ViewChord,
	FuncCustom: ViewCustom,
	FuncDrums:  ViewDrums,
	FuncKeys:   ViewKeys,
	FuncUser:   ViewUser,
}

var inputButtons = map[Function]InputMode{
	FuncStop:   InputStop,
	FuncSolo:   InputSolo,
	FuncMute:   InputMute,
	FuncRecord: InputRecord,
}

var momentaryButtons = map[Function]MomentaryMode{
	FuncClear:     MomentaryClear,
	FuncDuplicate: MomentaryDuplicate,
	FuncQuantize:  MomentaryQuantize,
}

// Feature is an optional behavior of a surface.
type Feature uint16

const (
	// FeatureMixer: the session button toggles a mixer view and input
	// modes only apply there.
	FeatureMixer Feature = 1 << iota
	// FeatureInputCycle: a single button cycles stop, solo and mute.
	FeatureInputCycle
	// FeaturePadTrackRow: the bottom pad row acts on whole tracks in an input mode.
	FeaturePadTrackRow
	// FeatureTrackButtons: a dedicated button row acts on whole tracks.
	FeatureTrackButtons
	FeatureMomentary
	FeatureAftertouch
	FeatureButtonRelease
	FeatureArm
	FeaturePlay
	// FeatureSceneSessionOnly: scene buttons only launch in session view.
	FeatureSceneSessionOnly
)

// Profile is the immutable description of how one surface model behaves.
type Profile struct {
	Name     string // config key, e.g. "launchpad-x"
	Model    *launchpad.Model
	Features Feature
	Views    []ViewMode
	Scenes   int // number of scene launch buttons, from the top

	aliases   map[Function]launchpad.Button
	functions map[launchpad.Button]Function
}

func newProfile(name string, model *launchpad.Model, features Feature, scenes int, views []ViewMode, aliases map[Function]launchpad.Button) *Profile {
	p := &Profile{
		Name:      name,
		Model:     model,
		Features:  features,
		Views:     views,
		Scenes:    scenes,
		aliases:   aliases,
		functions: make(map[launchpad.Button]Function, len(aliases)),
	}
	for fn, b := range aliases {
		p.functions[b] = fn
	}
	return p
}

// Has reports whether the profile has every given feature.
func (p *Profile) Has(f Feature) bool {
	return p.Features&f == f
}

// Button returns the button bound to a function.
func (p *Profile) Button(fn Function) (launchpad.Button, bool) {
	b, ok := p.aliases[fn]
	return b, ok
}

// Function returns the role of a button, or FuncNone.
func (p *Profile) Function(b launchpad.Button) Function {
	return p.functions[b]
}

func (p *Profile) String() string {
	return p.Name
}

var (
	// LaunchpadX has a mixer view behind the session button with
	// stop/solo/mute/record on the bottom pad row.
	LaunchpadX = newProfile("launchpad-x", launchpad.LaunchpadX,
		FeatureMixer|FeaturePadTrackRow|FeatureAftertouch|FeatureArm|FeatureSceneSessionOnly,
		8,
		[]ViewMode{ViewSession, ViewMixer, ViewNote, ViewCustom},
		map[Function]launchpad.Button{
			FuncUp:      launchpad.ButtonCol0,
			FuncDown:    launchpad.ButtonCol1,
			FuncLeft:    launchpad.ButtonCol2,
			FuncRight:   launchpad.ButtonCol3,
			FuncSession: launchpad.ButtonSession,
			FuncNote:    launchpad.ButtonCol5,
			FuncCustom:  launchpad.ButtonCol6,
			FuncArm:     launchpad.ButtonCol7,
			FuncStop:    launchpad.ButtonRow4,
			FuncMute:    launchpad.ButtonRow5,
			FuncSolo:    launchpad.ButtonRow6,
			FuncRecord:  launchpad.ButtonRow7,
		})

	// LaunchpadMiniMk3 cycles stop/solo/mute on the bottom pad row with the
	// last scene button.
	LaunchpadMiniMk3 = newProfile("launchpad-mini", launchpad.LaunchpadMiniMk3,
		FeatureInputCycle|FeaturePadTrackRow,
		7,
		[]ViewMode{ViewSession, ViewDrums, ViewKeys, ViewUser},
		map[Function]launchpad.Button{
			FuncUp:         launchpad.ButtonCol0,
			FuncDown:       launchpad.ButtonCol1,
			FuncLeft:       launchpad.ButtonCol2,
			FuncRight:      launchpad.ButtonCol3,
			FuncSession:    launchpad.ButtonSession,
			FuncDrums:      launchpad.ButtonCol5,
			FuncKeys:       launchpad.ButtonCol6,
			FuncUser:       launchpad.ButtonCol7,
			FuncInputCycle: launchpad.ButtonRow7,
		})

	// LaunchpadProMk3 follows the device's own layout buttons, has per-track
	// buttons and momentary clear/duplicate/quantize.
	LaunchpadProMk3 = newProfile("launchpad-pro", launchpad.LaunchpadProMk3,
		FeatureTrackButtons|FeatureMomentary|FeatureAftertouch|FeatureButtonRelease|FeatureArm|FeaturePlay,
		8,
		[]ViewMode{ViewSession, ViewNote, ViewChord, ViewCustom, ViewInternal},
		map[Function]launchpad.Button{
			FuncUp:        launchpad.LeftButton(0),
			FuncDown:      launchpad.LeftButton(1),
			FuncClear:     launchpad.LeftButton(2),
			FuncDuplicate: launchpad.LeftButton(3),
			FuncQuantize:  launchpad.LeftButton(4),
			FuncPlay:      launchpad.LeftButton(6),
			FuncArm:       launchpad.LeftButton(7),
			FuncLeft:      launchpad.ButtonCol0,
			FuncRight:     launchpad.ButtonCol1,
			FuncRecord:    launchpad.BelowButton(0),
			FuncMute:      launchpad.BelowButton(1),
			FuncSolo:      launchpad.BelowButton(2),
			FuncStop:      launchpad.BelowButton(7),
		})
)

// Profiles lists every built-in profile.
func Profiles() []*Profile {
	return []*Profile{LaunchpadX, LaunchpadMiniMk3, LaunchpadProMk3}
}

// LookupProfile finds a built-in profile by name.
func LookupProfile(name string) (*Profile, error) {
	for _, p := range Profiles() {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}
