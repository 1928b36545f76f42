package launchpad

import (
	"cmp"
	"maps"
	"slices"
)

// ViewState is a complete description of what should be lit on a surface.
// A render pass builds a fresh one; it is not modified after being diffed.
type ViewState struct {
	Clear   bool // assume nothing is lit and redraw everything
	Buttons map[Button]Style
	Pads    map[Pad]Style
}

// NewViewState returns an empty view state.
func NewViewState(clear bool) *ViewState {
	return &ViewState{
		Clear:   clear,
		Buttons: make(map[Button]Style),
		Pads:    make(map[Pad]Style),
	}
}

// SetButton styles a button, replacing any earlier style.
func (v *ViewState) SetButton(b Button, s Style) {
	v.Buttons[b] = s
}

// SetPad styles a pad, replacing any earlier style.
func (v *ViewState) SetPad(p Pad, s Style) {
	v.Pads[p] = s
}

// Button returns the style of a button, or Off.
func (v *ViewState) Button(b Button) Style {
	if v == nil {
		return Off
	}
	return v.Buttons[b]
}

// Pad returns the style of a pad, or Off.
func (v *ViewState) Pad(p Pad) Style {
	if v == nil {
		return Off
	}
	return v.Pads[p]
}

// Clone returns a deep copy.
func (v *ViewState) Clone() *ViewState {
	if v == nil {
		return NewViewState(false)
	}
	return &ViewState{
		Clear:   v.Clear,
		Buttons: maps.Clone(v.Buttons),
		Pads:    maps.Clone(v.Pads),
	}
}

func sortedButtons(m map[Button]Style) []Button {
	return slices.Sorted(maps.Keys(m))
}

func sortedPads(m map[Pad]Style) []Pad {
	return slices.SortedFunc(maps.Keys(m), func(a, b Pad) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
}
