package launchpad

// Pad is an absolute position on the visible grid. Row 0 is the top row.
type Pad struct {
	Row, Col int
}

// TrackSlot identifies a clip slot in the engine, independent of scrolling.
type TrackSlot struct {
	Track, Slot int
}

// Layout describes how pad notes are laid out on the device.
type Layout struct {
	TopLeftPad uint8 // note number of the top-left pad
	RowSkip    int   // note distance between rows
	Rows, Cols int
}

// Mk3Layout is shared by every Launchpad Mk3 in DAW mode.
// Row 0 (top) = notes 81-88, row 7 (bottom) = notes 11-18.
var Mk3Layout = Layout{
	TopLeftPad: 81,
	RowSkip:    10,
	Rows:       8,
	Cols:       8,
}

// PadFromNote converts a pad note number to a grid position.
// Only valid for notes in the pad block; CC numbers must not be passed in.
func (l Layout) PadFromNote(note uint8) Pad {
	n := int(note)
	return Pad{
		Row: l.Rows - n/l.RowSkip,
		Col: n%l.RowSkip - int(l.TopLeftPad)%l.RowSkip,
	}
}

// NoteFromPad converts a grid position to the note number used to light it.
func (l Layout) NoteFromPad(p Pad) uint8 {
	return uint8(int(l.TopLeftPad) + p.Col - p.Row*l.RowSkip)
}

// InBounds reports whether the pad is on the visible grid.
func (l Layout) InBounds(p Pad) bool {
	return p.Row >= 0 && p.Row < l.Rows && p.Col >= 0 && p.Col < l.Cols
}

// Viewport is the scroll position of the grid over the engine's clips.
type Viewport struct {
	TrackOffset int
	SlotOffset  int
}

// Logical returns the clip slot under a pad.
func (v Viewport) Logical(p Pad) TrackSlot {
	return TrackSlot{
		Track: p.Col + v.TrackOffset,
		Slot:  p.Row + v.SlotOffset,
	}
}

// Pad returns where a clip slot lands on the grid. The result may be
// off-grid when the slot is scrolled out of view.
func (v Viewport) Pad(ts TrackSlot) Pad {
	return Pad{
		Row: ts.Slot - v.SlotOffset,
		Col: ts.Track - v.TrackOffset,
	}
}
