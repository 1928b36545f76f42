package launchpad_test

import (
	"testing"

	"go-gridlink/launchpad"
)

func TestPadFromNote(t *testing.T) {
	l := launchpad.Mk3Layout
	tests := []struct {
		note uint8
		want launchpad.Pad
	}{
		{81, launchpad.Pad{Row: 0, Col: 0}},
		{88, launchpad.Pad{Row: 0, Col: 7}},
		{11, launchpad.Pad{Row: 7, Col: 0}},
		{18, launchpad.Pad{Row: 7, Col: 7}},
		{54, launchpad.Pad{Row: 3, Col: 3}},
	}
	for _, tt := range tests {
		if got := l.PadFromNote(tt.note); got != tt.want {
			t.Errorf("PadFromNote(%d) = %+v, want %+v", tt.note, got, tt.want)
		}
		if got := l.NoteFromPad(tt.want); got != tt.note {
			t.Errorf("NoteFromPad(%+v) = %d, want %d", tt.want, got, tt.note)
		}
	}
}

func TestInBounds(t *testing.T) {
	l := launchpad.Mk3Layout
	tests := []struct {
		pad  launchpad.Pad
		want bool
	}{
		{launchpad.Pad{Row: 0, Col: 0}, true},
		{launchpad.Pad{Row: 7, Col: 7}, true},
		{launchpad.Pad{Row: -1, Col: 0}, false},
		{launchpad.Pad{Row: 0, Col: 8}, false},
		{launchpad.Pad{Row: 8, Col: 3}, false},
	}
	for _, tt := range tests {
		if got := l.InBounds(tt.pad); got != tt.want {
			t.Errorf("InBounds(%+v) = %v, want %v", tt.pad, got, tt.want)
		}
	}
}

func TestViewportRoundTrip(t *testing.T) {
	l := launchpad.Mk3Layout
	viewports := []launchpad.Viewport{
		{},
		{TrackOffset: 3},
		{SlotOffset: 5},
		{TrackOffset: 12, SlotOffset: 9},
	}
	for _, vp := range viewports {
		for row := 0; row < l.Rows; row++ {
			for col := 0; col < l.Cols; col++ {
				p := launchpad.Pad{Row: row, Col: col}
				if got := vp.Pad(vp.Logical(p)); got != p {
					t.Fatalf("viewport %+v: round trip of %+v gave %+v", vp, p, got)
				}
			}
		}
	}
}

func TestViewportOffGrid(t *testing.T) {
	vp := launchpad.Viewport{TrackOffset: 2, SlotOffset: 4}
	p := vp.Pad(launchpad.TrackSlot{Track: 0, Slot: 1})
	if p.Row != -3 || p.Col != -2 {
		t.Fatalf("got %+v, want {-3 -2}", p)
	}
	if launchpad.Mk3Layout.InBounds(p) {
		t.Fatalf("scrolled-out slot reported in bounds")
	}
}

func TestAccentColor(t *testing.T) {
	if got := launchpad.AccentColor(0); got != 40 {
		t.Errorf("AccentColor(0) = %d, want 40", got)
	}
	if got := launchpad.AccentColor(10); got != 28 {
		t.Errorf("AccentColor(10) = %d, want 28", got)
	}
	if got := launchpad.AccentColor(-1); got != launchpad.ColorOff {
		t.Errorf("AccentColor(-1) = %d, want off", got)
	}
}

func TestButtonIndexes(t *testing.T) {
	for i := 0; i < 8; i++ {
		if got := launchpad.SceneButtonIndex(launchpad.SceneButton(i)); got != i {
			t.Errorf("SceneButtonIndex(SceneButton(%d)) = %d", i, got)
		}
		if got := launchpad.TrackButtonIndex(launchpad.TrackButton(i)); got != i {
			t.Errorf("TrackButtonIndex(TrackButton(%d)) = %d", i, got)
		}
	}
	if launchpad.SceneButton(7) != launchpad.ButtonRow7 {
		t.Errorf("SceneButton(7) = %d, want 19", launchpad.SceneButton(7))
	}
	if launchpad.TrackButtonIndex(launchpad.ButtonLogo) != -1 {
		t.Errorf("logo reported as track button")
	}
}
