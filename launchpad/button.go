package launchpad

// Button is the CC number of a non-pad button.
type Button uint8

// Buttons shared by every Mk3 surface.
const (
	ButtonCol0 Button = 91 + iota // top row, left to right
	ButtonCol1
	ButtonCol2
	ButtonCol3
	ButtonCol4
	ButtonCol5
	ButtonCol6
	ButtonCol7
	ButtonLogo
)

// Right column, top to bottom.
const (
	ButtonRow0 Button = 89
	ButtonRow1 Button = 79
	ButtonRow2 Button = 69
	ButtonRow3 Button = 59
	ButtonRow4 Button = 49
	ButtonRow5 Button = 39
	ButtonRow6 Button = 29
	ButtonRow7 Button = 19
)

// ButtonSession is the top-row button with its own session colour message.
const ButtonSession = ButtonCol4

// Pro Mk3 only.
const (
	ButtonShift Button = 90
)

// TopButton returns top-row button i (0-7).
func TopButton(i int) Button { return ButtonCol0 + Button(i) }

// SceneButton returns right-column button i (0 = top).
func SceneButton(i int) Button { return Button(89 - 10*i) }

// LeftButton returns left-column button i (0 = top). Pro Mk3 only.
func LeftButton(i int) Button { return Button(80 - 10*i) }

// TrackButton returns bottom "above" button i, the per-track row. Pro Mk3 only.
func TrackButton(i int) Button { return Button(101 + i) }

// BelowButton returns bottom "below" button i. Pro Mk3 only.
func BelowButton(i int) Button { return Button(1 + i) }

// TrackButtonIndex returns the column of a track button, or -1.
func TrackButtonIndex(b Button) int {
	if b < TrackButton(0) || b > TrackButton(7) {
		return -1
	}
	return int(b - TrackButton(0))
}

// SceneButtonIndex returns the row of a right-column button, or -1.
func SceneButtonIndex(b Button) int {
	for i := 0; i < 8; i++ {
		if SceneButton(i) == b {
			return i
		}
	}
	return -1
}

// CommonButtons lists the buttons present on every Mk3 surface.
func CommonButtons() []Button {
	buttons := make([]Button, 0, 17)
	for i := 0; i < 8; i++ {
		buttons = append(buttons, TopButton(i))
	}
	buttons = append(buttons, ButtonLogo)
	for i := 0; i < 8; i++ {
		buttons = append(buttons, SceneButton(i))
	}
	return buttons
}

// ProButtons lists every button on a Launchpad Pro Mk3.
func ProButtons() []Button {
	buttons := CommonButtons()
	buttons = append(buttons, ButtonShift)
	for i := 0; i < 8; i++ {
		buttons = append(buttons, LeftButton(i))
	}
	for i := 0; i < 8; i++ {
		buttons = append(buttons, TrackButton(i))
	}
	for i := 0; i < 8; i++ {
		buttons = append(buttons, BelowButton(i))
	}
	return buttons
}
