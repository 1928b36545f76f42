package launchpad

// Color is an index into the device's 128-entry palette.
type Color uint8

// Palette indices used by the surfaces.
// See the Programmer's Reference Manual for the full palette.
const (
	ColorOff         Color = 0
	ColorGray        Color = 1
	ColorLightGray   Color = 2
	ColorWhite       Color = 3
	ColorLightRed    Color = 4
	ColorRed         Color = 5
	ColorDarkRed     Color = 7
	ColorLightOrange Color = 8
	ColorOrange      Color = 9
	ColorDarkOrange  Color = 11
	ColorLightYellow Color = 12
	ColorYellow      Color = 13
	ColorDarkYellow  Color = 15
	ColorLightGreen  Color = 20
	ColorGreen       Color = 21
	ColorDarkGreen   Color = 23
	ColorLightBlue   Color = 40
	ColorBlue        Color = 41
	ColorDarkBlue    Color = 43
)

// accents are the clip colors, indexed by the engine's color index mod 9.
var accents = [9]Color{40, 28, 12, 56, 48, 32, 16, 4, 52}

// AccentColor maps an engine clip color index to a palette color.
// Negative indices have no accent and map to off.
func AccentColor(index int) Color {
	if index < 0 {
		return ColorOff
	}
	return accents[index%len(accents)]
}

// Lighting is the hardware animation mode. It is sent as the MIDI channel
// of the lighting message.
type Lighting uint8

const (
	LightingStatic   Lighting = 0 // solid color
	LightingFlashing Lighting = 1 // flashing A/B alternating
	LightingPulsing  Lighting = 2 // pulsing (fades)
)

func (l Lighting) String() string {
	switch l {
	case LightingStatic:
		return "static"
	case LightingFlashing:
		return "flashing"
	case LightingPulsing:
		return "pulsing"
	}
	return "unknown"
}

// Style is how a pad or button is lit. The zero Style is off.
type Style struct {
	Color    Color
	Lighting Lighting
}

func Static(c Color) Style   { return Style{Color: c, Lighting: LightingStatic} }
func Flashing(c Color) Style { return Style{Color: c, Lighting: LightingFlashing} }
func Pulsing(c Color) Style  { return Style{Color: c, Lighting: LightingPulsing} }

// Off is the style every unlit pad and button converges to.
var Off = Style{}
