package theme

import (
	"fmt"

	"go-gridlink/launchpad"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Pads    *Palette // indexed by launchpad.Color
	Symbols Symbols
}

type Symbols struct {
	Off      rune // · unlit
	Static   rune // ■ solid
	Flashing rune // ▣ flashing A/B
	Pulsing  rune // ◆ pulsing
	Missing  rune // no control at this position
}

func New(pads *Palette) *Theme {
	return &Theme{
		Pads: pads,
		Symbols: Symbols{
			Off:      '·',
			Static:   '■',
			Flashing: '▣',
			Pulsing:  '◆',
			Missing:  ' ',
		},
	}
}

// Color roles mapped to palette entries
const (
	RoleFG      = launchpad.ColorLightGray
	RoleMuted   = launchpad.ColorGray
	RoleAccent  = launchpad.ColorLightBlue
	RoleActive  = launchpad.ColorGreen
	RoleWarning = launchpad.ColorOrange
	RoleDanger  = launchpad.ColorRed
)

// Style helpers

func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Danger() lipgloss.Color  { return t.Color(RoleDanger) }

// Color returns the terminal colour of a palette entry.
func (t *Theme) Color(c launchpad.Color) lipgloss.Color {
	return rgbToLipgloss(t.Pads.Index(int(c)))
}

// Symbol returns the glyph drawn for a lit control.
func (t *Theme) Symbol(s launchpad.Style) rune {
	if s.Color == launchpad.ColorOff {
		return t.Symbols.Off
	}
	switch s.Lighting {
	case launchpad.LightingFlashing:
		return t.Symbols.Flashing
	case launchpad.LightingPulsing:
		return t.Symbols.Pulsing
	}
	return t.Symbols.Static
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
