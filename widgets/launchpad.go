package widgets

import (
	"fmt"
	"strings"

	"go-gridlink/launchpad"
	"go-gridlink/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderPad renders a single lit control
func RenderPad(th *theme.Theme, s launchpad.Style) string {
	color := th.Color(s.Color)
	if s.Color == launchpad.ColorOff {
		color = th.Muted()
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(th.Symbol(s)))
}

// RenderSurface draws a surface the way it sits on the desk: the top
// button row with the logo, the pads with the scene column on the right,
// and on the Pro the left column and the two bottom rows.
func RenderSurface(th *theme.Theme, model *launchpad.Model, lights *launchpad.ViewState) string {
	left := model.HasButton(launchpad.LeftButton(0))
	missing := string(th.Symbols.Missing)

	cell := func(b launchpad.Button, ok bool) string {
		if !ok || !model.HasButton(b) {
			return missing
		}
		return RenderPad(th, lights.Button(b))
	}

	row := func(first string, middle []string, last string) string {
		var cells []string
		if left {
			cells = append(cells, first)
		}
		cells = append(cells, middle...)
		cells = append(cells, last)
		return strings.Join(cells, " ")
	}

	buttons := func(f func(i int) launchpad.Button) []string {
		out := make([]string, model.Layout.Cols)
		for i := range out {
			out[i] = cell(f(i), true)
		}
		return out
	}

	var lines []string
	lines = append(lines, row(cell(launchpad.ButtonShift, true), buttons(launchpad.TopButton), cell(launchpad.ButtonLogo, true)))

	for r := 0; r < model.Layout.Rows; r++ {
		pads := make([]string, model.Layout.Cols)
		for c := range pads {
			pads[c] = RenderPad(th, lights.Pad(launchpad.Pad{Row: r, Col: c}))
		}
		lines = append(lines, row(cell(launchpad.LeftButton(r), left), pads, cell(launchpad.SceneButton(r), true)))
	}

	if model.HasButton(launchpad.TrackButton(0)) {
		lines = append(lines, row(missing, buttons(launchpad.TrackButton), missing))
		lines = append(lines, row(missing, buttons(launchpad.BelowButton), missing))
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(th *theme.Theme, s launchpad.Style, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(th, s), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
