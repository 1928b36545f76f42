package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-gridlink/control"
	"go-gridlink/launchpad"
	"go-gridlink/midi"
	"go-gridlink/sequencer"
	"go-gridlink/theme"
	"go-gridlink/widgets"
)

const refreshRate = 100 * time.Millisecond

// Surfaces lists the connected surfaces. *midi.DeviceManager is one.
type Surfaces interface {
	Surfaces() []*midi.Surface
}

type Model struct {
	Engine   *sequencer.Engine
	Devices  Surfaces
	Events   <-chan midi.DeviceEvent
	Theme    *theme.Theme
	focus    int
	status   string
	quitting bool
}

type UpdateMsg struct{}

type RefreshMsg struct{}

type DeviceEventMsg midi.DeviceEvent

// surfaceDoneMsg reports a command run on a surface.
type surfaceDoneMsg struct{ err error }

func NewModel(engine *sequencer.Engine, devices Surfaces, events <-chan midi.DeviceEvent, th *theme.Theme) Model {
	return Model{
		Engine:  engine,
		Devices: devices,
		Events:  events,
		Theme:   th,
	}
}

func ListenForUpdates(engine *sequencer.Engine) tea.Cmd {
	return func() tea.Msg {
		<-engine.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(events <-chan midi.DeviceEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

// Surface state changes without engine updates, so redraw on a timer too.
func refresh() tea.Cmd {
	return tea.Tick(refreshRate, func(time.Time) tea.Msg { return RefreshMsg{} })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Engine),
		ListenForDevices(m.Events),
		refresh(),
	)
}

// focused returns the surface the keys act on.
func (m Model) focused() (*midi.Surface, []*midi.Surface) {
	surfaces := m.Devices.Surfaces()
	if len(surfaces) == 0 {
		return nil, nil
	}
	return surfaces[m.focus%len(surfaces)], surfaces
}

// onSurface runs fn on the focused surface's goroutine.
func (m Model) onSurface(fn func(*control.Controller)) tea.Cmd {
	s, _ := m.focused()
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		return surfaceDoneMsg{err: s.Do(fn)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Engine.Stop()
			return m, tea.Quit

		case "tab":
			if _, surfaces := m.focused(); len(surfaces) > 0 {
				m.focus = (m.focus + 1) % len(surfaces)
			}

		case "p":
			m.Engine.Toggle()

		case "+", "=":
			_, _, tempo := m.Engine.State()
			m.Engine.SetTempo(tempo + 5)

		case "-", "_":
			_, _, tempo := m.Engine.State()
			m.Engine.SetTempo(tempo - 5)

		case "r":
			return m, m.onSurface(func(c *control.Controller) { c.OnRender(true) })

		case "h", "left":
			return m, m.onSurface(func(c *control.Controller) { c.Scroll(-1, 0) })
		case "l", "right":
			return m, m.onSurface(func(c *control.Controller) { c.Scroll(1, 0) })
		case "k", "up":
			return m, m.onSurface(func(c *control.Controller) { c.Scroll(0, -1) })
		case "j", "down":
			return m, m.onSurface(func(c *control.Controller) { c.Scroll(0, 1) })
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Engine)

	case RefreshMsg:
		return m, refresh()

	case surfaceDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		m.status = fmt.Sprintf("%s %s", event.ID, event.Type)
		return m, ListenForDevices(m.Events)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	step, playing, tempo := m.Engine.State()
	bar, beat := m.Engine.Position()

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	activeStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())

	playState := "STOP"
	if playing {
		playState = activeStyle.Render("PLAY")
	}

	header := headerStyle.Render(fmt.Sprintf("go-gridlink  %s  %3dbpm  %d.%d  step:%d", playState, tempo, bar+1, beat+1, step))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	s, surfaces := m.focused()
	if s == nil {
		out.WriteString(dimStyle.Render("No surfaces connected - plug in a Launchpad any time"))
		out.WriteString("\n")
	} else {
		for i, other := range surfaces {
			marker := "  "
			if other == s {
				marker = "> "
			}
			fmt.Fprintf(&out, "%s%d %s (%s)\n", marker, i+1, other.Profile(), other.ID())
		}
		out.WriteString("\n")

		snap := s.Snapshot()
		grid := widgets.RenderSurface(m.Theme, s.Profile().Model, snap.Lights)
		out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", m.stateView(snap)))
		out.WriteString("\n")
	}

	if note := m.Engine.LastNote(); note.Valid {
		state := "off"
		if note.On {
			state = "on"
		}
		fmt.Fprintf(&out, "\nlast note: %d vel %d ch %d %s\n", note.Pitch, note.Velocity, note.Channel+1, state)
	}

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(dimStyle.Render(m.status))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render("tab:surface  hjkl:scroll  r:redraw  p:play  +/-:tempo  q:quit"))

	return out.String()
}

func (m Model) stateView(snap control.Snapshot) string {
	lines := []string{
		fmt.Sprintf("view       %s", snap.View),
		fmt.Sprintf("input      %s", snap.Input),
		fmt.Sprintf("momentary  %s", snap.Momentary),
		fmt.Sprintf("viewport   track %d slot %d", snap.Viewport.TrackOffset, snap.Viewport.SlotOffset),
	}
	if len(snap.Stopping) > 0 {
		lines = append(lines, fmt.Sprintf("stopping   %v", snap.Stopping))
	}
	if len(snap.Highlighting) > 0 {
		lines = append(lines, fmt.Sprintf("waiting    %v", snap.Highlighting))
	}
	lines = append(lines, "",
		widgets.RenderLegendItem(m.Theme, launchpad.Flashing(launchpad.ColorGreen), "flashing", "starting or stopping"),
		widgets.RenderLegendItem(m.Theme, launchpad.Pulsing(launchpad.ColorGreen), "pulsing", "playing"),
		widgets.RenderLegendItem(m.Theme, launchpad.Static(launchpad.ColorRed), "red", "armed"),
	)
	return strings.Join(lines, "\n")
}
