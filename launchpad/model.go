package launchpad

// Model describes one Launchpad Mk3 variant: how it identifies itself in
// SysEx, which buttons it has and which optional protocol features it speaks.
type Model struct {
	Name     string
	Identity []byte // SysEx preamble after F0
	Layout   Layout
	Buttons  []Button // every addressable button, used for the synthesized clear

	// ClearCommand is set when the device understands the DAW clear SysEx.
	// Without it, clearing writes off to every pad and button.
	ClearCommand bool

	// LayoutReadback is set when the device reports its current layout and
	// the session layout message carries trailing parameters.
	LayoutReadback bool

	InPorts []string // port name fragments to listen on
	OutPort string   // port name fragment to send to
}

var (
	// LaunchpadX is the Novation Launchpad X.
	LaunchpadX = &Model{
		Name:         "Launchpad X",
		Identity:     []byte{0x00, 0x20, 0x29, 0x02, 0x0C},
		Layout:       Mk3Layout,
		Buttons:      CommonButtons(),
		ClearCommand: true,
		InPorts:      []string{"LPX DAW Out", "LPX MIDI Out"},
		OutPort:      "LPX DAW In",
	}

	// LaunchpadMiniMk3 is the Novation Launchpad Mini Mk3.
	LaunchpadMiniMk3 = &Model{
		Name:         "Launchpad Mini Mk3",
		Identity:     []byte{0x00, 0x20, 0x29, 0x02, 0x0D},
		Layout:       Mk3Layout,
		Buttons:      CommonButtons(),
		ClearCommand: true,
		InPorts:      []string{"LPMiniMK3 DAW Out", "LPMiniMK3 MIDI Out"},
		OutPort:      "LPMiniMK3 DAW In",
	}

	// LaunchpadProMk3 is the Novation Launchpad Pro Mk3. It has no clear
	// command and no mode readback; the layout readback is used instead.
	LaunchpadProMk3 = &Model{
		Name:           "Launchpad Pro Mk3",
		Identity:       []byte{0x00, 0x20, 0x29, 0x02, 0x0E},
		Layout:         Mk3Layout,
		Buttons:        ProButtons(),
		LayoutReadback: true,
		InPorts:        []string{"LPProMK3 DAW", "LPProMK3 MIDI"},
		OutPort:        "LPProMK3 DAW",
	}
)

// Models lists every supported surface.
func Models() []*Model {
	return []*Model{LaunchpadX, LaunchpadMiniMk3, LaunchpadProMk3}
}

// HasButton reports whether b is a physical button on this model.
func (m *Model) HasButton(b Button) bool {
	for _, x := range m.Buttons {
		if x == b {
			return true
		}
	}
	return false
}

func (m *Model) String() string {
	return m.Name
}
