package launchpad

// Diff returns the messages that take a device showing prev to showing next.
//
// Messages are emitted in a fixed order: clear, stale buttons off, stale pads
// off, changed buttons, changed pads. Within each step keys are visited in
// ascending order. A style whose lighting mode changes is turned off first,
// since the hardware does not switch cleanly between animations. Off-grid
// pads are skipped. A nil prev is treated as an empty view state.
func (m *Model) Diff(prev, next *ViewState) []Message {
	var msgs []Message

	// After a clear nothing is lit, so prev no longer describes the device.
	if next.Clear {
		msgs = append(msgs, m.Clear()...)
		msgs = append(msgs, m.ResetSessionButton())
		prev = nil
	}
	if prev == nil {
		prev = NewViewState(false)
	}

	for _, b := range sortedButtons(prev.Buttons) {
		if _, ok := next.Buttons[b]; ok {
			continue
		}
		msgs = append(msgs, m.ButtonMessage(b, Off))
	}

	for _, p := range sortedPads(prev.Pads) {
		if !m.Layout.InBounds(p) {
			continue
		}
		if _, ok := next.Pads[p]; ok {
			continue
		}
		msgs = append(msgs, m.PadMessage(p, Off))
	}

	for _, b := range sortedButtons(next.Buttons) {
		style := next.Buttons[b]
		old, ok := prev.Buttons[b]
		if ok && old == style {
			continue
		}
		if ok && old.Lighting != style.Lighting {
			msgs = append(msgs, m.ButtonMessage(b, Off))
		}
		msgs = append(msgs, m.ButtonMessage(b, style))
	}

	for _, p := range sortedPads(next.Pads) {
		if !m.Layout.InBounds(p) {
			continue
		}
		style := next.Pads[p]
		old, ok := prev.Pads[p]
		if ok && old == style {
			continue
		}
		if ok && old.Lighting != style.Lighting {
			msgs = append(msgs, m.PadMessage(p, Off))
		}
		msgs = append(msgs, m.PadMessage(p, style))
	}

	return msgs
}
