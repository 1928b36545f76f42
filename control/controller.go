package control

import (
	"go-gridlink/debug"
	"go-gridlink/launchpad"

	"github.com/google/uuid"
)

// Sink delivers outgoing messages to the device, in order.
type Sink interface {
	Send(msgs []launchpad.Message) error
}

// Controller drives one connected surface. It is not safe for concurrent
// use; the transport must serialise calls.
type Controller struct {
	id      uuid.UUID
	profile *Profile
	engine  Engine
	sink    Sink

	view     *launchpad.ViewState // last rendered, nil until the first render
	viewport launchpad.Viewport
	state    State

	// firstConnection is set until the first layout readback after connecting.
	firstConnection bool
}

// New creates a controller for a surface described by profile.
func New(profile *Profile, engine Engine, sink Sink) *Controller {
	return &Controller{
		id:              uuid.New(),
		profile:         profile,
		engine:          engine,
		sink:            sink,
		state:           newState(),
		firstConnection: true,
	}
}

// ID identifies this controller instance in logs and the monitor.
func (c *Controller) ID() uuid.UUID { return c.id }

// Profile returns the surface profile.
func (c *Controller) Profile() *Profile { return c.profile }

func (c *Controller) emit(msgs []launchpad.Message) {
	if len(msgs) == 0 {
		return
	}
	if err := c.sink.Send(msgs); err != nil {
		debug.Log("control", "%s %s: send %d messages: %v", c.profile, c.id, len(msgs), err)
	}
}

// OnConnect puts the device into DAW mode and forces a full redraw.
func (c *Controller) OnConnect() {
	debug.Log("control", "%s %s: connect", c.profile, c.id)
	c.emit(c.profile.Model.ConnectMessages())
	c.view = nil
	c.firstConnection = true
	c.OnRender(true)
}

// OnDisconnect hands the device back to standalone mode.
func (c *Controller) OnDisconnect() {
	debug.Log("control", "%s %s: disconnect", c.profile, c.id)
	c.emit(c.profile.Model.DisconnectMessages())
}

// OnSysEx handles a complete incoming SysEx frame, F0 and F7 included.
func (c *Controller) OnSysEx(frame []byte) {
	ack := c.profile.Model.Match(frame)
	switch ack.Kind {
	case launchpad.AckDaw:
		debug.Log("control", "%s %s: daw mode acknowledged", c.profile, c.id)
		c.enterDawMode()
	case launchpad.AckStandalone:
		debug.Log("control", "%s %s: standalone mode acknowledged", c.profile, c.id)
	case launchpad.AckLayout:
		debug.Log("control", "%s %s: layout %s", c.profile, c.id, ack.Layout)
		c.state.View = viewForLayout(ack.Layout)
		if c.firstConnection {
			c.firstConnection = false
			c.enterDawMode()
			return
		}
		c.OnRender(false)
	default:
		debug.LogEvery(50, "control", "%s: unrecognized sysex % X", c.profile, frame)
	}
}

// enterDawMode bootstraps a freshly acknowledged connection.
func (c *Controller) enterDawMode() {
	c.emit([]launchpad.Message{c.profile.Model.SessionLayout()})
	c.view = nil
	c.OnRender(true)
}

// OnNoteOn handles a pad press. Zero velocity is a release.
func (c *Controller) OnNoteOn(note, velocity, channel uint8, timestamp int32) {
	if velocity == 0 {
		c.OnNoteOff(note, velocity, channel, timestamp)
		return
	}
	if c.state.View.Passthrough() {
		c.engine.ReceiveNoteOn(note, velocity, channel, timestamp)
		return
	}
	if c.pressPad(c.profile.Model.Layout.PadFromNote(note)) {
		c.OnRender(false)
	}
}

// OnNoteOff handles a pad release.
func (c *Controller) OnNoteOff(note, velocity, channel uint8, timestamp int32) {
	if c.state.View.Passthrough() {
		c.engine.ReceiveNoteOff(note, velocity, channel, timestamp)
		return
	}
	if c.releasePad(c.profile.Model.Layout.PadFromNote(note)) {
		c.OnRender(false)
	}
}

// OnControlChange handles a button. 127 is a press; 0 is a release on
// surfaces that report releases.
func (c *Controller) OnControlChange(cc, value, channel uint8, timestamp int32) {
	b := launchpad.Button(cc)
	var handled bool
	switch {
	case value == 127:
		handled = c.pressButton(b)
	case value == 0 && c.profile.Has(FeatureButtonRelease):
		handled = c.releaseButton(b)
	}
	if handled {
		c.OnRender(false)
	}
}

// OnPolyAftertouch forwards pad pressure while pads play notes.
func (c *Controller) OnPolyAftertouch(note, pressure, channel uint8, timestamp int32) {
	if c.profile.Has(FeatureAftertouch) && c.state.View.Passthrough() {
		c.engine.ReceivePolyAftertouch(note, pressure, channel, timestamp)
	}
}

// OnChannelAftertouch forwards channel pressure while pads play notes.
func (c *Controller) OnChannelAftertouch(pressure, channel uint8, timestamp int32) {
	if c.profile.Has(FeatureAftertouch) && c.state.View.Passthrough() {
		c.engine.ReceiveChannelAftertouch(pressure, channel, timestamp)
	}
}

// OnUpdate reconciles local state after the engine reports that a clip
// changed. It does not render.
func (c *Controller) OnUpdate(track, slot int) {
	if c.engine.IsAnyReleasingOnTrack(track) {
		return
	}
	for ts := range c.state.stopping {
		if ts.Track == track {
			c.state.stopping.remove(ts)
		}
	}
}

// OnRender rebuilds the view and sends the difference to the device.
// With clear set nothing is assumed to be lit.
func (c *Controller) OnRender(clear bool) {
	next := c.buildView(clear)
	c.emit(c.profile.Model.Diff(c.view, next))
	c.view = next
}

// Press runs a surface function as if its button was pressed, for hosts
// without the hardware button. It reports whether the function exists on
// this surface.
func (c *Controller) Press(fn Function) bool {
	b, ok := c.profile.Button(fn)
	if !ok {
		return false
	}
	if c.pressButton(b) {
		c.OnRender(false)
	}
	return true
}

// Scroll moves the viewport by the given deltas, clamped to the engine's range.
func (c *Controller) Scroll(tracks, slots int) {
	before := c.viewport
	c.scrollBy(tracks, slots)
	if c.viewport != before {
		c.OnRender(false)
	}
}

// Snapshot is a copy of a controller's state for display.
type Snapshot struct {
	ID           uuid.UUID
	Profile      *Profile
	View         ViewMode
	Input        InputMode
	Momentary    MomentaryMode
	Viewport     launchpad.Viewport
	Stopping     []launchpad.TrackSlot
	Highlighting []launchpad.TrackSlot
	Lights       *launchpad.ViewState
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		ID:           c.id,
		Profile:      c.profile,
		View:         c.state.View,
		Input:        c.state.Input,
		Momentary:    c.state.Momentary,
		Viewport:     c.viewport,
		Stopping:     c.state.stopping.sorted(),
		Highlighting: c.state.highlighting.sorted(),
		Lights:       c.view.Clone(),
	}
}
