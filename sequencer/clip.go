package sequencer

import "go-gridlink/control"

// playState is where a clip is in its launch cycle. Transitions out of
// starting and stopping happen on the next bar.
type playState int

const (
	stateStopped playState = iota
	stateStarting
	statePlaying
	stateStopping
)

func (s playState) String() string {
	switch s {
	case stateStopped:
		return "stopped"
	case stateStarting:
		return "starting"
	case statePlaying:
		return "playing"
	case stateStopping:
		return "stopping"
	}
	return "unknown"
}

// Note is one recorded note, positioned in clock steps from the clip start.
type Note struct {
	Step     int
	Pitch    uint8
	Velocity uint8
}

// ClipSpec describes a clip to place on the grid.
type ClipSpec struct {
	Track, Slot int
	Color       int
	Length      int // beats, defaults to one bar
	NoteOn      control.LaunchBehavior
	NoteOff     control.LaunchBehavior
	Notes       []Note
}

// clip is the engine's mutable clip; guarded by Engine.mu.
type clip struct {
	track, slot int
	color       int
	length      int   // beats
	start       int64 // clock step the clip last started on

	onBehavior  control.LaunchBehavior
	offBehavior control.LaunchBehavior

	state     playState
	armed     bool
	soloed    bool
	muted     bool
	quantized bool

	notes []Note
}

func (c *clip) launched() bool { return c.state == stateStarting || c.state == statePlaying }
func (c *clip) playing() bool  { return c.state == statePlaying || c.state == stateStopping }

// launch queues the clip to start on the next bar.
func (c *clip) launch() bool {
	if c.state == stateStarting || c.state == statePlaying {
		return false
	}
	c.state = stateStarting
	return true
}

// stop queues a playing clip to stop on the next bar and cancels a
// pending start. It reports whether the clip will release.
func (c *clip) stop() bool {
	switch c.state {
	case statePlaying:
		c.state = stateStopping
		return true
	case stateStarting:
		c.state = stateStopped
	}
	return false
}

// settle applies a pending transition and reports whether one happened.
func (c *clip) settle() bool {
	switch c.state {
	case stateStarting:
		c.state = statePlaying
		return true
	case stateStopping:
		c.state = stateStopped
		return true
	}
	return false
}

func (c *clip) snapshot() Clip {
	return Clip{
		TrackIndex:  c.track,
		SlotIndex:   c.slot,
		ColorIndex:  c.color,
		Length:      c.length,
		State:       c.state.String(),
		Launched:    c.launched(),
		Playing:     c.playing(),
		Starting:    c.state == stateStarting,
		Stopping:    c.state == stateStopping,
		Armed:       c.armed,
		Soloed:      c.soloed,
		Muted:       c.muted,
		Quantized:   c.quantized,
		Notes:       len(c.notes),
		OnBehavior:  c.onBehavior,
		OffBehavior: c.offBehavior,
	}
}

// Clip is a point-in-time copy of a clip. It satisfies control.Clip.
type Clip struct {
	TrackIndex int
	SlotIndex  int
	ColorIndex int
	Length     int
	State      string
	Launched   bool
	Playing    bool
	Starting   bool
	Stopping   bool
	Armed      bool
	Soloed     bool
	Muted      bool
	Quantized  bool
	Notes      int

	OnBehavior  control.LaunchBehavior
	OffBehavior control.LaunchBehavior
}

func (c Clip) Track() int                              { return c.TrackIndex }
func (c Clip) Slot() int                               { return c.SlotIndex }
func (c Clip) Color() int                              { return c.ColorIndex }
func (c Clip) IsLaunched() bool                        { return c.Launched }
func (c Clip) IsPlaying() bool                         { return c.Playing }
func (c Clip) WillStart() bool                         { return c.Starting }
func (c Clip) WillStop() bool                          { return c.Stopping }
func (c Clip) IsRecording() bool                       { return c.Armed }
func (c Clip) NoteOnBehavior() control.LaunchBehavior  { return c.OnBehavior }
func (c Clip) NoteOffBehavior() control.LaunchBehavior { return c.OffBehavior }
