package sequencer

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"go-gridlink/control"
	"go-gridlink/debug"
	"go-gridlink/launchpad"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// ErrOutOfRange is returned when a clip is placed outside the grid.
var ErrOutOfRange = errors.New("clip outside grid")

// StepsPerBeat is the clock resolution. Recorded notes land on steps.
const StepsPerBeat = 4

var _ control.Engine = (*Engine)(nil)

// Engine is an in-memory clip launcher: a tracks x slots grid of clips
// whose launches and stops take effect on bar boundaries.
type Engine struct {
	mu sync.RWMutex

	tracks, slots int
	clips         map[launchpad.TrackSlot]*clip
	focus         launchpad.TrackSlot
	hasFocus      bool

	// Set by scene launches and track stops, cleared on the next bar.
	bulkTrigger map[int]bool
	bulkRelease map[int]bool

	tempo       int
	beatsPerBar int
	step        int64
	playing     bool

	out        func(gomidi.Message) error
	pendingOff []gomidi.Message
	lastNote   LastNote

	changed []launchpad.TrackSlot // clips touched while mu is held

	listenersMu  sync.Mutex
	listeners    map[int]func(track, slot int)
	nextListener int

	// UpdateChan receives a signal whenever anything changed.
	UpdateChan chan struct{}
}

// New creates an empty engine with the given grid size.
func New(tracks, slots int) *Engine {
	return &Engine{
		tracks:      tracks,
		slots:       slots,
		clips:       make(map[launchpad.TrackSlot]*clip),
		bulkTrigger: make(map[int]bool),
		bulkRelease: make(map[int]bool),
		tempo:       120,
		beatsPerBar: 4,
		listeners:   make(map[int]func(track, slot int)),
		UpdateChan:  make(chan struct{}, 1),
	}
}

// AddClip places a clip on the grid, replacing any clip in that slot.
func (e *Engine) AddClip(cs ClipSpec) error {
	if cs.Track < 0 || cs.Track >= e.tracks || cs.Slot < 0 || cs.Slot >= e.slots {
		return fmt.Errorf("clip %d/%d in %dx%d grid: %w", cs.Track, cs.Slot, e.tracks, e.slots, ErrOutOfRange)
	}
	length := cs.Length
	if length <= 0 {
		length = e.beatsPerBar
	}

	e.mu.Lock()
	defer e.unlockAndNotify()
	c := &clip{
		track:       cs.Track,
		slot:        cs.Slot,
		color:       cs.Color,
		length:      length,
		onBehavior:  cs.NoteOn,
		offBehavior: cs.NoteOff,
		notes:       slices.Clone(cs.Notes),
	}
	e.clips[launchpad.TrackSlot{Track: cs.Track, Slot: cs.Slot}] = c
	e.touch(c)
	return nil
}

// SetBeatsPerBar sets the launch quantization.
func (e *Engine) SetBeatsPerBar(n int) {
	if n < 1 {
		n = 1
	}
	e.mu.Lock()
	e.beatsPerBar = n
	e.mu.Unlock()
}

// SetOutput routes played and echoed notes to a MIDI port.
func (e *Engine) SetOutput(send func(gomidi.Message) error) {
	e.mu.Lock()
	e.out = send
	e.mu.Unlock()
}

// Subscribe registers fn to be called with every changed clip. Calls are
// made without any engine lock held. The returned func unsubscribes.
func (e *Engine) Subscribe(fn func(track, slot int)) (cancel func()) {
	e.listenersMu.Lock()
	id := e.nextListener
	e.nextListener++
	e.listeners[id] = fn
	e.listenersMu.Unlock()

	return func() {
		e.listenersMu.Lock()
		delete(e.listeners, id)
		e.listenersMu.Unlock()
	}
}

func (e *Engine) touch(c *clip) {
	e.changed = append(e.changed, launchpad.TrackSlot{Track: c.track, Slot: c.slot})
}

// unlockAndNotify releases mu and reports the clips touched meanwhile.
func (e *Engine) unlockAndNotify() {
	changed := e.changed
	e.changed = nil
	e.mu.Unlock()
	e.notify(changed)
}

func (e *Engine) notify(changed []launchpad.TrackSlot) {
	if len(changed) == 0 {
		return
	}

	e.listenersMu.Lock()
	fns := slices.Collect(maps.Values(e.listeners))
	e.listenersMu.Unlock()

	for _, ts := range changed {
		for _, fn := range fns {
			fn(ts.Track, ts.Slot)
		}
	}

	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
}

func (e *Engine) send(msgs []gomidi.Message, out func(gomidi.Message) error) {
	if out == nil {
		return
	}
	for _, msg := range msgs {
		if err := out(msg); err != nil {
			debug.Log("engine", "send %s: %v", msg, err)
		}
	}
}

// clipsOnTrack returns the clips of one track ordered by slot.
func (e *Engine) clipsOnTrack(track int) []*clip {
	var out []*clip
	for _, c := range e.clips {
		if c.track == track {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *clip) int { return cmp.Compare(a.slot, b.slot) })
	return out
}

// sortedClips returns every clip ordered by track, then slot.
func (e *Engine) sortedClips() []*clip {
	out := slices.Collect(maps.Values(e.clips))
	slices.SortFunc(out, func(a, b *clip) int {
		if c := cmp.Compare(a.track, b.track); c != 0 {
			return c
		}
		return cmp.Compare(a.slot, b.slot)
	})
	return out
}

// Size returns the grid dimensions.
func (e *Engine) Size() (tracks, slots int) {
	return e.tracks, e.slots
}
