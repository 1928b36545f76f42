package midi

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"go-gridlink/config"
	"go-gridlink/control"
	"go-gridlink/debug"
	"go-gridlink/launchpad"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var sendCount uint64

// Surface is a connected Launchpad. A single goroutine owns its
// control.Controller: MIDI input, engine updates and host commands are
// all queued to it.
type Surface struct {
	id      string
	profile *control.Profile
	ctrl    *control.Controller
	send    func(msg gomidi.Message) error
	stops   []func()

	ops  chan func(*control.Controller)
	quit chan struct{}
	done chan struct{}

	// Clips changed by the engine, drained by the owning goroutine.
	mu      sync.Mutex
	pending map[launchpad.TrackSlot]struct{}
	wake    chan struct{}

	unsubscribe func()
	snapshot    atomic.Pointer[control.Snapshot]
	closeOnce   sync.Once
}

// OpenSurface opens the ports of a Launchpad and starts driving it.
func OpenSurface(id string, profile *control.Profile, engine Engine, ins []drivers.In, out drivers.Out) (*Surface, error) {
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", out, err)
	}

	s := NewSurface(id, profile, engine, send)
	for _, in := range ins {
		stop, err := gomidi.ListenTo(in, s.Receive, gomidi.UseSysEx())
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open input %s: %w", in, err)
		}
		s.stops = append(s.stops, stop)
	}
	return s, nil
}

// NewSurface drives a surface through send. Input is fed with Receive.
// The connect handshake goes out immediately.
func NewSurface(id string, profile *control.Profile, engine Engine, send func(msg gomidi.Message) error) *Surface {
	s := &Surface{
		id:      id,
		profile: profile,
		send:    send,
		ops:     make(chan func(*control.Controller), 256),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		pending: make(map[launchpad.TrackSlot]struct{}),
		wake:    make(chan struct{}, 1),
	}
	s.ctrl = control.New(profile, engine, s)
	s.unsubscribe = engine.Subscribe(s.clipChanged)
	go s.run()
	return s
}

func (s *Surface) ID() string { return s.id }

func (s *Surface) Type() config.ControllerType { return config.ControllerType(s.profile.Name) }

// Profile returns the surface profile.
func (s *Surface) Profile() *control.Profile { return s.profile }

// Send writes messages to the device in order. It implements control.Sink.
func (s *Surface) Send(msgs []launchpad.Message) error {
	for _, msg := range msgs {
		if err := s.send(gomidi.Message(msg)); err != nil {
			return fmt.Errorf("send % X: %w", []byte(msg), err)
		}
	}

	count := atomic.AddUint64(&sendCount, uint64(len(msgs)))
	if count%100 < uint64(len(msgs)) {
		debug.Log("lp-send", "%s: count=%d (this batch=%d)", s.id, count, len(msgs))
	}
	return nil
}

// Receive queues an incoming message. It is the ListenTo callback.
func (s *Surface) Receive(msg gomidi.Message, timestampms int32) {
	ev, ok := Decode(msg, timestampms)
	if !ok {
		return
	}
	op := func(c *control.Controller) { Dispatch(c, ev) }

	// A lost release would leave an overlay or a held clip stuck, so
	// releases wait for room instead of being dropped.
	if isRelease(ev) {
		select {
		case s.ops <- op:
		case <-s.quit:
		}
		return
	}

	select {
	case s.ops <- op:
	case <-s.quit:
	default:
		debug.Log("surface", "%s: input queue full, dropped %s %d/%d", s.id, ev.Kind, ev.Primary, ev.Secondary)
	}
}

func isRelease(ev Event) bool {
	switch ev.Kind {
	case KindNoteOff:
		return true
	case KindNoteOn, KindControlChange:
		return ev.Secondary == 0
	}
	return false
}

// Do runs fn on the surface goroutine and waits for it. The snapshot
// reflects fn when Do returns.
func (s *Surface) Do(fn func(*control.Controller)) error {
	finished := make(chan struct{})
	select {
	case s.ops <- func(c *control.Controller) { fn(c); s.publish(); close(finished) }:
	case <-s.quit:
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

// Snapshot returns the state as of the last handled input.
func (s *Surface) Snapshot() control.Snapshot {
	if snap := s.snapshot.Load(); snap != nil {
		return *snap
	}
	return control.Snapshot{Profile: s.profile}
}

// clipChanged is the engine listener. It runs on the engine's goroutine
// and must not touch the controller.
func (s *Surface) clipChanged(track, slot int) {
	s.mu.Lock()
	s.pending[launchpad.TrackSlot{Track: track, Slot: slot}] = struct{}{}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Surface) run() {
	defer close(s.done)

	s.ctrl.OnConnect()
	s.publish()

	for {
		select {
		case <-s.quit:
			s.ctrl.OnDisconnect()
			return
		case fn := <-s.ops:
			fn(s.ctrl)
			s.publish()
		case <-s.wake:
			s.flush()
			s.publish()
		}
	}
}

// flush reconciles every pending clip change, then redraws once.
func (s *Surface) flush() {
	s.mu.Lock()
	changed := slices.SortedFunc(maps.Keys(s.pending), func(a, b launchpad.TrackSlot) int {
		if c := cmp.Compare(a.Track, b.Track); c != 0 {
			return c
		}
		return cmp.Compare(a.Slot, b.Slot)
	})
	clear(s.pending)
	s.mu.Unlock()

	for _, ts := range changed {
		s.ctrl.OnUpdate(ts.Track, ts.Slot)
	}
	s.ctrl.OnRender(false)
}

func (s *Surface) publish() {
	snap := s.ctrl.Snapshot()
	s.snapshot.Store(&snap)
}

// Close hands the device back to standalone mode and stops listening.
func (s *Surface) Close() error {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		for _, stop := range s.stops {
			stop()
		}
		close(s.quit)
		<-s.done
	})
	return nil
}
