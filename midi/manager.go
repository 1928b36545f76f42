package midi

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go-gridlink/config"
	"go-gridlink/control"
	"go-gridlink/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// DeviceManager handles hot-plug detection of MIDI controllers
type DeviceManager struct {
	engine      Engine
	cfg         *config.Config
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
}

// NewDeviceManager creates a device manager connecting the controllers
// cfg marks for auto-connect to engine.
func NewDeviceManager(engine Engine, cfg *config.Config) *DeviceManager {
	return &DeviceManager{
		engine:      engine,
		cfg:         cfg,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
	}
}

// Events returns a channel of device connect/disconnect events. It is
// closed when Run returns.
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Surfaces returns the connected Launchpads ordered by port name.
func (dm *DeviceManager) Surfaces() []*Surface {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	var out []*Surface
	for _, c := range dm.controllers {
		if s, ok := c.(*Surface); ok {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b *Surface) int { return strings.Compare(a.ID(), b.ID()) })
	return out
}

// Run polls for devices until ctx is done, then closes every controller.
func (dm *DeviceManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()
	defer close(dm.events)

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			return nil
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	var inPorts []drivers.In
	var outPorts []drivers.Out

	select {
	case result := <-ch:
		inPorts = result.inPorts
		outPorts = result.outPorts
	case <-time.After(3 * time.Second):
		// CoreMIDI is hung - skip this scan
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Log("devices", "port scan timed out")
		return
	}

	seenIDs := make(map[string]bool)
	for _, entry := range dm.cfg.AutoConnectControllers() {
		var c Controller
		var id string
		if entry.Type.IsGrid() {
			id, c = dm.connectSurface(entry, inPorts, outPorts)
		} else {
			id, c = dm.connectKeyboard(entry, inPorts)
		}
		if id == "" {
			continue
		}
		seenIDs[id] = true
		if c == nil {
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = c
		dm.mu.Unlock()

		debug.Log("devices", "connected %s %s", entry.Type, id)
		dm.emit(DeviceEvent{Type: DeviceConnected, Controller: c, ID: id})
	}

	// Check for disconnects
	dm.mu.Lock()
	var removed []string
	for id, c := range dm.controllers {
		if !seenIDs[id] {
			c.Close()
			delete(dm.controllers, id)
			removed = append(removed, id)
		}
	}
	dm.mu.Unlock()

	for _, id := range removed {
		debug.Log("devices", "disconnected %s", id)
		dm.emit(DeviceEvent{Type: DeviceDisconnected, ID: id})
	}
}

// emit never blocks the scan; events are only a display hint.
func (dm *DeviceManager) emit(ev DeviceEvent) {
	select {
	case dm.events <- ev:
	default:
		debug.Log("devices", "event queue full, dropped %s %s", ev.Type, ev.ID)
	}
}

func (dm *DeviceManager) connected(id string) bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	_, ok := dm.controllers[id]
	return ok
}

// connectSurface finds the surface's ports. It returns the port id when the
// device is present, and a controller when it was newly opened.
func (dm *DeviceManager) connectSurface(entry config.ControllerConfig, inPorts []drivers.In, outPorts []drivers.Out) (string, Controller) {
	profile, err := control.LookupProfile(string(entry.Type))
	if err != nil {
		return "", nil
	}
	model := profile.Model

	outPort, ok := findPort(outPorts, model.OutPort, entry.PortName)
	if !ok {
		return "", nil
	}
	id := outPort.String()
	if dm.connected(id) {
		return id, nil
	}

	var ins []drivers.In
	for _, fragment := range model.InPorts {
		if in, ok := findPort(inPorts, fragment, ""); ok && !slices.Contains(ins, in) {
			ins = append(ins, in)
		}
	}

	s, err := OpenSurface(id, profile, dm.engine, ins, outPort)
	if err != nil {
		debug.Log("devices", "open %s: %v", id, err)
		return id, nil
	}
	return id, s
}

func (dm *DeviceManager) connectKeyboard(entry config.ControllerConfig, inPorts []drivers.In) (string, Controller) {
	if entry.PortName == "" {
		return "", nil
	}
	inPort, ok := findPort(inPorts, entry.PortName, "")
	if !ok {
		return "", nil
	}
	id := inPort.String()
	if dm.connected(id) {
		return id, nil
	}

	kb, err := OpenKeyboard(id, entry.InputChannel, dm.engine, inPort)
	if err != nil {
		debug.Log("devices", "open %s: %v", id, err)
		return id, nil
	}
	return id, kb
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// findPort returns the first port whose name contains fragment and, when
// set, filter. Matching ignores case.
func findPort[P interface{ String() string }](ports []P, fragment, filter string) (P, bool) {
	for _, p := range ports {
		name := strings.ToLower(p.String())
		if !strings.Contains(name, strings.ToLower(fragment)) {
			continue
		}
		if filter != "" && !strings.Contains(name, strings.ToLower(filter)) {
			continue
		}
		return p, true
	}
	var zero P
	return zero, false
}
