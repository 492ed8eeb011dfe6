package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-padscript/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceKind identifies what a connected port pair is used for
type DeviceKind int

const (
	KindBridge DeviceKind = iota
	KindTrigger
)

func (k DeviceKind) String() string {
	if k == KindTrigger {
		return "trigger"
	}
	return "bridge"
}

// DeviceEventType is connect or disconnect
type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceEvent is emitted when a bridge or trigger port comes or goes.
// Bridge is set for connected bridges, Trigger for connected triggers.
type DeviceEvent struct {
	Type    DeviceEventType
	Kind    DeviceKind
	ID      string
	Bridge  *Bridge
	Trigger *TriggerSampler
}

// Options says which ports to look for
type Options struct {
	BridgePort  string // substring of the bridge port name
	TriggerPort string // substring of the trigger port name
	TriggerPin  int
	TriggerNote uint8
	PollRate    time.Duration
}

// DeviceManager handles hot-plug detection of the bridge and trigger ports
type DeviceManager struct {
	opts    Options
	bridge  *Bridge
	trigger *TriggerSampler
	mu      sync.RWMutex
	events  chan DeviceEvent
}

// NewDeviceManager creates a new device manager
func NewDeviceManager(opts Options) *DeviceManager {
	if opts.PollRate <= 0 {
		opts.PollRate = time.Second
	}
	return &DeviceManager{
		opts:   opts,
		events: make(chan DeviceEvent, 16),
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Bridge returns the connected bridge (or nil)
func (dm *DeviceManager) Bridge() *Bridge {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.bridge
}

// Trigger returns the connected trigger sampler (or nil)
func (dm *DeviceManager) Trigger() *TriggerSampler {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.trigger
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.opts.PollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Port enumeration can hang on some backends; give up after 3s
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	var result portsResult
	select {
	case result = <-ch:
	case <-time.After(3 * time.Second):
		debug.Log("midi", "port scan timed out")
		return
	}

	dm.scanBridge(result.inPorts, result.outPorts)
	dm.scanTrigger(result.inPorts)
}

func (dm *DeviceManager) scanBridge(ins []drivers.In, outs []drivers.Out) {
	in := findIn(ins, dm.opts.BridgePort)
	out := findOut(outs, dm.opts.BridgePort)

	dm.mu.RLock()
	current := dm.bridge
	dm.mu.RUnlock()

	switch {
	case current == nil && in != nil && out != nil:
		br, err := NewBridge(in.String(), in, out)
		if err != nil {
			debug.Log("midi", "bridge %s: %v", in.String(), err)
			return
		}
		dm.mu.Lock()
		dm.bridge = br
		dm.mu.Unlock()
		debug.Log("midi", "bridge connected: %s", br.ID())
		dm.emit(DeviceEvent{Type: DeviceConnected, Kind: KindBridge, ID: br.ID(), Bridge: br})

	case current != nil && (in == nil || out == nil):
		current.Close()
		dm.mu.Lock()
		dm.bridge = nil
		dm.mu.Unlock()
		debug.Log("midi", "bridge disconnected: %s", current.ID())
		dm.emit(DeviceEvent{Type: DeviceDisconnected, Kind: KindBridge, ID: current.ID()})
	}
}

func (dm *DeviceManager) scanTrigger(ins []drivers.In) {
	in := findIn(ins, dm.opts.TriggerPort)

	dm.mu.RLock()
	current := dm.trigger
	dm.mu.RUnlock()

	switch {
	case current == nil && in != nil:
		ts, err := NewTriggerSampler(in.String(), in, dm.opts.TriggerPin, dm.opts.TriggerNote)
		if err != nil {
			debug.Log("midi", "trigger %s: %v", in.String(), err)
			return
		}
		dm.mu.Lock()
		dm.trigger = ts
		dm.mu.Unlock()
		debug.Log("midi", "trigger connected: %s", ts.ID())
		dm.emit(DeviceEvent{Type: DeviceConnected, Kind: KindTrigger, ID: ts.ID(), Trigger: ts})

	case current != nil && in == nil:
		current.Close()
		dm.mu.Lock()
		dm.trigger = nil
		dm.mu.Unlock()
		debug.Log("midi", "trigger disconnected: %s", current.ID())
		dm.emit(DeviceEvent{Type: DeviceDisconnected, Kind: KindTrigger, ID: current.ID()})
	}
}

// emit drops events nobody is reading rather than stall the scan
func (dm *DeviceManager) emit(ev DeviceEvent) {
	select {
	case dm.events <- ev:
	default:
		debug.Log("midi", "event dropped: %v %s", ev.Kind, ev.ID)
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.bridge != nil {
		dm.bridge.Close()
		dm.bridge = nil
	}
	if dm.trigger != nil {
		dm.trigger.Close()
		dm.trigger = nil
	}
}

// MatchPort reports whether a port name contains want (case-insensitive).
// An empty want never matches.
func MatchPort(name, want string) bool {
	if want == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(want))
}

func findIn(ports []drivers.In, want string) drivers.In {
	for _, p := range ports {
		if MatchPort(p.String(), want) {
			return p
		}
	}
	return nil
}

func findOut(ports []drivers.Out, want string) drivers.Out {
	for _, p := range ports {
		if MatchPort(p.String(), want) {
			return p
		}
	}
	return nil
}
