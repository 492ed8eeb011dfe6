package sequencer

import (
	"context"
	"sync"
	"time"

	"go-padscript/debounce"
	"go-padscript/debug"
	"go-padscript/hid"
)

// Default frame rate, matching a full-speed interrupt endpoint polled every 8ms
const DefaultFrameRate = 125

// MaxFrameRate caps the tick rate; the ticker period must stay above zero
const MaxFrameRate = 1000

// UI refresh rate
const uiFPS = 30

// Options configures a Manager.
type Options struct {
	FrameRate  int      // ticks per second for Run
	TriggerPin int      // stable bit watched by the selector
	ActiveLow  bool     // trigger reads pressed when low
	Rotation   []Script // programs cycled by the trigger, defaults to Rotation
}

// DefaultOptions returns the stock wiring: 125 Hz, pin B3 active low.
func DefaultOptions() Options {
	return Options{
		FrameRate:  DefaultFrameRate,
		TriggerPin: DefaultTriggerPin,
		ActiveLow:  true,
		Rotation:   Rotation,
	}
}

// Status is a snapshot of the manager for display.
type Status struct {
	Playhead   Playhead
	Input      Input
	Last       hid.Report
	Program    int // rotation index
	Stable     uint16
	Trigger    bool // trigger currently pressed
	Configured bool
	Frames     uint64 // reports written
	Drained    uint64 // output reports read and dropped
	Swaps      uint64 // program changes from the trigger
	Errors     uint64 // transport errors
}

// Manager owns the sequencer, debounce filter and program selector and pumps
// frames into a transport. Every piece of playback state is guarded by mu so
// one tick always runs debounce, edge decision, swap and frame production in
// a consistent order.
type Manager struct {
	mu        sync.Mutex
	seq       Sequencer
	filter    debounce.Filter
	selector  *Selector
	rotation  []Script
	sampler   debounce.PortSampler
	transport hid.Transport
	frameRate int

	last    hid.Report
	frames  uint64
	drained uint64
	swaps   uint64
	errors  uint64

	// set by a PlayCounted completion, run after the tick unlocks
	completed func(*Manager)

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// NewManager creates a manager reading the trigger from sampler. The
// sequencer starts idle (neutral frames) until Boot or Play is called.
func NewManager(sampler debounce.PortSampler, opts Options) *Manager {
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	if opts.FrameRate > MaxFrameRate {
		opts.FrameRate = MaxFrameRate
	}
	if len(opts.Rotation) == 0 {
		opts.Rotation = Rotation
	}
	return &Manager{
		selector:   NewSelector(opts.Rotation, opts.TriggerPin, opts.ActiveLow),
		rotation:   opts.Rotation,
		sampler:    sampler,
		frameRate:  opts.FrameRate,
		last:       hid.NeutralReport(),
		UpdateChan: make(chan struct{}, 1),
	}
}

// SetTransport attaches the report pipe. nil detaches it; ticks then only
// run the debounce/selector half.
func (m *Manager) SetTransport(t hid.Transport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transport = t
	debug.Log("hid", "transport attached=%v", t != nil)
}

// SetSampler swaps the trigger input source.
func (m *Manager) SetSampler(s debounce.PortSampler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sampler = s
}

// Boot plays the setup script loops times, then switches to the current
// rotation program forever. loops == 0 skips setup.
func (m *Manager) Boot(loops uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if loops == 0 {
		return m.seq.StartForever(m.rotation[m.selector.Index()])
	}
	return m.seq.StartCounted(SetupScript, loops, m.afterSetup, nil)
}

// afterSetup runs inside NextFrame with mu held.
func (m *Manager) afterSetup(seq *Sequencer, _ any) {
	next := m.rotation[m.selector.Index()]
	if err := seq.StartForever(next); err != nil {
		debug.Log("seq", "start %s after setup: %v", next.Name(), err)
		return
	}
	debug.Log("seq", "setup complete, playing %s", next.Name())
}

// Play restarts playback of script forever.
func (m *Manager) Play(script Script) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.seq.StartForever(script); err != nil {
		return err
	}
	debug.Log("seq", "play %s", script.Name())
	return nil
}

// PlayCounted plays script times passes, then calls onComplete from the
// ticking goroutine once the tick has released the manager, so the callback
// may call back into m.
func (m *Manager) PlayCounted(script Script, times uint32, onComplete func(*Manager)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq.StartCounted(script, times, func(*Sequencer, any) {
		m.completed = onComplete
	}, nil)
}

// SelectProgram jumps the rotation to i without playing it.
func (m *Manager) SelectProgram(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selector.SetIndex(i)
}

// Next advances the rotation as if the trigger had been pressed.
func (m *Manager) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if next, ok := m.selector.Trigger(); ok {
		m.swap(next)
	}
}

// Tick runs one iteration: drain host output, send at most one frame, then
// sample the trigger and swap programs on a press. The swap is picked up by
// the next tick's frame.
func (m *Manager) Tick() {
	m.mu.Lock()
	m.tick()
	done := m.completed
	m.completed = nil
	m.mu.Unlock()

	if done != nil {
		done(m)
	}
}

func (m *Manager) tick() {
	if t := m.transport; t != nil && t.Configured() {
		m.serviceOutput(t)
		m.serviceInput(t)
	}

	if m.sampler == nil {
		return
	}
	stable := m.filter.Sample(m.sampler)
	if next, ok := m.selector.Poll(stable); ok {
		m.swap(next)
	}
}

func (m *Manager) serviceOutput(t hid.Transport) {
	for t.OutputReady() {
		if _, err := t.ReadOutput(); err != nil {
			m.errors++
			debug.Log("hid", "read output: %v", err)
			return
		}
		m.drained++
	}
}

func (m *Manager) serviceInput(t hid.Transport) {
	if !t.InputReady() {
		return
	}
	r := m.seq.NextFrame()
	if err := t.WriteInput(r); err != nil {
		m.errors++
		debug.Log("hid", "write input: %v", err)
		return
	}
	m.last = r
	m.frames++
	debug.LogEvery(1000, "frame", "%s cursor=%d %s", m.seq.Script().Name(), m.seq.cursor, r)
}

func (m *Manager) swap(next Script) {
	if err := m.seq.StartForever(next); err != nil {
		debug.Log("seq", "swap to %s: %v", next.Name(), err)
		return
	}
	m.swaps++
	debug.Log("seq", "trigger -> program %d (%s)", m.selector.Index(), next.Name())
}

// Run ticks at the configured frame rate until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(m.frameRate))
	uiTicker := time.NewTicker(time.Second / uiFPS)
	defer ticker.Stop()
	defer uiTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick()
		case <-uiTicker.C:
			m.notifyUpdate()
		}
	}
}

// notifyUpdate pokes the TUI without blocking
func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}

// Status returns a snapshot of the current state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{
		Playhead: m.seq.Playhead(),
		Input:    m.seq.Current(),
		Last:     m.last,
		Program:  m.selector.Index(),
		Stable:   m.filter.Stable(),
		Trigger:  m.selector.Pressed(),
		Frames:   m.frames,
		Drained:  m.drained,
		Swaps:    m.swaps,
		Errors:   m.errors,
	}
	if m.transport != nil {
		st.Configured = m.transport.Configured()
	}
	return st
}

// TriggerPin returns the stable bit the selector watches.
func (m *Manager) TriggerPin() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selector.Pin()
}

// FrameRate returns the tick rate used by Run.
func (m *Manager) FrameRate() int { return m.frameRate }

// RotationNames returns the names of the rotation programs in order.
func (m *Manager) RotationNames() []string {
	names := make([]string, len(m.rotation))
	for i, s := range m.rotation {
		names[i] = s.Name()
	}
	return names
}
