package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// TriggerSampler is a debounce.PortSampler driven by a MIDI note: holding the
// note pulls one pin low, every other pin idles high.
type TriggerSampler struct {
	id   string
	pin  int
	note uint8
	stop func()

	mu   sync.Mutex
	held bool
}

// NewTriggerSampler listens on inPort for note.
func NewTriggerSampler(id string, inPort drivers.In, pin int, note uint8) (*TriggerSampler, error) {
	ts := newTriggerSampler(id, pin, note)
	if inPort == nil {
		return nil, fmt.Errorf("trigger %s: no input port", id)
	}
	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		ts.handle(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	ts.stop = stop
	return ts, nil
}

func newTriggerSampler(id string, pin int, note uint8) *TriggerSampler {
	return &TriggerSampler{id: id, pin: pin, note: note}
}

func (ts *TriggerSampler) handle(msg gomidi.Message) {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		if key == ts.note {
			ts.setHeld(velocity > 0)
		}
	case msg.GetNoteOff(&channel, &key, &velocity):
		if key == ts.note {
			ts.setHeld(false)
		}
	}
}

func (ts *TriggerSampler) setHeld(v bool) {
	ts.mu.Lock()
	ts.held = v
	ts.mu.Unlock()
}

// Held reports whether the trigger note is currently down.
func (ts *TriggerSampler) Held() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.held
}

func (ts *TriggerSampler) ID() string { return ts.id }

// Sample implements debounce.PortSampler.
func (ts *TriggerSampler) Sample() (portB, portD uint8) {
	pins := uint16(0xFFFF)
	if ts.Held() && ts.pin >= 0 && ts.pin < 16 {
		pins &^= 1 << uint(ts.pin)
	}
	return uint8(pins), uint8(pins >> 8)
}

// Close stops listening. The pin reads released afterwards.
func (ts *TriggerSampler) Close() error {
	ts.mu.Lock()
	stop := ts.stop
	ts.stop = nil
	ts.held = false
	ts.mu.Unlock()
	if stop != nil {
		stop()
	}
	return nil
}
