package debounce

import "sync"

// PortSampler reads the raw level of both input ports.
type PortSampler interface {
	Sample() (portB, portD uint8)
}

// ManualSampler is a PortSampler whose pins are set in software.
// Pins idle high (pull-up); Press pulls a pin low.
type ManualSampler struct {
	mu   sync.Mutex
	pins uint16
}

// NewManualSampler returns a sampler with every pin released (high).
func NewManualSampler() *ManualSampler {
	return &ManualSampler{pins: 0xFFFF}
}

// Press pulls pin low.
func (m *ManualSampler) Press(pin int) {
	m.set(pin, false)
}

// Release lets pin float back high.
func (m *ManualSampler) Release(pin int) {
	m.set(pin, true)
}

// Toggle flips pin and returns true if it is now pressed (low).
func (m *ManualSampler) Toggle(pin int) bool {
	if pin < 0 || pin > 15 {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pins ^= 1 << uint(pin)
	return m.pins&(1<<uint(pin)) == 0
}

// SetRaw overwrites every pin at once.
func (m *ManualSampler) SetRaw(pins uint16) {
	m.mu.Lock()
	m.pins = pins
	m.mu.Unlock()
}

func (m *ManualSampler) set(pin int, high bool) {
	if pin < 0 || pin > 15 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if high {
		m.pins |= 1 << uint(pin)
	} else {
		m.pins &^= 1 << uint(pin)
	}
}

func (m *ManualSampler) Sample() (portB, portD uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint8(m.pins), uint8(m.pins >> 8)
}
