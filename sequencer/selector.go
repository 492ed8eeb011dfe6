package sequencer

// DefaultTriggerPin is bit 3 of port B.
const DefaultTriggerPin = 3

// Selector watches the debounced trigger pin and rotates through programs on
// each press.
//
// A press is a rising edge of the pressed level, so press+release of the
// button advances the rotation exactly once.
type Selector struct {
	rotation  []Script
	pin       int
	activeLow bool

	counter uint
	primed  bool
	pressed bool
}

// NewSelector creates a selector over rotation, watching stable bit pin.
// With activeLow the button reads pressed when the pin is low (pull-up wiring).
func NewSelector(rotation []Script, pin int, activeLow bool) *Selector {
	return &Selector{
		rotation:  rotation,
		pin:       pin,
		activeLow: activeLow,
	}
}

// Poll compares the trigger level in stable against the previous poll.
// On a press it advances the rotation and returns the next script; the caller
// restarts the sequencer with StartForever. The first poll only records the
// level.
func (s *Selector) Poll(stable uint16) (Script, bool) {
	pressed := s.level(stable)
	if !s.primed {
		s.primed = true
		s.pressed = pressed
		return Script{}, false
	}

	edge := pressed && !s.pressed
	s.pressed = pressed
	if !edge {
		return Script{}, false
	}
	return s.Trigger()
}

// Trigger advances the rotation unconditionally.
func (s *Selector) Trigger() (Script, bool) {
	if len(s.rotation) == 0 {
		return Script{}, false
	}
	s.counter++
	return s.rotation[s.counter%uint(len(s.rotation))], true
}

// Index returns the current rotation index.
func (s *Selector) Index() int {
	if len(s.rotation) == 0 {
		return 0
	}
	return int(s.counter % uint(len(s.rotation)))
}

// SetIndex jumps the rotation to i without triggering.
func (s *Selector) SetIndex(i int) {
	if i < 0 || len(s.rotation) == 0 {
		return
	}
	s.counter = uint(i % len(s.rotation))
}

// Pressed returns the trigger level seen by the last poll.
func (s *Selector) Pressed() bool { return s.pressed }

// Pin returns the stable bit being watched.
func (s *Selector) Pin() int { return s.pin }

// Reset forgets the previous level and rewinds the rotation.
func (s *Selector) Reset() {
	s.counter = 0
	s.primed = false
	s.pressed = false
}

func (s *Selector) level(stable uint16) bool {
	if s.pin < 0 || s.pin > 15 {
		return false
	}
	high := stable&(1<<uint(s.pin)) != 0
	return high != s.activeLow
}
