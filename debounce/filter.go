// Package debounce turns raw, bouncy pin samples into stable logical levels.
//
// Each 8-bit port keeps its last four raw samples packed into a uint32. A pin's
// stable level only changes once it has read the same value in all four
// retained samples; anything in between holds the previous stable level.
package debounce

// Port indices
const (
	PortB = 0
	PortD = 1

	NumPorts = 2
)

// strideMask selects bit 0 of each of the four samples packed in a history word.
const strideMask uint32 = 0x01010101

// Filter holds rolling sample history and the resulting stable bit vector.
// Bits 0-7 of the stable vector are port B, bits 8-15 port D.
// The zero value is ready to use (everything low).
type Filter struct {
	history [NumPorts]uint32
	stable  uint16
}

// UpdatePort shifts one raw sample into a port's history and returns that
// port's updated stable byte.
func (f *Filter) UpdatePort(port int, raw uint8) uint8 {
	if port < 0 || port >= NumPorts {
		return 0
	}
	h := f.history[port]<<8 | uint32(raw)
	f.history[port] = h

	shift := uint(port * 8)
	for i := 0; i < 8; i++ {
		mask := strideMask << i
		bit := uint16(1) << (shift + uint(i))
		switch h & mask {
		case mask:
			f.stable |= bit
		case 0:
			f.stable &^= bit
		}
	}
	return uint8(f.stable >> shift)
}

// Update samples both ports and returns the full stable vector.
func (f *Filter) Update(portB, portD uint8) uint16 {
	f.UpdatePort(PortB, portB)
	f.UpdatePort(PortD, portD)
	return f.stable
}

// Sample pulls one snapshot from s and feeds it through the filter.
func (f *Filter) Sample(s PortSampler) uint16 {
	b, d := s.Sample()
	return f.Update(b, d)
}

// Stable returns the current stable bit vector.
func (f *Filter) Stable() uint16 {
	return f.stable
}

// Bit returns stable bit i (0-15).
func (f *Filter) Bit(i int) bool {
	if i < 0 || i > 15 {
		return false
	}
	return f.stable&(1<<uint(i)) != 0
}
