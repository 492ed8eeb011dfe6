package hid

// Transport is the device-side view of a HID report pipe.
//
// The core polls it once per tick. Nothing here blocks: a method either
// completes one fixed-size transfer or reports an error.
type Transport interface {
	// Configured is true once the host has enumerated and configured the device.
	Configured() bool

	// Host -> device
	OutputReady() bool
	ReadOutput() (OutputReport, error)

	// Device -> host
	InputReady() bool
	WriteInput(r Report) error
}
