package hid

import (
	"encoding/binary"
	"fmt"
)

// Button bits in the report's button mask
const (
	ButtonY       uint16 = 0x01
	ButtonB       uint16 = 0x02
	ButtonA       uint16 = 0x04
	ButtonX       uint16 = 0x08
	ButtonL       uint16 = 0x10
	ButtonR       uint16 = 0x20
	ButtonZL      uint16 = 0x40
	ButtonZR      uint16 = 0x80
	ButtonMinus   uint16 = 0x100
	ButtonPlus    uint16 = 0x200
	ButtonLClick  uint16 = 0x400
	ButtonRClick  uint16 = 0x800
	ButtonHome    uint16 = 0x1000
	ButtonCapture uint16 = 0x2000
)

// Hat (D-pad) positions, clockwise from top
const (
	HatTop         uint8 = 0x00
	HatTopRight    uint8 = 0x01
	HatRight       uint8 = 0x02
	HatBottomRight uint8 = 0x03
	HatBottom      uint8 = 0x04
	HatBottomLeft  uint8 = 0x05
	HatLeft        uint8 = 0x06
	HatTopLeft     uint8 = 0x07
	HatCenter      uint8 = 0x08
)

// Stick axis values
const (
	StickMin    uint8 = 0
	StickCenter uint8 = 128
	StickMax    uint8 = 255
)

// ReportSize is the wire size of both the input and output reports.
const ReportSize = 8

// Report is one input report frame sent to the host.
//
// Wire layout (little endian):
//
//	0-1: button mask
//	2:   hat
//	3:   LX
//	4:   LY
//	5:   RX
//	6:   RY
//	7:   vendor byte (always 0)
type Report struct {
	Buttons uint16
	Hat     uint8
	LX, LY  uint8
	RX, RY  uint8
	Vendor  uint8
}

// OutputReport is a report received from the host. Its contents are ignored.
type OutputReport [ReportSize]byte

// NeutralReport returns a report with both sticks centered, the hat centered
// and no buttons held.
func NeutralReport() Report {
	return Report{
		Hat: HatCenter,
		LX:  StickCenter,
		LY:  StickCenter,
		RX:  StickCenter,
		RY:  StickCenter,
	}
}

// Pressed reports whether every bit in mask is held.
func (r Report) Pressed(mask uint16) bool {
	return r.Buttons&mask == mask
}

// IsNeutral reports whether the report carries no input at all.
func (r Report) IsNeutral() bool {
	return r == NeutralReport()
}

// Bytes encodes the report into its fixed wire layout.
func (r Report) Bytes() [ReportSize]byte {
	var b [ReportSize]byte
	binary.LittleEndian.PutUint16(b[0:2], r.Buttons)
	b[2] = r.Hat
	b[3] = r.LX
	b[4] = r.LY
	b[5] = r.RX
	b[6] = r.RY
	b[7] = r.Vendor
	return b
}

// ParseReport decodes a wire-format input report.
func ParseReport(b []byte) (Report, error) {
	if len(b) != ReportSize {
		return Report{}, fmt.Errorf("report: want %d bytes, got %d", ReportSize, len(b))
	}
	return Report{
		Buttons: binary.LittleEndian.Uint16(b[0:2]),
		Hat:     b[2],
		LX:      b[3],
		LY:      b[4],
		RX:      b[5],
		RY:      b[6],
		Vendor:  b[7],
	}, nil
}

func (r Report) String() string {
	b := r.Bytes()
	return fmt.Sprintf("% x", b[:])
}
