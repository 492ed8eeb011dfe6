package midi

import (
	"fmt"

	"go-padscript/hid"
)

// SysEx framing for HID reports:
//
//	F0 7D 50 <kind> <16 nibbles, high first> F7
//
// 0x7D is the non-commercial manufacturer ID. Each report byte is split into
// two nibbles so the payload stays 7-bit clean.
const (
	sysexManufacturer byte = 0x7D
	sysexTag          byte = 0x50 // 'P'
)

// ReportKind tags which direction a SysEx report travels
type ReportKind byte

const (
	KindInput  ReportKind = 0x01 // device -> host
	KindOutput ReportKind = 0x02 // host -> device
)

const sysexLen = 3 + hid.ReportSize*2

// EncodeReport builds the SysEx payload (without F0/F7) for one report.
func EncodeReport(kind ReportKind, b [hid.ReportSize]byte) []byte {
	out := make([]byte, 0, sysexLen)
	out = append(out, sysexManufacturer, sysexTag, byte(kind))
	for _, v := range b {
		out = append(out, v>>4, v&0x0F)
	}
	return out
}

// DecodeReport parses a SysEx payload (without F0/F7).
func DecodeReport(data []byte) (ReportKind, [hid.ReportSize]byte, error) {
	var b [hid.ReportSize]byte
	if len(data) != sysexLen {
		return 0, b, fmt.Errorf("sysex: want %d bytes, got %d", sysexLen, len(data))
	}
	if data[0] != sysexManufacturer || data[1] != sysexTag {
		return 0, b, fmt.Errorf("sysex: not a report (header % x)", data[:2])
	}
	kind := ReportKind(data[2])
	if kind != KindInput && kind != KindOutput {
		return 0, b, fmt.Errorf("sysex: unknown report kind %#x", data[2])
	}
	for i := range b {
		hi, lo := data[3+2*i], data[4+2*i]
		if hi > 0x0F || lo > 0x0F {
			return 0, b, fmt.Errorf("sysex: bad nibble at byte %d", i)
		}
		b[i] = hi<<4 | lo
	}
	return kind, b, nil
}
