package midi

import (
	"errors"
	"testing"

	"go-padscript/hid"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestReportSysExRoundTrip(t *testing.T) {
	r := hid.Report{Buttons: hid.ButtonZL | hid.ButtonZR, Hat: hid.HatCenter, LX: 0, LY: 255, RX: 128, RY: 128}
	data := EncodeReport(KindInput, r.Bytes())

	for i, b := range data {
		if b > 0x7F {
			t.Fatalf("byte %d = %#x is not 7-bit clean", i, b)
		}
	}

	kind, b, err := DecodeReport(data)
	if err != nil {
		t.Fatalf("DecodeReport: %v", err)
	}
	if kind != KindInput {
		t.Errorf("kind = %v, want input", kind)
	}
	back, _ := hid.ParseReport(b[:])
	if back != r {
		t.Errorf("round trip = %+v, want %+v", back, r)
	}
}

func TestDecodeReportRejects(t *testing.T) {
	good := EncodeReport(KindOutput, [hid.ReportSize]byte{})
	tests := []struct {
		name string
		mod  func([]byte) []byte
	}{
		{"short", func(b []byte) []byte { return b[:5] }},
		{"manufacturer", func(b []byte) []byte { b[0] = 0x41; return b }},
		{"kind", func(b []byte) []byte { b[2] = 0x09; return b }},
		{"nibble", func(b []byte) []byte { b[3] = 0x10; return b }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mod(append([]byte(nil), good...))
			if _, _, err := DecodeReport(data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBridgeQueuesOutputReports(t *testing.T) {
	br := newBridge("test", func(gomidi.Message) error { return nil })

	br.handle(gomidi.SysEx(EncodeReport(KindOutput, [hid.ReportSize]byte{7})))
	br.handle(gomidi.SysEx(EncodeReport(KindInput, [hid.ReportSize]byte{9}))) // echo of our own kind
	br.handle(gomidi.NoteOn(0, 60, 100))

	if !br.OutputReady() {
		t.Fatal("output report not queued")
	}
	out, err := br.ReadOutput()
	if err != nil || out[0] != 7 {
		t.Fatalf("ReadOutput = %v, %v", out, err)
	}
	if br.OutputReady() {
		t.Error("only one output report should have been queued")
	}
}

func TestBridgeQueueBounded(t *testing.T) {
	br := newBridge("test", nil)
	for i := 0; i < maxPendingOutput+5; i++ {
		br.handle(gomidi.SysEx(EncodeReport(KindOutput, [hid.ReportSize]byte{byte(i)})))
	}
	out, _ := br.ReadOutput()
	if out[0] != 5 {
		t.Errorf("oldest kept = %d, want 5", out[0])
	}
}

func TestBridgeWriteInput(t *testing.T) {
	var sent []gomidi.Message
	br := newBridge("test", func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	})

	r := hid.NeutralReport()
	r.Buttons = hid.ButtonA
	if err := br.WriteInput(r); err != nil {
		t.Fatalf("WriteInput: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sent))
	}
	var data []byte
	if !sent[0].GetSysEx(&data) {
		t.Fatalf("sent message is not SysEx: % x", []byte(sent[0]))
	}
	_, b, err := DecodeReport(data)
	if err != nil {
		t.Fatalf("DecodeReport: %v", err)
	}
	if b != r.Bytes() {
		t.Errorf("payload = % x, want % x", b, r.Bytes())
	}

	br.Close()
	if br.Configured() || br.InputReady() {
		t.Error("closed bridge still configured")
	}
	if err := br.WriteInput(r); !errors.Is(err, errBridgeClosed) {
		t.Errorf("WriteInput after close = %v", err)
	}
}

func TestBridgeCloseReleasesOutput(t *testing.T) {
	closed := 0
	stopped := 0
	br := newBridge("test", func(gomidi.Message) error { return nil })
	br.stop = func() { stopped++ }
	br.closeOut = func() error {
		closed++
		return nil
	}

	if err := br.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := br.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if closed != 1 || stopped != 1 {
		t.Errorf("output closed %d times, listener stopped %d times", closed, stopped)
	}

	failing := newBridge("bad", nil)
	failing.closeOut = func() error { return errors.New("port busy") }
	if err := failing.Close(); err == nil {
		t.Error("Close should report the output port error")
	}
}

func TestTriggerSampler(t *testing.T) {
	ts := newTriggerSampler("pad", 3, 11)

	if b, d := ts.Sample(); b != 0xFF || d != 0xFF {
		t.Fatalf("idle sample = %#x %#x, want all high", b, d)
	}

	ts.handle(gomidi.NoteOn(0, 12, 100)) // other pad
	if ts.Held() {
		t.Fatal("other note pressed the trigger")
	}

	ts.handle(gomidi.NoteOn(0, 11, 100))
	if b, _ := ts.Sample(); b != 0xF7 {
		t.Errorf("held sample port B = %#x, want 0xf7", b)
	}

	ts.handle(gomidi.NoteOn(0, 11, 0))
	if ts.Held() {
		t.Error("velocity 0 note-on should release")
	}

	ts.handle(gomidi.NoteOn(0, 11, 100))
	ts.handle(gomidi.NoteOff(0, 11))
	if ts.Held() {
		t.Error("note-off should release")
	}

	ts.handle(gomidi.NoteOn(0, 11, 100))
	ts.Close()
	if ts.Held() {
		t.Error("Close should release")
	}
}

func TestTriggerSamplerPortD(t *testing.T) {
	ts := newTriggerSampler("pad", 10, 11)
	ts.handle(gomidi.NoteOn(0, 11, 1))
	if b, d := ts.Sample(); b != 0xFF || d != 0xFB {
		t.Errorf("sample = %#x %#x, want 0xff 0xfb", b, d)
	}
}

func TestMatchPort(t *testing.T) {
	tests := []struct {
		name, want string
		match      bool
	}{
		{"Launchpad X LPX MIDI", "launchpad", true},
		{"padscript:padscript 128:0", "PadScript", true},
		{"Midi Through Port-0", "launchpad", false},
		{"anything", "", false},
	}
	for _, tt := range tests {
		if got := MatchPort(tt.name, tt.want); got != tt.match {
			t.Errorf("MatchPort(%q, %q) = %v, want %v", tt.name, tt.want, got, tt.match)
		}
	}
}
