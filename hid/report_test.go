package hid

import "testing"

func TestNeutralReport(t *testing.T) {
	r := NeutralReport()
	if r.LX != StickCenter || r.LY != StickCenter || r.RX != StickCenter || r.RY != StickCenter {
		t.Errorf("sticks not centered: %+v", r)
	}
	if r.Hat != HatCenter {
		t.Errorf("hat: got %d, want %d", r.Hat, HatCenter)
	}
	if r.Buttons != 0 {
		t.Errorf("buttons: got %#x, want 0", r.Buttons)
	}
	if !r.IsNeutral() {
		t.Error("IsNeutral() = false for neutral report")
	}
}

func TestReportBytes(t *testing.T) {
	r := Report{
		Buttons: ButtonZL | ButtonZR | ButtonHome,
		Hat:     HatLeft,
		LX:      StickMin,
		LY:      StickMax,
		RX:      0x12,
		RY:      0x34,
	}
	got := r.Bytes()
	want := [ReportSize]byte{0xC0, 0x10, 0x06, 0x00, 0xFF, 0x12, 0x34, 0x00}
	if got != want {
		t.Fatalf("Bytes() = % x, want % x", got, want)
	}

	back, err := ParseReport(got[:])
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if back != r {
		t.Errorf("ParseReport = %+v, want %+v", back, r)
	}
}

func TestParseReportSize(t *testing.T) {
	if _, err := ParseReport([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for short report")
	}
}

func TestPressed(t *testing.T) {
	r := Report{Buttons: ButtonL | ButtonR}
	if !r.Pressed(ButtonL | ButtonR) {
		t.Error("L|R should be pressed")
	}
	if r.Pressed(ButtonL | ButtonZL) {
		t.Error("L|ZL should not be pressed")
	}
}

func TestLoopback(t *testing.T) {
	l := NewLoopback(2)

	if !l.Configured() || !l.InputReady() {
		t.Fatal("new loopback should be configured and ready")
	}
	if l.OutputReady() {
		t.Fatal("no output queued yet")
	}

	l.QueueOutput(OutputReport{1})
	if !l.OutputReady() {
		t.Fatal("output should be ready after QueueOutput")
	}
	out, err := l.ReadOutput()
	if err != nil || out[0] != 1 {
		t.Fatalf("ReadOutput = %v, %v", out, err)
	}
	if l.Pending() != 0 {
		t.Errorf("pending = %d, want 0", l.Pending())
	}

	for i := 0; i < 3; i++ {
		if err := l.WriteInput(Report{LX: uint8(i)}); err != nil {
			t.Fatalf("WriteInput: %v", err)
		}
	}
	sent := l.Sent()
	if len(sent) != 2 || sent[0].LX != 1 || sent[1].LX != 2 {
		t.Errorf("Sent() = %+v, want last two reports", sent)
	}

	l.SetBusy(true)
	if l.InputReady() {
		t.Error("busy loopback should not be input ready")
	}

	l.SetConfigured(false)
	if err := l.WriteInput(Report{}); err != ErrNotConfigured {
		t.Errorf("WriteInput unconfigured: got %v, want ErrNotConfigured", err)
	}
}
