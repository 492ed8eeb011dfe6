package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"go-padscript/hid"
)

var testStyle = PadStyle{On: lipgloss.Color("#ffffff"), Off: lipgloss.Color("#333333")}

func TestStickCell(t *testing.T) {
	tests := []struct {
		v    uint8
		cell int
	}{
		{hid.StickMin, 0},
		{hid.StickCenter, 2},
		{hid.StickMax, 4},
	}
	for _, tt := range tests {
		if got := stickCell(tt.v); got != tt.cell {
			t.Errorf("stickCell(%d) = %d, want %d", tt.v, got, tt.cell)
		}
	}
}

func TestRenderStickMarksPosition(t *testing.T) {
	out := RenderStick(hid.StickMin, hid.StickMax, testStyle)
	lines := strings.Split(out, "\n")
	if len(lines) != stickCells {
		t.Fatalf("got %d lines, want %d", len(lines), stickCells)
	}
	if strings.Count(out, "◆") != 1 {
		t.Fatalf("want exactly one marker:\n%s", out)
	}
	if !strings.Contains(lines[stickCells-1], "◆") {
		t.Errorf("marker not on bottom row:\n%s", out)
	}
}

func TestRenderReport(t *testing.T) {
	r := hid.NeutralReport()
	r.Buttons = hid.ButtonZL | hid.ButtonZR
	out := RenderReport(r, testStyle)
	for _, want := range []string{"ZL", "ZR", "hat -", "c0 00 08 80 80 80 80 00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if HatName(hid.HatLeft) != "W" || HatName(42) != "?" {
		t.Error("HatName mismatch")
	}
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{{Title: "Keys", Keys: []KeyBinding{{Key: "q", Desc: "quit"}}}})
	if !strings.Contains(out, "Keys") || !strings.Contains(out, "quit") {
		t.Errorf("unexpected help:\n%s", out)
	}
}
