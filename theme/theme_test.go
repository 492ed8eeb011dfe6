package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.gpl")
	gpl := "GIMP Palette\nName: Test\nColumns: 2\n# comment\n  0   0   0 black\n255 255 255 white\n300 1 1 bad\n"
	if err := os.WriteFile(path, []byte(gpl), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadGPL(path)
	if err != nil {
		t.Fatalf("LoadGPL: %v", err)
	}
	if p.Name != "Test" || len(p.Colors) != 2 {
		t.Fatalf("palette = %+v", p)
	}
	if got := p.Lookup(0.5); got != (RGB{127, 127, 127}) {
		t.Errorf("Lookup(0.5) = %v", got)
	}
	if got := p.Lookup(2); got != (RGB{255, 255, 255}) {
		t.Errorf("Lookup(2) = %v", got)
	}
}

func TestLoadOrDefault(t *testing.T) {
	p, err := LoadOrDefault("")
	if err != nil || p.Name != "padscript" {
		t.Errorf("LoadOrDefault(\"\") = %v, %v", p, err)
	}
	if _, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.gpl")); err == nil {
		t.Error("missing palette should error")
	}
	empty := filepath.Join(t.TempDir(), "empty.gpl")
	os.WriteFile(empty, []byte("GIMP Palette\n"), 0644)
	if _, err := LoadGPL(empty); err == nil {
		t.Error("palette without colors should error")
	}
}

func TestSingleColorPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.gpl")
	os.WriteFile(path, []byte("GIMP Palette\nName: one\n#\n10 20 30 only\n"), 0644)
	p, err := LoadGPL(path)
	if err != nil {
		t.Fatalf("LoadGPL: %v", err)
	}
	for _, norm := range []float64{0, 0.3, 0.5, 1} {
		if got := p.Lookup(norm); got != (RGB{10, 20, 30}) {
			t.Errorf("Lookup(%v) = %v", norm, got)
		}
	}
	th := New(p)
	if got := string(th.Accent()); got != "#0a141e" {
		t.Errorf("Accent() = %s", got)
	}
	th.Muted()
	th.Active()
}

func TestThemeColor(t *testing.T) {
	th := New(&Palette{Colors: []RGB{{0, 0, 0}, {255, 0, 16}}})
	if got := string(th.Color(1)); got != "#ff0010" {
		t.Errorf("Color(1) = %s", got)
	}
}
