package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"playback":{"frameRate":60},"debug":true}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Playback.FrameRate != 60 || !cfg.Debug {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Trigger.Pin != 3 || !cfg.Trigger.ActiveLow || cfg.MIDI.BridgePort != "padscript" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad json", `{`},
		{"frame rate", `{"playback":{"frameRate":0}}`},
		{"pin", `{"trigger":{"pin":16}}`},
		{"note", `{"trigger":{"note":200}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			os.WriteFile(path, []byte(tt.json), 0644)
			if _, err := LoadFrom(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Playback.BootProgram = "leftDI_airdodge"
	cfg.Trigger.Note = 36
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	back, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *back != *cfg {
		t.Errorf("round trip: got %+v, want %+v", back, cfg)
	}
}
