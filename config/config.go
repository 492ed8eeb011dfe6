package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// TriggerConfig describes the program-select button
type TriggerConfig struct {
	Pin       int  `json:"pin"`       // stable bit 0-15 (0-7 port B, 8-15 port D)
	ActiveLow bool `json:"activeLow"` // pressed reads low (pull-up wiring)
	Note      int  `json:"note"`      // MIDI note that presses the pin
}

// MIDIConfig names the ports used by the MIDI bridge and trigger
type MIDIConfig struct {
	BridgePort  string `json:"bridgePort,omitempty"`  // port carrying HID reports as SysEx
	TriggerPort string `json:"triggerPort,omitempty"` // port whose notes drive the trigger pin
	PollSeconds int    `json:"pollSeconds,omitempty"`
}

// PlaybackConfig controls what plays at boot
type PlaybackConfig struct {
	FrameRate   int    `json:"frameRate"`
	SetupLoops  uint32 `json:"setupLoops"` // 0 skips the pairing script
	BootProgram string `json:"bootProgram,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // GIMP .gpl file, empty = built-in
}

// Config is the main configuration structure
type Config struct {
	Playback PlaybackConfig `json:"playback"`
	Trigger  TriggerConfig  `json:"trigger"`
	MIDI     MIDIConfig     `json:"midi"`
	UI       UIConfig       `json:"ui,omitempty"`
	Debug    bool           `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Playback: PlaybackConfig{
			FrameRate:   125,
			SetupLoops:  1,
			BootProgram: "randomDI_airdodge",
		},
		Trigger: TriggerConfig{
			Pin:       3,
			ActiveLow: true,
			Note:      11,
		},
		MIDI: MIDIConfig{
			BridgePort:  "padscript",
			TriggerPort: "launchpad",
			PollSeconds: 1,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-padscript"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Missing files yield defaults; fields
// absent from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the player cannot run with
func (c *Config) Validate() error {
	if c.Playback.FrameRate <= 0 || c.Playback.FrameRate > 1000 {
		return errors.New("config: frameRate must be 1-1000")
	}
	if c.Trigger.Pin < 0 || c.Trigger.Pin > 15 {
		return errors.New("config: trigger pin must be 0-15")
	}
	if c.Trigger.Note < 0 || c.Trigger.Note > 127 {
		return errors.New("config: trigger note must be 0-127")
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
