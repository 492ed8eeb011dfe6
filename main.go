package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-padscript/config"
	"go-padscript/debounce"
	"go-padscript/debug"
	"go-padscript/hid"
	"go-padscript/midi"
	"go-padscript/sequencer"
	"go-padscript/theme"
	"go-padscript/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}

	palette, err := theme.LoadOrDefault(cfg.UI.Palette)
	if err != nil {
		return fmt.Errorf("load palette: %w", err)
	}
	th := theme.New(palette)

	// Keyboard trigger and loopback stand in until MIDI devices show up
	pins := debounce.NewManualSampler()
	loopback := hid.NewLoopback(256)

	manager := sequencer.NewManager(pins, sequencer.Options{
		FrameRate:  cfg.Playback.FrameRate,
		TriggerPin: cfg.Trigger.Pin,
		ActiveLow:  cfg.Trigger.ActiveLow,
		Rotation:   sequencer.Rotation,
	})
	manager.SetTransport(loopback)

	if name := cfg.Playback.BootProgram; name != "" {
		idx := sequencer.RotationIndex(name)
		if idx < 0 {
			return fmt.Errorf("boot program: %w: %q", sequencer.ErrUnknownProgram, name)
		}
		manager.SelectProgram(idx)
	}
	if err := manager.Boot(cfg.Playback.SetupLoops); err != nil {
		return fmt.Errorf("boot: %w", err)
	}

	deviceMgr := midi.NewDeviceManager(midi.Options{
		BridgePort:  cfg.MIDI.BridgePort,
		TriggerPort: cfg.MIDI.TriggerPort,
		TriggerPin:  cfg.Trigger.Pin,
		TriggerNote: uint8(cfg.Trigger.Note),
		PollRate:    time.Duration(cfg.MIDI.PollSeconds) * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)
	go manager.Run(ctx)

	debug.Log("main", "started: %dHz trigger pin %d setup x%d", cfg.Playback.FrameRate, cfg.Trigger.Pin, cfg.Playback.SetupLoops)

	m := tui.NewModel(manager, deviceMgr, th, pins, loopback, cfg.Playback.SetupLoops)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
