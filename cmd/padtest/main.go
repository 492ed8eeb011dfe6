package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-padscript/config"
	"go-padscript/debounce"
	"go-padscript/hid"
	padmidi "go-padscript/midi"
	"go-padscript/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		listPorts()
	case "scripts":
		listScripts()
	case "dump":
		err = dump(os.Args[2:])
	case "trigger":
		err = watchTrigger()
	default:
		usage()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Pad script test tools")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                     - List all MIDI ports")
	fmt.Println("  scripts                  - List built-in scripts")
	fmt.Println("  dump <script> [frames]   - Print report frames for a script")
	fmt.Println("  trigger                  - Print debounced trigger presses from MIDI")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: midi.GetInPorts(), outs: midi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! MIDI backend did not answer.")
	}
}

func listScripts() {
	for _, s := range sequencer.Programs() {
		rot := ""
		if i := sequencer.RotationIndex(s.Name()); i >= 0 {
			rot = fmt.Sprintf("  (rotation %d)", i+1)
		}
		fmt.Printf("%-20s %3d steps %5d frames%s\n", s.Name(), s.Len(), s.Frames(), rot)
		for i := 0; i < s.Len(); i++ {
			st := s.Step(i)
			fmt.Printf("    %-9s x%d\n", st.Input, st.Frames)
		}
	}
}

// dump plays a script against a loopback transport and prints each frame
func dump(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("dump: missing script name")
	}
	script, err := sequencer.ProgramByName(args[0])
	if err != nil {
		return err
	}
	frames := int(script.Frames())
	if len(args) > 1 {
		frames, err = strconv.Atoi(args[1])
		if err != nil || frames < 1 {
			return fmt.Errorf("dump: bad frame count %q", args[1])
		}
	}

	lb := hid.NewLoopback(0)
	mgr := sequencer.NewManager(nil, sequencer.DefaultOptions())
	mgr.SetTransport(lb)
	if err := mgr.Play(script); err != nil {
		return err
	}
	for i := 0; i < frames; i++ {
		mgr.Tick()
	}

	for i, r := range lb.Sent() {
		fmt.Printf("%6d  %s\n", i, r)
	}
	return nil
}

// watchTrigger listens on the configured trigger port and prints each press
// the debounce filter and selector accept
func watchTrigger() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var in drivers.In
	for _, p := range midi.GetInPorts() {
		if padmidi.MatchPort(p.String(), cfg.MIDI.TriggerPort) {
			in = p
			break
		}
	}
	if in == nil {
		return fmt.Errorf("no input port matching %q", cfg.MIDI.TriggerPort)
	}

	ts, err := padmidi.NewTriggerSampler(in.String(), in, cfg.Trigger.Pin, uint8(cfg.Trigger.Note))
	if err != nil {
		return err
	}
	defer ts.Close()

	fmt.Printf("Listening on %s for note %d (Ctrl+C to exit)\n", in.String(), cfg.Trigger.Note)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var filter debounce.Filter
	sel := sequencer.NewSelector(sequencer.Rotation, cfg.Trigger.Pin, cfg.Trigger.ActiveLow)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Playback.FrameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if next, ok := sel.Poll(filter.Sample(ts)); ok {
				fmt.Printf("[%s] press -> %s\n", time.Now().Format("15:04:05.000"), next.Name())
			}
		}
	}
}
