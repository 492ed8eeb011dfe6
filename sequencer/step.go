package sequencer

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyScript    = errors.New("script has no steps")
	ErrZeroCount      = errors.New("loop count must be at least 1")
	ErrUnknownProgram = errors.New("unknown program")
)

// Playhead is a read-only snapshot of a sequencer's position, handed to
// resolvers and the UI.
type Playhead struct {
	Script    string
	Cursor    int
	Elapsed   uint32
	Counted   bool
	Remaining uint32
	Done      bool
}

// Resolver computes the effective input of a Generic step at playback time.
type Resolver func(pos Playhead, arg any) Input

// Step holds one input for Frames consecutive frames.
type Step struct {
	Input  Input
	Frames uint32

	resolve Resolver
	arg     any
}

// Press builds a fixed step.
func Press(in Input, frames uint32) Step {
	return Step{Input: in, Frames: frames}
}

// Dynamic builds a Generic step whose input is chosen by fn each frame.
func Dynamic(frames uint32, fn Resolver, arg any) Step {
	return Step{Input: Generic, Frames: frames, resolve: fn, arg: arg}
}

// Effective returns the input this step produces at pos.
func (s Step) Effective(pos Playhead) Input {
	in := s.Input
	if in == Generic {
		if s.resolve == nil {
			return Nothing
		}
		in = s.resolve(pos, s.arg)
	}
	// Resolvers can't chain or invent inputs
	if in >= Generic {
		return Nothing
	}
	return in
}

// Script is a named, non-empty, immutable list of steps.
type Script struct {
	name  string
	steps []Step
}

// NewScript validates and builds a script. The steps slice is copied.
func NewScript(name string, steps ...Step) (Script, error) {
	if len(steps) == 0 {
		return Script{}, fmt.Errorf("script %q: %w", name, ErrEmptyScript)
	}
	for i, s := range steps {
		if s.Frames == 0 {
			return Script{}, fmt.Errorf("script %q step %d: zero duration", name, i)
		}
		if s.Input == Generic && s.resolve == nil {
			return Script{}, fmt.Errorf("script %q step %d: generic step without resolver", name, i)
		}
	}
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return Script{name: name, steps: cp}, nil
}

// MustScript is NewScript for static tables; it panics on invalid input.
func MustScript(name string, steps ...Step) Script {
	s, err := NewScript(name, steps...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Script) Name() string { return s.name }
func (s Script) Len() int     { return len(s.steps) }

// Step returns step i. i must be in [0, Len()).
func (s Script) Step(i int) Step { return s.steps[i] }

// Frames returns the total number of frames in one pass.
func (s Script) Frames() uint64 {
	var n uint64
	for _, st := range s.steps {
		n += uint64(st.Frames)
	}
	return n
}
