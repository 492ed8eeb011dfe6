package sequencer

import "go-padscript/hid"

// Completion is called once when a counted sequencer finishes its last pass.
// It may restart seq with a new script.
type Completion func(seq *Sequencer, arg any)

// LoopPolicy decides what happens when playback wraps past the last step.
type LoopPolicy interface {
	isLoopPolicy()
}

// Forever loops the script indefinitely.
type Forever struct{}

// Counted loops Remaining more times, then calls OnComplete once.
type Counted struct {
	Remaining  uint32
	OnComplete Completion
	Arg        any

	done bool
}

func (Forever) isLoopPolicy()  {}
func (*Counted) isLoopPolicy() {}

// Done reports whether the completion has already fired.
func (c *Counted) Done() bool { return c.done }

// Sequencer plays a script one frame at a time.
//
// Invariants between calls: cursor < script.Len() and
// elapsed < script.Step(cursor).Frames.
type Sequencer struct {
	script  Script
	cursor  int
	elapsed uint32
	policy  LoopPolicy
}

// NewForever returns a sequencer looping script forever.
func NewForever(script Script) (*Sequencer, error) {
	s := &Sequencer{}
	if err := s.StartForever(script); err != nil {
		return nil, err
	}
	return s, nil
}

// NewCounted returns a sequencer that plays script times passes.
func NewCounted(script Script, times uint32, onComplete Completion, arg any) (*Sequencer, error) {
	s := &Sequencer{}
	if err := s.StartCounted(script, times, onComplete, arg); err != nil {
		return nil, err
	}
	return s, nil
}

// StartForever restarts playback of script from its first frame, looping
// forever. On error the sequencer is left unchanged.
func (s *Sequencer) StartForever(script Script) error {
	if script.Len() == 0 {
		return ErrEmptyScript
	}
	s.reset(script, Forever{})
	return nil
}

// StartCounted restarts playback of script for times passes, then calls
// onComplete. onComplete may be nil. On error the sequencer is left unchanged.
func (s *Sequencer) StartCounted(script Script, times uint32, onComplete Completion, arg any) error {
	if script.Len() == 0 {
		return ErrEmptyScript
	}
	if times == 0 {
		return ErrZeroCount
	}
	s.reset(script, &Counted{Remaining: times, OnComplete: onComplete, Arg: arg})
	return nil
}

func (s *Sequencer) reset(script Script, p LoopPolicy) {
	s.script = script
	s.cursor = 0
	s.elapsed = 0
	s.policy = p
}

// Script returns the script being played.
func (s *Sequencer) Script() Script { return s.script }

// Policy returns the active loop policy.
func (s *Sequencer) Policy() LoopPolicy { return s.policy }

// Playhead returns a snapshot of the current position.
func (s *Sequencer) Playhead() Playhead {
	p := Playhead{
		Script:  s.script.Name(),
		Cursor:  s.cursor,
		Elapsed: s.elapsed,
	}
	if c, ok := s.policy.(*Counted); ok {
		p.Counted = true
		p.Remaining = c.Remaining
		p.Done = c.done
	}
	return p
}

// Current returns the effective input of the current step.
func (s *Sequencer) Current() Input {
	if s.script.Len() == 0 {
		return Nothing
	}
	return s.script.Step(s.cursor).Effective(s.Playhead())
}

// NextFrame builds the report for the current frame and advances the clock
// by one frame. A sequencer that was never started yields neutral reports.
func (s *Sequencer) NextFrame() hid.Report {
	r := hid.NeutralReport()
	if s.script.Len() == 0 {
		return r
	}

	step := s.script.Step(s.cursor)
	step.Effective(s.Playhead()).Apply(&r)

	s.advance(step)
	return r
}

func (s *Sequencer) advance(step Step) {
	s.elapsed++
	if s.elapsed < step.Frames {
		return
	}
	s.elapsed = 0
	s.cursor++
	if s.cursor < s.script.Len() {
		return
	}
	s.cursor = 0

	c, ok := s.policy.(*Counted)
	if !ok || c.done {
		return
	}
	c.Remaining--
	if c.Remaining > 0 {
		return
	}
	c.done = true
	if c.OnComplete != nil {
		c.OnComplete(s, c.Arg)
	}
}
