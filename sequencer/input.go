package sequencer

import "go-padscript/hid"

// Input is a logical controller action, independent of report encoding.
type Input uint8

const (
	Nothing Input = iota
	Up
	Down
	Left
	Right
	A
	B
	R
	Throw    // stick up + R
	Triggers // L + R
	Bumpers  // ZL + ZR
	Generic  // resolved at playback time
)

var inputNames = [...]string{
	Nothing:  "NOTHING",
	Up:       "UP",
	Down:     "DOWN",
	Left:     "LEFT",
	Right:    "RIGHT",
	A:        "A",
	B:        "B",
	R:        "R",
	Throw:    "THROW",
	Triggers: "TRIGGERS",
	Bumpers:  "BUMPERS",
	Generic:  "GENERIC",
}

func (in Input) String() string {
	if int(in) < len(inputNames) {
		return inputNames[in]
	}
	return "UNKNOWN"
}

// Apply writes the input's effect onto r. Nothing, Generic and unknown values
// leave r untouched.
func (in Input) Apply(r *hid.Report) {
	switch in {
	case Up:
		r.LY = hid.StickMin
	case Down:
		r.LY = hid.StickMax
	case Left:
		r.LX = hid.StickMin
	case Right:
		r.LX = hid.StickMax
	case A:
		r.Buttons |= hid.ButtonA
	case B:
		r.Buttons |= hid.ButtonB
	case R:
		r.Buttons |= hid.ButtonR
	case Throw:
		r.LY = hid.StickMin
		r.Buttons |= hid.ButtonR
	case Triggers:
		r.Buttons |= hid.ButtonL | hid.ButtonR
	case Bumpers:
		r.Buttons |= hid.ButtonZL | hid.ButtonZR
	}
}
