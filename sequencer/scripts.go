package sequencer

import (
	"fmt"
	"strings"
)

// Controller pairing: wait for the console, register the pad with
// L+R three times, confirm with A three times, then settle.
var SetupScript = MustScript("setup",
	Press(Nothing, 500),
	Press(Triggers, 2),
	Press(Nothing, 98),
	Press(Triggers, 2),
	Press(Nothing, 48),
	Press(Triggers, 2),
	Press(Nothing, 48),
	Press(A, 2),
	Press(Nothing, 48),
	Press(A, 2),
	Press(Nothing, 48),
	Press(A, 2),
	Press(Nothing, 298),
)

var RandomDIAirdodge = MustScript("randomDI_airdodge",
	Press(Left, 1),
	Press(Right, 1),
	Press(Bumpers, 1),
)

var LeftDIAirdodge = MustScript("leftDI_airdodge",
	Press(Left, 1),
	Press(Bumpers, 1),
)

var RightDIAirdodge = MustScript("rightDI_airdodge",
	Press(Right, 1),
	Press(Bumpers, 1),
)

// Rotation is the fixed order the trigger cycles through.
var Rotation = []Script{
	RandomDIAirdodge,
	LeftDIAirdodge,
	RightDIAirdodge,
}

// Programs lists every known script, setup first.
func Programs() []Script {
	return append([]Script{SetupScript}, Rotation...)
}

// ProgramByName looks up a script by name (case-insensitive).
func ProgramByName(name string) (Script, error) {
	for _, s := range Programs() {
		if strings.EqualFold(s.Name(), name) {
			return s, nil
		}
	}
	return Script{}, fmt.Errorf("%w: %q", ErrUnknownProgram, name)
}

// RotationIndex returns the position of the named script in Rotation, or -1.
func RotationIndex(name string) int {
	for i, s := range Rotation {
		if strings.EqualFold(s.Name(), name) {
			return i
		}
	}
	return -1
}
