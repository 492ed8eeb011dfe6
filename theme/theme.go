package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	ButtonOn  rune // ● held
	ButtonOff rune // ○ released
	StepNow   rune // ▶ current program
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			ButtonOn:  '●',
			ButtonOff: '○',
			StepNow:   '▶',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleMuted   = 0.25
	RoleFG      = 0.375
	RoleAccent  = 0.5
	RoleActive  = 0.625
	RoleWarning = 0.875
)

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	c := t.Palette.Lookup(norm)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
