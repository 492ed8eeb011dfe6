package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-padscript/hid"
)

// stickCells is the width/height of a rendered stick
const stickCells = 5

// PadStyle holds the colors used to draw a report
type PadStyle struct {
	On  lipgloss.Color
	Off lipgloss.Color
}

type buttonLabel struct {
	mask  uint16
	label string
}

var buttonLabels = []buttonLabel{
	{hid.ButtonY, "Y"},
	{hid.ButtonB, "B"},
	{hid.ButtonA, "A"},
	{hid.ButtonX, "X"},
	{hid.ButtonL, "L"},
	{hid.ButtonR, "R"},
	{hid.ButtonZL, "ZL"},
	{hid.ButtonZR, "ZR"},
	{hid.ButtonMinus, "-"},
	{hid.ButtonPlus, "+"},
	{hid.ButtonLClick, "LS"},
	{hid.ButtonRClick, "RS"},
	{hid.ButtonHome, "H"},
	{hid.ButtonCapture, "C"},
}

var hatNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW", "-"}

// stickCell maps an axis value onto 0..stickCells-1
func stickCell(v uint8) int {
	return int(v) * (stickCells - 1) / 255
}

// RenderStick draws one stick as a small grid with the position marked
func RenderStick(x, y uint8, st PadStyle) string {
	on := lipgloss.NewStyle().Foreground(st.On)
	off := lipgloss.NewStyle().Foreground(st.Off)
	cx, cy := stickCell(x), stickCell(y)

	lines := make([]string, stickCells)
	for row := 0; row < stickCells; row++ {
		var line strings.Builder
		for col := 0; col < stickCells; col++ {
			if col > 0 {
				line.WriteString(" ")
			}
			if row == cy && col == cx {
				line.WriteString(on.Render("◆"))
			} else {
				line.WriteString(off.Render("·"))
			}
		}
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

// RenderButtons draws every button label, lit when held
func RenderButtons(mask uint16, st PadStyle) string {
	on := lipgloss.NewStyle().Foreground(st.On).Bold(true)
	off := lipgloss.NewStyle().Foreground(st.Off)
	parts := make([]string, len(buttonLabels))
	for i, b := range buttonLabels {
		if mask&b.mask != 0 {
			parts[i] = on.Render(b.label)
		} else {
			parts[i] = off.Render(b.label)
		}
	}
	return strings.Join(parts, " ")
}

// HatName returns a compass name for a hat value
func HatName(hat uint8) string {
	if int(hat) < len(hatNames) {
		return hatNames[hat]
	}
	return "?"
}

// RenderReport draws both sticks side by side with the hat and buttons below
func RenderReport(r hid.Report, st PadStyle) string {
	sticks := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderStick(r.LX, r.LY, st),
		"    ",
		RenderStick(r.RX, r.RY, st),
	)
	info := fmt.Sprintf("hat %-2s  %s", HatName(r.Hat), r)
	return strings.Join([]string{sticks, RenderButtons(r.Buttons, st), info}, "\n")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
