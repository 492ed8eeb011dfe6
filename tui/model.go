package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-padscript/debounce"
	"go-padscript/debug"
	"go-padscript/hid"
	"go-padscript/midi"
	"go-padscript/sequencer"
	"go-padscript/theme"
	"go-padscript/widgets"
)

type Model struct {
	Manager   *sequencer.Manager
	DeviceMgr *midi.DeviceManager // nil when running without MIDI
	Theme     *theme.Theme

	pins       *debounce.ManualSampler // keyboard trigger, used when no MIDI trigger is attached
	fallback   hid.Transport           // used when no bridge is attached
	setupLoops uint32

	bridgeID  string
	triggerID string
	quitting  bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

// NewModel builds the monitor. pins and fallback are the keyboard trigger and
// transport used while no MIDI device provides them.
func NewModel(manager *sequencer.Manager, deviceMgr *midi.DeviceManager, th *theme.Theme,
	pins *debounce.ManualSampler, fallback hid.Transport, setupLoops uint32) Model {
	return Model{
		Manager:    manager,
		DeviceMgr:  deviceMgr,
		Theme:      th,
		pins:       pins,
		fallback:   fallback,
		setupLoops: setupLoops,
	}
}

func ListenForUpdates(manager *sequencer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	if deviceMgr == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Manager),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "space":
			if m.pins != nil && m.triggerID == "" {
				m.pins.Toggle(m.Manager.TriggerPin())
			}

		case "n":
			m.Manager.Next()

		case "r":
			if err := m.Manager.Boot(m.setupLoops); err != nil {
				debug.Log("tui", "reboot: %v", err)
			}

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(msg.String()[0] - '1')
			if idx < len(sequencer.Rotation) {
				m.Manager.SelectProgram(idx)
				if err := m.Manager.Play(sequencer.Rotation[idx]); err != nil {
					debug.Log("tui", "play %s: %v", sequencer.Rotation[idx].Name(), err)
				}
			}
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)

	case DeviceEventMsg:
		m.handleDevice(midi.DeviceEvent(msg))
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m *Model) handleDevice(event midi.DeviceEvent) {
	switch {
	case event.Type == midi.DeviceConnected && event.Kind == midi.KindBridge:
		m.bridgeID = event.ID
		if event.Bridge != nil {
			m.Manager.SetTransport(event.Bridge)
		}
	case event.Type == midi.DeviceDisconnected && event.Kind == midi.KindBridge:
		if m.bridgeID == event.ID {
			m.bridgeID = ""
			m.Manager.SetTransport(m.fallback)
		}
	case event.Type == midi.DeviceConnected && event.Kind == midi.KindTrigger:
		m.triggerID = event.ID
		if event.Trigger != nil {
			m.Manager.SetSampler(event.Trigger)
		}
	case event.Type == midi.DeviceDisconnected && event.Kind == midi.KindTrigger:
		if m.triggerID == event.ID {
			m.triggerID = ""
			m.Manager.SetSampler(m.pins)
		}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Manager.Status()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	activeStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())

	link := warnStyle.Render("offline")
	if st.Configured {
		link = activeStyle.Render("configured")
	}
	header := headerStyle.Render(fmt.Sprintf("go-padscript  %dHz", m.Manager.FrameRate())) + "  " + link

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	// Rotation
	for i, name := range m.Manager.RotationNames() {
		marker := " "
		style := dimStyle
		if i == st.Program {
			marker = string(m.Theme.Symbols.StepNow)
			style = activeStyle
		}
		out.WriteString(style.Render(fmt.Sprintf(" %s %d %s", marker, i+1, name)))
		out.WriteString("\n")
	}
	out.WriteString("\n")

	// Playback
	policy := "forever"
	if st.Playhead.Counted {
		policy = fmt.Sprintf("%d left", st.Playhead.Remaining)
		if st.Playhead.Done {
			policy = "done"
		}
	}
	out.WriteString(fmt.Sprintf("playing %s  step %d  frame %d  [%s]  input %s\n",
		st.Playhead.Script, st.Playhead.Cursor, st.Playhead.Elapsed, policy, st.Input))
	out.WriteString(dimStyle.Render(fmt.Sprintf("sent %d  drained %d  swaps %d  errors %d",
		st.Frames, st.Drained, st.Swaps, st.Errors)))
	out.WriteString("\n\n")

	// Last report
	out.WriteString(widgets.RenderReport(st.Last, widgets.PadStyle{On: m.Theme.Active(), Off: m.Theme.Muted()}))
	out.WriteString("\n\n")

	// Inputs
	trigger := string(m.Theme.Symbols.ButtonOff)
	if st.Trigger {
		trigger = activeStyle.Render(string(m.Theme.Symbols.ButtonOn))
	}
	source := "keyboard"
	if m.triggerID != "" {
		source = m.triggerID
	}
	bridge := "loopback"
	if m.bridgeID != "" {
		bridge = m.bridgeID
	}
	out.WriteString(fmt.Sprintf("trigger %s (%s)  pins %016b  out %s\n\n", trigger, source, st.Stable, bridge))

	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "space", Desc: "toggle trigger button"},
			{Key: "n", Desc: "next program"},
			{Key: "1-3", Desc: "play program"},
			{Key: "r", Desc: "rerun setup"},
			{Key: "q", Desc: "quit"},
		}},
	})))

	return out.String()
}
