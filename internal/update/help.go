package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.contextBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	k := m.Keys
	return views.RenderHelpPanel(views.HelpPanelData{
		Context:  string(m.Mode),
		Bindings: plain,
		HelpView: m.helpModel.FullHelpView([][]key.Binding{
			{k.Add, k.Up, k.Down, k.Toggle, k.Delete},
			{k.Open, k.Drag, k.MoveUp, k.MoveDown},
			{k.Filter, k.All, k.Active, k.Done},
			{k.Theme, k.Palette, k.Help, k.Quit},
		}),
	})
}

func (m Model) shortHelp() string {
	k := m.Keys
	return m.helpModel.View(helpKeyMap{
		short: []key.Binding{k.Add, k.Toggle, k.Delete, k.Open, k.Drag, k.Filter, k.Theme, k.Palette, k.Help, k.Quit},
	})
}

func (m Model) contextBindings() []KeyBinding {
	switch m.Mode {
	case ModeAdd:
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
			{Key: "esc", Action: "back to list"},
		}
	case ModeDrag:
		return []KeyBinding{
			{Key: "j/k", Action: "choose position"},
			{Key: "enter", Action: "drop"},
			{Key: "esc", Action: "cancel move"},
		}
	case ModeEditor:
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next/previous field"},
			{Key: "←/→", Action: "change priority"},
			{Key: "tab", Action: "accept label suggestion"},
			{Key: "ctrl+n", Action: "add subtask"},
			{Key: "↑/↓", Action: "select subtask"},
			{Key: "ctrl+t", Action: "toggle subtask"},
			{Key: "ctrl+d", Action: "delete subtask"},
			{Key: "enter", Action: "add comment"},
			{Key: "ctrl+s", Action: "save"},
			{Key: "esc", Action: "cancel"},
		}
	default:
		out := make([]KeyBinding, 0, len(commands.Types))
		for _, t := range commands.Types {
			out = append(out, KeyBinding{Key: "/" + string(t), Action: "palette command"})
		}
		return out
	}
}
