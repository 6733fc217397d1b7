package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/todo/internal/model"
)

// Theme carries every style the screens use. Dark mode only swaps themes.
type Theme struct {
	Dark bool

	Header     lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Panel      lipgloss.Style
	Footer     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Done       lipgloss.Style
	Due        lipgloss.Style
	Chip       lipgloss.Style
	TabActive  lipgloss.Style
	TabIdle    lipgloss.Style
	FieldLabel lipgloss.Style
	FieldFocus lipgloss.Style
	Row        lipgloss.Style
}

var priorityColors = map[model.Priority]lipgloss.Color{
	model.PriorityHigh:   lipgloss.Color("#E53935"),
	model.PriorityMedium: lipgloss.Color("#FB8C00"),
	model.PriorityLow:    lipgloss.Color("#43A047"),
}

// PriorityColor falls back to the Medium colour for unknown values.
func PriorityColor(p model.Priority) lipgloss.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return priorityColors[model.PriorityMedium]
}

func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

func LightTheme() Theme {
	return newTheme(false, lipgloss.Color("#1E88E5"), lipgloss.Color("#212121"), lipgloss.Color("#757575"), lipgloss.Color("#E3F2FD"))
}

func DarkTheme() Theme {
	return newTheme(true, lipgloss.Color("#90CAF9"), lipgloss.Color("#EEEEEE"), lipgloss.Color("#9E9E9E"), lipgloss.Color("#263238"))
}

func newTheme(dark bool, accent, text, muted, highlight lipgloss.Color) Theme {
	return Theme{
		Dark:       dark,
		Header:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("#43A047")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")),
		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Footer:     lipgloss.NewStyle().Foreground(muted),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Selected:   lipgloss.NewStyle().Bold(true).Background(highlight),
		Done:       lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		Due:        lipgloss.NewStyle().Foreground(muted).Italic(true),
		Chip:       lipgloss.NewStyle().Foreground(accent).Padding(0, 1),
		TabActive:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent).Padding(0, 1),
		TabIdle:    lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		FieldLabel: lipgloss.NewStyle().Foreground(muted),
		FieldFocus: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Row:        lipgloss.NewStyle().Foreground(text).Border(lipgloss.ThickBorder(), false, false, false, true).PaddingLeft(1),
	}
}
