package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme         Theme
	Header        string
	Body          string
	Overlay       string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Notification  string
}

func RenderApp(data AppData) string {
	th := data.Theme
	lines := []string{th.Header.Render(data.Header), data.Body}
	if data.Overlay != "" {
		lines = append(lines, th.Panel.Render(data.Overlay))
	}
	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, th.Error.Render("error: "+data.StatusLine))
		} else {
			lines = append(lines, th.Status.Render(data.StatusLine))
		}
	}
	if data.Notification != "" {
		lines = append(lines, data.Notification)
	}
	if data.Footer != "" {
		lines = append(lines, th.Footer.Render(data.Footer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderMarkdown renders details text for the preview pane. Rendering
// failures fall back to the raw text.
func RenderMarkdown(md string, dark bool, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
