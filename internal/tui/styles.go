package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorHeader    = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#A79BFF"} //nolint:gochecknoglobals // palette
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"} //nolint:gochecknoglobals // palette
	ColorSelected  = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E1E"} //nolint:gochecknoglobals // palette
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#2F80ED", Dark: "#7FB8FF"} //nolint:gochecknoglobals // palette
	ColorError     = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF6B6B"} //nolint:gochecknoglobals // palette
)

// Styles groups the lipgloss styles used by the browser.
type Styles struct {
	Title       lipgloss.Style
	Detail      lipgloss.Style
	Header      lipgloss.Style
	Disabled    lipgloss.Style
	Selected    lipgloss.Style
	Placeholder lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Prompt      lipgloss.Style
}

// DefaultStyles returns the default browser styles.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle(),
		Detail:      lipgloss.NewStyle().Foreground(ColorMuted).PaddingLeft(2),
		Header:      lipgloss.NewStyle().Foreground(ColorHeader).Bold(true),
		Disabled:    lipgloss.NewStyle().Faint(true),
		Selected:    lipgloss.NewStyle().Foreground(ColorSelected).Background(ColorHighlight),
		Placeholder: lipgloss.NewStyle().Foreground(ColorMuted),
		Status:      lipgloss.NewStyle().Foreground(ColorMuted),
		Error:       lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Prompt:      lipgloss.NewStyle().Foreground(ColorHighlight),
	}
}
