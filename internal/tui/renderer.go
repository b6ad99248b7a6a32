package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/listkit/internal/source"
	listview "github.com/rshade/listkit/internal/tui/list"
)

// EntryRenderer renders entries as rows wrapped to width (0 disables wrapping).
// Entries with a detail line are two or more rows tall when showDetail is set.
func EntryRenderer(styles Styles, width int, showDetail bool) listview.Renderer[source.Entry] {
	wrap := lipgloss.NewStyle()
	if width > gutterWidth {
		wrap = wrap.Width(width - gutterWidth)
	}

	return func(e source.Entry, _ int) listview.ViewNode {
		var title string
		switch {
		case e.Header:
			title = styles.Header.Render(e.Title)
		case e.Disabled:
			title = styles.Disabled.Render(e.Title)
		default:
			title = styles.Title.Render(e.Title)
		}

		content := title
		if showDetail && e.Detail != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, title, styles.Detail.Render(e.Detail))
		}
		return NewRow(wrap.Render(content))
	}
}
