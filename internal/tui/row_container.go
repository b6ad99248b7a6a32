package tui

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	listview "github.com/rshade/listkit/internal/tui/list"
)

// gutterWidth is the width of the selection marker column.
const gutterWidth = 2

const (
	selectedGutter = "▌ "
	plainGutter    = "  "
)

// Row is a materialized list entry: pre-rendered content and its line split.
type Row struct {
	content string
	lines   []string
}

// NewRow creates a row from rendered content.
func NewRow(content string) *Row {
	return &Row{content: content, lines: strings.Split(content, "\n")}
}

// Content returns the rendered content.
func (r *Row) Content() string {
	return r.content
}

// Height returns the number of terminal lines the row occupies.
func (r *Row) Height() int {
	return lipgloss.Height(r.content)
}

// RowContainer lays rows out top to bottom in a scrollable terminal viewport.
// It implements listview.Container and listview.FocusHost; nodes must be *Row.
type RowContainer struct {
	rows []*Row

	// tops holds the top edge of each row
	tops []int

	scrollTop     int
	viewport      int
	contentHeight int

	listeners    map[int]func()
	nextListener int

	focused *Row
}

// NewRowContainer creates an empty container with the given viewport height.
func NewRowContainer(viewport int) *RowContainer {
	return &RowContainer{
		viewport:  max(0, viewport),
		listeners: make(map[int]func()),
	}
}

// Append adds a row after the last one.
func (c *RowContainer) Append(node listview.ViewNode) {
	row := node.(*Row)
	c.tops = append(c.tops, c.realBottom())
	c.rows = append(c.rows, row)
}

// Truncate removes every row at index n and above.
func (c *RowContainer) Truncate(n int) {
	if n >= len(c.rows) {
		return
	}
	for _, r := range c.rows[n:] {
		if r == c.focused {
			c.focused = nil
		}
	}
	c.rows = c.rows[:n]
	c.tops = c.tops[:n]
}

// Len returns the number of rows.
func (c *RowContainer) Len() int {
	return len(c.rows)
}

// Node returns the row at index.
func (c *RowContainer) Node(index int) listview.ViewNode {
	return c.rows[index]
}

// Row returns the row at index.
func (c *RowContainer) Row(index int) *Row {
	return c.rows[index]
}

// Bounds returns the top and bottom line of the row at index.
func (c *RowContainer) Bounds(index int) (int, int) {
	top := c.tops[index]
	return top, top + c.rows[index].Height()
}

// ScrollTop returns the first visible line.
func (c *RowContainer) ScrollTop() int {
	return c.scrollTop
}

// ViewportHeight returns the number of visible lines.
func (c *RowContainer) ViewportHeight() int {
	return c.viewport
}

// SetViewportHeight resizes the viewport and re-clamps the scroll offset.
func (c *RowContainer) SetViewportHeight(height int) {
	c.viewport = max(0, height)
	c.ScrollTo(c.scrollTop)
}

// ContentHeight returns the virtual scroll extent set by the engine.
func (c *RowContainer) ContentHeight() int {
	return c.contentHeight
}

// SetContentHeight sets the virtual scroll extent and re-clamps the scroll offset.
func (c *RowContainer) SetContentHeight(height int) {
	c.contentHeight = max(0, height)
	c.ScrollTo(c.scrollTop)
}

// ScrollTo moves the viewport top to offset, clamped to the scrollable range.
// Listeners run synchronously when the offset changes.
func (c *RowContainer) ScrollTo(offset int) {
	offset = max(0, min(offset, c.extent()-c.viewport))
	if offset == c.scrollTop {
		return
	}
	c.scrollTop = offset
	c.notify()
}

// ScrollBy moves the viewport by delta lines.
func (c *RowContainer) ScrollBy(delta int) {
	c.ScrollTo(c.scrollTop + delta)
}

// ScrollIntoView scrolls the shortest distance that reveals the row at index.
// Rows taller than the viewport are aligned to the top.
func (c *RowContainer) ScrollIntoView(index int) {
	top, bottom := c.Bounds(index)
	switch {
	case top < c.scrollTop:
		c.ScrollTo(top)
	case bottom > c.scrollTop+c.viewport:
		c.ScrollTo(min(top, bottom-c.viewport))
	}
}

// Commit returns immediately; terminal rows are laid out as they are appended.
func (c *RowContainer) Commit(ctx context.Context) error {
	return ctx.Err()
}

// OnScroll registers fn for scroll offset changes.
func (c *RowContainer) OnScroll(fn func()) func() {
	c.nextListener++
	id := c.nextListener
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

// Focus marks node as holding input focus.
func (c *RowContainer) Focus(node listview.ViewNode) {
	row, _ := node.(*Row)
	c.focused = row
}

// Focused reports whether node holds input focus.
func (c *RowContainer) Focused(node listview.ViewNode) bool {
	row, ok := node.(*Row)
	return ok && row != nil && row == c.focused
}

// View renders the visible lines. The selected row gets a marker gutter and
// lines inside the virtual extent that have no row yet show placeholder.
func (c *RowContainer) View(selected int, width int, placeholder string, styles Styles) string {
	lines := make([]string, 0, c.viewport)
	realBottom := c.realBottom()
	extent := c.extent()

	for y := c.scrollTop; y < c.scrollTop+c.viewport; y++ {
		var line string
		switch {
		case y < realBottom:
			i := c.rowAt(y)
			text := c.rows[i].lines[y-c.tops[i]]
			if i == selected {
				line = styles.Selected.Render(selectedGutter) + text
			} else {
				line = plainGutter + text
			}
		case y < extent:
			line = plainGutter + styles.Placeholder.Render(placeholder)
		}
		if width > 0 {
			line = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// rowAt returns the index of the row containing line y. y must be below realBottom.
func (c *RowContainer) rowAt(y int) int {
	return sort.Search(len(c.tops), func(i int) bool { return c.tops[i] > y }) - 1
}

func (c *RowContainer) realBottom() int {
	n := len(c.rows)
	if n == 0 {
		return 0
	}
	return c.tops[n-1] + c.rows[n-1].Height()
}

func (c *RowContainer) extent() int {
	return max(c.contentHeight, c.realBottom())
}

func (c *RowContainer) notify() {
	for _, fn := range c.listeners {
		fn()
	}
}
