package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/listkit/internal/config"
	"github.com/rshade/listkit/internal/logging"
	"github.com/rshade/listkit/internal/source"
	listview "github.com/rshade/listkit/internal/tui/list"
)

// Default terminal size used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// chromeHeight is the number of lines reserved below the list (filter and status).
const chromeHeight = 2

// ItemsReloadedMsg carries entries reloaded from disk.
type ItemsReloadedMsg struct {
	Entries []source.Entry
	Err     error
}

// BrowserOptions configures a BrowserModel.
type BrowserOptions struct {
	List config.ListConfig
	Keys config.KeysConfig
}

// NewEntryEngine creates an engine that renders entries into rows and skips
// headers and disabled entries during navigation.
func NewEntryEngine(
	ctx context.Context,
	rows *RowContainer,
	styles Styles,
	width int,
	showDetail bool,
) (*listview.Engine[source.Entry], error) {
	engine, err := listview.NewEngine(
		rows,
		EntryRenderer(styles, width, showDetail),
		listview.WithFocusHost(rows),
		listview.WithLogger(logging.ComponentLogger(*logging.FromContext(ctx), "engine")),
	)
	if err != nil {
		return nil, err
	}
	if err := engine.SetSelectable(ctx, source.Selectable); err != nil {
		return nil, err
	}
	return engine, nil
}

// BrowserModel is the Bubble Tea model for browsing entries.
type BrowserModel struct {
	ctx    context.Context
	logger zerolog.Logger

	engine *listview.Engine[source.Entry]
	rows   *RowContainer

	// all is the unfiltered source of truth
	all []source.Entry

	styles  Styles
	keys    KeyMap
	printer *message.Printer
	filter  textinput.Model

	filtering   bool
	showDetail  bool
	wheelStep   int
	placeholder string

	width  int
	height int

	chosen   *source.Entry
	err      error
	quitting bool
}

// NewBrowserModel creates a browser over entries with the first selectable entry selected.
func NewBrowserModel(ctx context.Context, entries []source.Entry, opts BrowserOptions) (*BrowserModel, error) {
	styles := DefaultStyles()
	rows := NewRowContainer(defaultHeight - chromeHeight)

	engine, err := NewEntryEngine(ctx, rows, styles, defaultWidth, opts.List.ShowDetail)
	if err != nil {
		return nil, err
	}

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter"
	filter.PromptStyle = styles.Prompt

	wheelStep := opts.List.WheelStep
	if wheelStep <= 0 {
		wheelStep = config.DefaultWheelStep
	}

	m := &BrowserModel{
		ctx:         ctx,
		logger:      logging.ComponentLogger(*logging.FromContext(ctx), "browser"),
		engine:      engine,
		rows:        rows,
		all:         entries,
		styles:      styles,
		keys:        NewKeyMap(opts.Keys),
		printer:     message.NewPrinter(language.English),
		filter:      filter,
		showDetail:  opts.List.ShowDetail,
		wheelStep:   wheelStep,
		placeholder: opts.List.Placeholder,
		width:       defaultWidth,
		height:      defaultHeight,
	}

	if err := m.applyFilter(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init initializes the model (Bubble Tea interface).
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages (Bubble Tea interface).
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case ItemsReloadedMsg:
		m.handleReload(msg)
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *BrowserModel) resize(width, height int) {
	widthChanged := width != m.width
	m.width = width
	m.height = height
	m.rows.SetViewportHeight(height - chromeHeight)

	if widthChanged {
		m.setErr(m.engine.SetRenderer(m.ctx, EntryRenderer(m.styles, width, m.showDetail)))
	}
	m.setErr(m.engine.Refill(m.ctx))
}

func (m *BrowserModel) handleReload(msg ItemsReloadedMsg) {
	if msg.Err != nil {
		m.err = msg.Err
		return
	}
	m.all = msg.Entries
	m.err = nil
	m.setErr(m.reloadItems())
}

//nolint:exhaustive // Only wheel presses scroll the list.
func (m *BrowserModel) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.rows.ScrollBy(-m.wheelStep)
	case tea.MouseButtonWheelDown:
		m.rows.ScrollBy(m.wheelStep)
	}
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.navigate(listview.KeyUp)
	case key.Matches(msg, m.keys.Down):
		m.navigate(listview.KeyDown)
	case key.Matches(msg, m.keys.Home):
		m.navigate(listview.KeyHome)
	case key.Matches(msg, m.keys.End):
		m.navigate(listview.KeyEnd)
	case key.Matches(msg, m.keys.PageUp):
		m.rows.ScrollBy(-m.rows.ViewportHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.rows.ScrollBy(m.rows.ViewportHeight())
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Choose):
		if entry, ok := m.engine.SelectedItem(); ok {
			m.chosen = &entry
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

//nolint:exhaustive // Every other key is forwarded to the text input.
func (m *BrowserModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.setErr(m.applyFilter())
		return m, nil
	}

	previous := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != previous {
		m.setErr(m.applyFilter())
	}
	return m, cmd
}

func (m *BrowserModel) navigate(k listview.Key) {
	m.setErr(m.engine.Navigate(m.ctx, k, true))
}

// applyFilter replaces the engine items with the filtered entries and selects the first one.
func (m *BrowserModel) applyFilter() error {
	entries := source.Filter(m.all, m.filter.Value())
	if err := m.engine.SetItems(m.ctx, entries); err != nil {
		return err
	}
	m.engine.ResetSelected()
	if len(entries) == 0 {
		return nil
	}
	return m.engine.Navigate(m.ctx, listview.KeyHome, true)
}

// reloadItems replaces the engine items in place. The engine clamps the
// current selection; Home is used only when nothing was selected.
func (m *BrowserModel) reloadItems() error {
	entries := source.Filter(m.all, m.filter.Value())
	if err := m.engine.SetItems(m.ctx, entries); err != nil {
		return err
	}
	if len(entries) == 0 || m.engine.Selected() != listview.NoSelection {
		return nil
	}
	return m.engine.Navigate(m.ctx, listview.KeyHome, true)
}

func (m *BrowserModel) setErr(err error) {
	if err == nil {
		return
	}
	m.logger.Warn().Err(err).Msg("list operation failed")
	m.err = err
}

// View renders the list, the filter line and the status line (Bubble Tea interface).
func (m *BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.rows.View(m.engine.Selected(), m.width, m.placeholder, m.styles))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *BrowserModel) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render("error: " + m.err.Error())
	}

	position := 0
	if sel := m.engine.Selected(); sel != listview.NoSelection {
		position = sel + 1
	}
	status := m.printer.Sprintf("%d/%d · %d rendered", position, m.engine.ItemCount(), m.engine.NumMaterialized())

	help := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		help = append(help, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return m.styles.Status.Render(status + "  " + strings.Join(help, " · "))
}

// Chosen returns the entry picked with the choose key, if any.
func (m *BrowserModel) Chosen() (source.Entry, bool) {
	if m.chosen == nil {
		return source.Entry{}, false
	}
	return *m.chosen, true
}

// Engine exposes the underlying list engine.
func (m *BrowserModel) Engine() *listview.Engine[source.Entry] {
	return m.engine
}

// Rows exposes the row container.
func (m *BrowserModel) Rows() *RowContainer {
	return m.rows
}
