package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/rshade/listkit/internal/config"
)

// KeyMap holds the browser key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Filter   key.Binding
	Choose   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings, including vim-style j/k/g/G.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "scroll down")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Choose:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// NewKeyMap applies configured key names on top of the defaults.
func NewKeyMap(cfg config.KeysConfig) KeyMap {
	km := DefaultKeyMap()
	override(&km.Up, cfg.Up)
	override(&km.Down, cfg.Down)
	override(&km.Home, cfg.Home)
	override(&km.End, cfg.End)
	override(&km.PageUp, cfg.PageUp)
	override(&km.PageDown, cfg.PageDown)
	override(&km.Filter, cfg.Filter)
	override(&km.Choose, cfg.Choose)
	override(&km.Quit, cfg.Quit)
	return km
}

func override(b *key.Binding, keys []string) {
	if len(keys) == 0 {
		return
	}
	b.SetKeys(keys...)
	b.SetHelp(keys[0], b.Help().Desc)
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Choose, k.Quit}
}
