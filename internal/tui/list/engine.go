package listview

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// NoSelection is the sentinel index meaning nothing is selected.
const NoSelection = -1

// Key is a navigation key understood by Navigate.
type Key string

// Navigation keys.
const (
	KeyUp   Key = "ArrowUp"
	KeyDown Key = "ArrowDown"
	KeyHome Key = "Home"
	KeyEnd  Key = "End"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger zerolog.Logger
	focus  FocusHost
}

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFocusHost enables focus handoff after navigation and across item replacement.
func WithFocusHost(focus FocusHost) Option {
	return func(o *options) {
		o.focus = focus
	}
}

// Engine is an incremental virtualized list with keyboard selection.
//
// Only items[0:NumMaterialized()] have view nodes. The window grows when the
// viewport needs more content and is clamped when the item list is replaced.
type Engine[T any] struct {
	// items is the externally supplied item sequence
	items []T

	// isSelectable classifies items for navigation
	isSelectable Predicate[T]

	// render turns items into view nodes
	render Renderer[T]

	container Container
	focus     FocusHost
	logger    zerolog.Logger

	// numMaterialized is the count of leading items with view nodes
	numMaterialized int

	// selected is the selected item index or NoSelection
	selected int

	// firstSelectable and lastSelectable are recomputed on every items or predicate change
	firstSelectable int
	lastSelectable  int

	busy              atomic.Bool
	unsubscribeScroll func()

	selectionChanged     hooks[ViewNode]
	renderedItemsChanged hooks[int]
	viewportFilled       hooks[struct{}]
}

// NewEngine creates an empty engine rendering into container.
// Every item is selectable until SetSelectable is called.
func NewEngine[T any](container Container, render Renderer[T], opts ...Option) (*Engine[T], error) {
	if container == nil {
		return nil, ErrNilContainer
	}
	if render == nil {
		return nil, ErrNilRenderer
	}

	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine[T]{
		isSelectable:    func(T) bool { return true },
		render:          render,
		container:       container,
		focus:           o.focus,
		logger:          o.logger,
		selected:        NoSelection,
		firstSelectable: NoSelection,
		lastSelectable:  NoSelection,
	}
	e.unsubscribeScroll = container.OnScroll(e.handleScroll)

	return e, nil
}

// Close releases the scroll subscription. The engine must not be used afterwards.
func (e *Engine[T]) Close() {
	if e.unsubscribeScroll != nil {
		e.unsubscribeScroll()
		e.unsubscribeScroll = nil
	}
}

// enter marks the engine busy for the duration of a public operation.
func (e *Engine[T]) enter() (func(), error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	return func() { e.busy.Store(false) }, nil
}

// SetItems replaces the item sequence and refills the viewport.
func (e *Engine[T]) SetItems(ctx context.Context, items []T) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	previousLength := len(e.items)
	e.items = items
	return e.itemsChanged(ctx, previousLength)
}

// SetSelectable replaces the selectable predicate. A nil predicate makes every item selectable.
func (e *Engine[T]) SetSelectable(ctx context.Context, isSelectable Predicate[T]) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if isSelectable == nil {
		isSelectable = func(T) bool { return true }
	}
	e.isSelectable = isSelectable
	e.recomputeSelectable()
	return e.repairSelection(ctx)
}

// SetRenderer replaces the renderer and re-renders the materialized window.
func (e *Engine[T]) SetRenderer(ctx context.Context, render Renderer[T]) error {
	if render == nil {
		return ErrNilRenderer
	}

	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	e.render = render
	if err := e.rematerialize(ctx); err != nil {
		return err
	}
	e.announceRebuiltSelection()
	e.updateHeight()
	return nil
}

// EnsureAllMaterialized creates view nodes for every item.
func (e *Engine[T]) EnsureAllMaterialized(ctx context.Context) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	return e.ensureAllMaterialized(ctx)
}

// Refill materializes enough items to cover the current viewport and resizes
// the container. Hosts call it after the viewport size changes.
func (e *Engine[T]) Refill(ctx context.Context) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if _, err := e.fillToHeight(ctx, e.container.ScrollTop()+e.container.ViewportHeight()); err != nil {
		return err
	}
	e.updateHeight()
	return nil
}

// Items returns the current item sequence.
func (e *Engine[T]) Items() []T {
	return e.items
}

// ItemCount returns the total number of items.
func (e *Engine[T]) ItemCount() int {
	return len(e.items)
}

// NumMaterialized returns the number of leading items that have view nodes.
func (e *Engine[T]) NumMaterialized() int {
	return e.numMaterialized
}

// Selected returns the selected index or NoSelection.
func (e *Engine[T]) Selected() int {
	return e.selected
}

// SelectedItem returns the selected item, if any.
func (e *Engine[T]) SelectedItem() (T, bool) {
	var zero T
	if e.selected == NoSelection || e.selected >= len(e.items) {
		return zero, false
	}
	return e.items[e.selected], true
}

// FirstSelectableIndex returns the first selectable index or NoSelection.
func (e *Engine[T]) FirstSelectableIndex() int {
	return e.firstSelectable
}

// LastSelectableIndex returns the last selectable index or NoSelection.
func (e *Engine[T]) LastSelectableIndex() int {
	return e.lastSelectable
}
