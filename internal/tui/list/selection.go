package listview

import (
	"context"
	"fmt"
)

// recomputeSelectable rescans the items for the first and last selectable index.
func (e *Engine[T]) recomputeSelectable() {
	e.firstSelectable = e.nextSelectable(-1)
	e.lastSelectable = e.previousSelectable(len(e.items))
}

// nextSelectable scans strictly forward from from+1. It does not wrap.
func (e *Engine[T]) nextSelectable(from int) int {
	for i := from + 1; i < len(e.items); i++ {
		if e.isSelectable(e.items[i]) {
			return i
		}
	}
	return NoSelection
}

// previousSelectable scans strictly backward from from-1. It does not wrap.
func (e *Engine[T]) previousSelectable(from int) int {
	for i := min(from, len(e.items)) - 1; i >= 0; i-- {
		if e.isSelectable(e.items[i]) {
			return i
		}
	}
	return NoSelection
}

// Navigate moves the selection according to key.
//
// ArrowUp on the first selectable item wraps to the last one and ArrowDown on
// the last wraps to the first. End, and the ArrowUp wrap, materialize every
// item first because the last selectable item may not be realized yet.
// When focusAfter is set, focus moves to the selected node once it is committed.
func (e *Engine[T]) Navigate(ctx context.Context, key Key, focusAfter bool) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	var target int
	if (key == KeyUp && e.selected == e.firstSelectable) || key == KeyEnd {
		if err := e.ensureAllMaterialized(ctx); err != nil {
			return err
		}
		target = e.lastSelectable
	} else {
		switch key {
		case KeyUp:
			target = e.previousSelectable(e.selected)
		case KeyDown:
			target = e.nextSelectable(e.selected)
			if target == NoSelection {
				target = e.nextSelectable(-1)
			}
		case KeyHome:
			target = e.firstSelectable
		default:
			return fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
	}

	if err := e.setSelectedIndex(ctx, target); err != nil {
		return err
	}

	if focusAfter {
		return e.focusSelected(ctx)
	}
	return nil
}

// SetSelected selects index. NoSelection clears the selection.
// Any other index must be a selectable item within the selectable range.
func (e *Engine[T]) SetSelected(ctx context.Context, index int) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if index == NoSelection {
		e.resetSelected()
		return nil
	}
	if index == e.selected {
		return nil
	}
	if err := e.checkSelectableRange(index); err != nil {
		return err
	}
	if !e.isSelectable(e.items[index]) {
		return fmt.Errorf("%w: index %d", ErrNotSelectable, index)
	}

	if err := e.ensureDisplayed(ctx, index+1); err != nil {
		return err
	}
	return e.setSelectedIndex(ctx, index)
}

// ResetSelected clears the selection.
func (e *Engine[T]) ResetSelected() {
	e.resetSelected()
}

// ScrollIndexIntoView materializes index if needed and scrolls its node into view.
func (e *Engine[T]) ScrollIndexIntoView(ctx context.Context, index int) error {
	leave, err := e.enter()
	if err != nil {
		return err
	}
	defer leave()

	if err := e.checkSelectableRange(index); err != nil {
		return err
	}
	if err := e.ensureDisplayed(ctx, index+1); err != nil {
		return err
	}
	e.container.ScrollIntoView(index)
	return nil
}

func (e *Engine[T]) checkSelectableRange(index int) error {
	if e.firstSelectable == NoSelection || index < e.firstSelectable || index > e.lastSelectable {
		return fmt.Errorf("%w: index %d not in [%d, %d]",
			ErrIndexOutOfRange, index, e.firstSelectable, e.lastSelectable)
	}
	return nil
}

func (e *Engine[T]) resetSelected() {
	if e.selected == NoSelection {
		return
	}
	e.selected = NoSelection
	e.selectionChanged.emit(nil)
}

// setSelectedIndex stores index and applies the scroll policy when it changed.
func (e *Engine[T]) setSelectedIndex(ctx context.Context, index int) error {
	if index == e.selected {
		return nil
	}
	if index == NoSelection {
		e.resetSelected()
		return nil
	}

	if err := e.ensureDisplayed(ctx, index+1); err != nil {
		return err
	}
	e.selected = index
	if err := e.scrollForSelection(ctx); err != nil {
		return err
	}

	e.logger.Debug().Int("selected", index).Msg("selection changed")
	e.selectionChanged.emit(e.container.Node(index))
	return nil
}

// scrollForSelection keeps one selectable neighbour of the selected item in view.
func (e *Engine[T]) scrollForSelection(ctx context.Context) error {
	switch e.selected {
	case e.firstSelectable:
		e.container.ScrollTo(0)
		return nil
	case e.lastSelectable:
		e.container.ScrollIntoView(e.selected)
		return nil
	}

	if prev := e.previousSelectable(e.selected); prev != NoSelection {
		if top, _ := e.container.Bounds(prev); top < e.container.ScrollTop() {
			e.container.ScrollIntoView(prev)
			return nil
		}
	}

	next := e.nextSelectable(e.selected)
	if next == NoSelection {
		return nil
	}
	if err := e.ensureDisplayed(ctx, next+1); err != nil {
		return err
	}
	if _, bottom := e.container.Bounds(next); bottom > e.container.ScrollTop()+e.container.ViewportHeight() {
		e.container.ScrollIntoView(next)
	}
	return nil
}

// focusSelected hands focus to the selected node after the pending render commits.
func (e *Engine[T]) focusSelected(ctx context.Context) error {
	if e.focus == nil || e.selected == NoSelection {
		return nil
	}
	if err := e.container.Commit(ctx); err != nil {
		return err
	}
	e.focus.Focus(e.container.Node(e.selected))
	return nil
}

// selectedFocused reports whether the selected node holds input focus.
func (e *Engine[T]) selectedFocused() bool {
	if e.focus == nil || e.selected == NoSelection || e.selected >= e.container.Len() {
		return false
	}
	return e.focus.Focused(e.container.Node(e.selected))
}

// announceRebuiltSelection re-emits selection-changed with the node that
// replaced the selected one after a rematerialize.
func (e *Engine[T]) announceRebuiltSelection() {
	if e.selected == NoSelection || e.selected >= e.numMaterialized {
		return
	}
	e.selectionChanged.emit(e.container.Node(e.selected))
}

// repairSelection moves a selection that is out of range or on a
// non-selectable item to the nearest valid item.
func (e *Engine[T]) repairSelection(ctx context.Context) error {
	index := e.selected
	switch {
	case index == NoSelection:
		return nil
	case e.lastSelectable == NoSelection:
		index = NoSelection
	case index > e.lastSelectable:
		index = e.lastSelectable
	case !e.isSelectable(e.items[index]):
		index = e.nextSelectable(index)
	}
	return e.setSelectedIndex(ctx, index)
}
