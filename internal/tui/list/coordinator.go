package listview

import "context"

// handleScroll grows the materialized window when the viewport scrolls past it.
func (e *Engine[T]) handleScroll() {
	scrollTop := e.container.ScrollTop()
	if scrollTop <= 0 || e.numMaterialized >= len(e.items) {
		return
	}

	grew, err := e.fillToHeight(context.Background(), scrollTop+e.container.ViewportHeight())
	if err != nil {
		e.logger.Warn().Err(err).Int("scroll_top", scrollTop).Msg("scroll fill failed")
		return
	}
	if grew {
		e.updateHeight()
	}
}

// itemsChanged rebuilds derived state after the item sequence was replaced.
func (e *Engine[T]) itemsChanged(ctx context.Context, previousLength int) error {
	defer e.viewportFilled.emit(struct{}{})

	if len(e.items) == 0 {
		e.firstSelectable, e.lastSelectable = NoSelection, NoSelection
		e.numMaterialized = 0
		e.container.Truncate(0)
		e.resetSelected()
		e.updateHeight()
		e.container.ScrollTo(0)
		return e.container.Commit(ctx)
	}

	e.recomputeSelectable()
	hadFocus := e.selectedFocused()

	e.numMaterialized = min(e.numMaterialized, len(e.items))
	if err := e.rematerialize(ctx); err != nil {
		return err
	}
	if _, err := e.fillToHeight(ctx, e.container.ScrollTop()+e.container.ViewportHeight()); err != nil {
		return err
	}

	kept := e.selected
	if err := e.repairSelection(ctx); err != nil {
		return err
	}
	if e.selected == kept {
		e.announceRebuiltSelection()
	}
	if hadFocus {
		if err := e.focusSelected(ctx); err != nil {
			return err
		}
	}

	if len(e.items) != previousLength {
		e.updateHeight()
	}

	e.logger.Debug().
		Int("items", len(e.items)).
		Int("previous_items", previousLength).
		Int("materialized", e.numMaterialized).
		Int("first_selectable", e.firstSelectable).
		Int("last_selectable", e.lastSelectable).
		Msg("items replaced")
	return nil
}
