package listview

import (
	"context"
	"math"
)

// ensureDisplayed materializes items up to (not including) n and waits for
// the container to commit them. Smaller n is a no-op.
func (e *Engine[T]) ensureDisplayed(ctx context.Context, n int) error {
	n = min(n, len(e.items))
	if n <= e.numMaterialized {
		return nil
	}

	for i := e.numMaterialized; i < n; i++ {
		e.container.Append(e.render(e.items[i], i))
	}
	e.numMaterialized = n

	e.logger.Debug().
		Int("materialized", n).
		Int("items", len(e.items)).
		Msg("materialized window grew")

	if err := e.container.Commit(ctx); err != nil {
		return err
	}
	e.renderedItemsChanged.emit(e.numMaterialized)
	return nil
}

func (e *Engine[T]) ensureAllMaterialized(ctx context.Context) error {
	if len(e.items) == 0 {
		return nil
	}
	return e.ensureDisplayed(ctx, len(e.items))
}

// rematerialize drops every view node and renders the current window again.
func (e *Engine[T]) rematerialize(ctx context.Context) error {
	e.container.Truncate(0)
	for i := 0; i < e.numMaterialized; i++ {
		e.container.Append(e.render(e.items[i], i))
	}
	if err := e.container.Commit(ctx); err != nil {
		return err
	}
	e.renderedItemsChanged.emit(e.numMaterialized)
	return nil
}

// averageHeight is the bottom edge of the last materialized node divided by
// the number of materialized nodes. Callers guarantee numMaterialized >= 1.
func (e *Engine[T]) averageHeight() float64 {
	if e.numMaterialized == 0 {
		return 0
	}
	_, bottom := e.container.Bounds(e.numMaterialized - 1)
	return float64(bottom) / float64(e.numMaterialized)
}

// fillToHeight materializes the fewest items whose estimated height covers
// targetHeight. It reports whether the window grew.
func (e *Engine[T]) fillToHeight(ctx context.Context, targetHeight int) (bool, error) {
	if len(e.items) == 0 {
		return false, nil
	}

	// One node is needed to sample a height.
	if e.numMaterialized == 0 {
		if err := e.ensureDisplayed(ctx, 1); err != nil {
			return false, err
		}
	}

	h := e.averageHeight()
	if h == 0 {
		e.logger.Warn().
			Int("materialized", e.numMaterialized).
			Int("target_height", targetHeight).
			Msg("materialized items have zero height, not growing")
		return false, nil
	}

	desired := min(int(math.Ceil(float64(targetHeight)/h)), len(e.items))
	if desired <= e.numMaterialized {
		return false, nil
	}

	if err := e.ensureDisplayed(ctx, desired); err != nil {
		return false, err
	}
	return true, nil
}

// updateHeight sizes the container to the estimated height of every item.
func (e *Engine[T]) updateHeight() {
	if len(e.items) == 0 {
		e.container.SetContentHeight(0)
		return
	}
	e.container.SetContentHeight(int(math.Ceil(float64(len(e.items)) * e.averageHeight())))
}
