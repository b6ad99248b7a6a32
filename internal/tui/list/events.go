package listview

// hooks is an ordered set of listeners that can be removed individually.
type hooks[A any] struct {
	nextID    int
	listeners []listener[A]
}

type listener[A any] struct {
	id int
	fn func(A)
}

func (h *hooks[A]) add(fn func(A)) func() {
	h.nextID++
	id := h.nextID
	h.listeners = append(h.listeners, listener[A]{id: id, fn: fn})

	return func() {
		for i, l := range h.listeners {
			if l.id == id {
				h.listeners = append(h.listeners[:i:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

func (h *hooks[A]) emit(arg A) {
	// Listeners may unsubscribe while being notified.
	snapshot := append([]listener[A](nil), h.listeners...)
	for _, l := range snapshot {
		l.fn(arg)
	}
}

// OnSelectionChanged registers fn to receive the newly selected view node,
// or nil when the selection is cleared.
func (e *Engine[T]) OnSelectionChanged(fn func(node ViewNode)) (unsubscribe func()) {
	return e.selectionChanged.add(fn)
}

// OnRenderedItemsChanged registers fn to be called with the new materialized
// count whenever the set of view nodes changes.
func (e *Engine[T]) OnRenderedItemsChanged(fn func(numMaterialized int)) (unsubscribe func()) {
	return e.renderedItemsChanged.add(fn)
}

// OnViewportFilled registers fn to be called when item-change processing completes.
func (e *Engine[T]) OnViewportFilled(fn func()) (unsubscribe func()) {
	return e.viewportFilled.add(func(struct{}) { fn() })
}
