package listview

import "context"

// ViewNode is the host representation of one materialized item.
// The engine never inspects it; it is passed back to the Container and FocusHost.
type ViewNode any

// Renderer turns an item at a given index into a view node.
type Renderer[T any] func(item T, index int) ViewNode

// Predicate classifies which items take part in keyboard navigation.
type Predicate[T any] func(item T) bool

// Container owns the materialized view nodes and the scrollable viewport.
//
// Nodes are index-aligned with the engine's items: node i renders items[i].
// Geometry is expressed in container units (rows for a terminal host) relative
// to the top of the scrollable content.
type Container interface {
	// Append adds a node after the last one.
	Append(node ViewNode)
	// Truncate removes every node at index n and above.
	Truncate(n int)
	// Len returns the number of nodes.
	Len() int
	// Node returns the node at index.
	Node(index int) ViewNode
	// Bounds returns the top and bottom edges of the node at index.
	Bounds(index int) (top, bottom int)

	ScrollTop() int
	ViewportHeight() int
	// ScrollTo moves the viewport so that offset is its top edge.
	ScrollTo(offset int)
	// ScrollIntoView scrolls the minimum distance that makes the node at index visible.
	ScrollIntoView(index int)
	// SetContentHeight sets the virtual scroll extent.
	SetContentHeight(height int)

	// Commit blocks until pending node changes have been laid out.
	Commit(ctx context.Context) error
	// OnScroll registers fn for scroll offset changes.
	OnScroll(fn func()) (unsubscribe func())
}

// FocusHost moves input focus between view nodes.
type FocusHost interface {
	// Focus gives input focus to node without scrolling it.
	Focus(node ViewNode)
	// Focused reports whether node currently holds input focus.
	Focused(node ViewNode) bool
}
