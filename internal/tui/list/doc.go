// Package listview provides an incremental, virtualized list engine for TUI hosts.
//
// The engine manages an unbounded logical item sequence while only turning a
// leading window of items into view nodes. Key features:
//   - Lazy materialization driven by viewport height and scroll position
//   - Uniform average height estimation from already-realized nodes
//   - Keyboard selection over a subset of selectable items, with wrap-around
//   - Scroll policy that keeps one neighbouring item of context visible
//
// Rendering, scrolling and focus are delegated to a Container and an optional
// FocusHost, so the engine never references host node types.
//
// The engine is single-threaded. Entry points must not be called concurrently;
// a call made while another is still running fails with ErrBusy.
package listview
