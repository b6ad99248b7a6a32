// Package tui hosts the list engine in a terminal.
//
// RowContainer implements the engine's Container and FocusHost over terminal
// rows, and BrowserModel is the Bubble Tea model behind `listkit browse`.
package tui
