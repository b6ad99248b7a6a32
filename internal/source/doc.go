// Package source loads list entries from files and keeps them fresh.
//
// Supported formats are YAML, JSON, NDJSON and plain text, detected from the
// file extension. Multiple files load concurrently and are concatenated in
// argument order. A Watcher reloads them when any file changes on disk.
package source
