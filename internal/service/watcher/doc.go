// Package watcher keeps a directory under observation and reprocesses the
// target recording whenever it changes.
//
// Events are debounced so the writer can finish before processing starts.
// A marker file in the watched directory guards against a second watcher
// instance; a stale marker left by a crashed watcher is cleaned up.
package watcher
