// Package state persists the processing journal to a JSON file.
//
// The repository is safe for concurrent use within a process; cross-process
// coordination is handled by the watcher's single-instance guard.
package state
