// Package processor implements one-shot silence removal for recordings.
//
// It locates the target recording in a directory, runs the trimming engine
// over it, and writes the result next to the input. A JSON journal of input
// checksums makes reruns on unchanged recordings no-ops.
package processor
