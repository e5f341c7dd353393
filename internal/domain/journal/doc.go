// Package journal contains the domain model for the processing journal.
//
// The journal remembers, per recording, the checksum that was last
// processed and where the result was written, so reruns on unchanged
// input can be skipped.
package journal
