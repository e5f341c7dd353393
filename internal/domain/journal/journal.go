package journal

import "time"

// Entry records one completed processing run for a recording.
type Entry struct {
	// SourceChecksum is the base64-encoded checksum of the input file.
	SourceChecksum string `json:"sourceChecksum"`
	// OutputFile is the absolute path of the processed result.
	OutputFile string `json:"outputFile"`
	// ProcessedAt is when the run completed.
	ProcessedAt time.Time `json:"processedAt"`
}

// History maps absolute source paths to their last processing entry.
type History struct {
	// Entries is keyed by the absolute path of the source recording.
	Entries map[string]Entry `json:"entries"`
}

// NewHistory produces an empty history.
func NewHistory() *History {
	return &History{
		Entries: make(map[string]Entry),
	}
}

// Lookup returns the last entry for a source recording, if any.
func (h *History) Lookup(source string) (Entry, bool) {
	if h == nil || h.Entries == nil {
		return Entry{}, false
	}

	entry, found := h.Entries[source]

	return entry, found
}

// Record stores the entry for a source recording, replacing any previous one.
func (h *History) Record(source string, entry Entry) {
	if h.Entries == nil {
		h.Entries = make(map[string]Entry)
	}

	h.Entries[source] = entry
}
