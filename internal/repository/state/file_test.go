package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asaiko/voicetrim/internal/domain/journal"
)

// TestLoadMissing ensures a missing journal file maps to ErrNotFound.
func TestLoadMissing(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "journal.json"))

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

// TestSaveLoadRoundtrip verifies entries survive persistence.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "journal.json"))

	history := journal.NewHistory()
	history.Record("/takes/voice.wav", journal.Entry{
		SourceChecksum: "abc123",
		OutputFile:     "/takes/voice_processed.wav",
		ProcessedAt:    time.Now().UTC().Truncate(time.Second),
	})

	require.NoError(t, repo.Save(context.Background(), history))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)

	entry, found := loaded.Lookup("/takes/voice.wav")
	require.True(t, found)
	require.Equal(t, "abc123", entry.SourceChecksum)
	require.Equal(t, "/takes/voice_processed.wav", entry.OutputFile)
}
