package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

// TestIsTargetChange verifies only content changes of the target file schedule processing.
func TestIsTargetChange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{
			name:     "write to target",
			event:    fsnotify.Event{Name: "/takes/voice.wav", Op: fsnotify.Write},
			expected: true,
		},
		{
			name:     "create target",
			event:    fsnotify.Event{Name: "/takes/voice.wav", Op: fsnotify.Create},
			expected: true,
		},
		{
			name:     "remove target",
			event:    fsnotify.Event{Name: "/takes/voice.wav", Op: fsnotify.Remove},
			expected: false,
		},
		{
			name:     "write to output",
			event:    fsnotify.Event{Name: "/takes/voice_processed.wav", Op: fsnotify.Write},
			expected: false,
		},
		{
			name:     "write to unrelated file",
			event:    fsnotify.Event{Name: "/takes/notes.txt", Op: fsnotify.Write},
			expected: false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, isTargetChange(tc.event, "voice.wav"))
		})
	}
}

// TestMarkerGuard covers claiming, blocking and releasing a directory.
func TestMarkerGuard(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	// No marker yet.
	require.False(t, isWatcherRunningNow(ctx, dir))

	// A fresh marker blocks a second instance.
	require.NoError(t, createMarker(dir))
	require.True(t, isWatcherRunningNow(ctx, dir))

	// Releasing the directory unblocks it.
	removeMarker(dir)
	require.False(t, isWatcherRunningNow(ctx, dir))
}

// TestMarkerGuard_StaleMarker ensures a marker left by a dead watcher is cleaned up.
func TestMarkerGuard_StaleMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, createMarker(dir))

	// Age the marker beyond its lifetime. No watcher process matches,
	// so cleanup succeeds and the directory is free again.
	old := time.Now().Add(-2 * markerLifetime)
	require.NoError(t, os.Chtimes(markerPath(dir), old, old))

	require.False(t, isWatcherRunningNow(context.Background(), dir))

	_, err := os.Stat(markerPath(dir))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestTouchMarker verifies the heartbeat keeps the marker fresh.
func TestTouchMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, createMarker(dir))

	old := time.Now().Add(-2 * markerLifetime)
	require.NoError(t, os.Chtimes(markerPath(dir), old, old))

	touchMarker(context.Background(), dir)

	info, err := os.Stat(filepath.Join(dir, MarkerFilename))
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), info.ModTime(), time.Minute)
}
