package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/service/watcher"
)

// TestWatcher_Run_ProcessesOnChange starts a real watcher, drops a recording
// into the directory, and waits for the processed result to appear.
func TestWatcher_Run_ProcessesOnChange(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- watcher.Run(ctx, &watcher.Options{
			Directory: dir,
			Debounce:  100 * time.Millisecond,
		})
	}()

	// The marker appears once the watcher owns the directory.
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, watcher.MarkerFilename))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	writeRecording(t, filepath.Join(dir, config.DefaultTargetFile), time.Second)

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "voice_processed.wav"))
		return err == nil
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	// The marker is released on shutdown.
	_, err := os.Stat(filepath.Join(dir, watcher.MarkerFilename))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestWatcher_Run_RefusesSecondInstance ensures a fresh marker blocks another watcher.
func TestWatcher_Run_RefusesSecondInstance(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, watcher.MarkerFilename), []byte("1"), 0o600))

	err := watcher.Run(context.Background(), &watcher.Options{Directory: dir})
	require.Error(t, err)
}
