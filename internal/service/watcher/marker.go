package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/logger"
)

const (
	// MarkerFilename marks that a watcher already observes the directory.
	MarkerFilename = "voicetrim-watcher-marker.bin"

	// markerLifetime is how old a marker may grow before it counts as
	// left behind by a dead watcher.
	markerLifetime = 90 * time.Second

	// markerRefreshInterval is how often a live watcher touches its marker.
	markerRefreshInterval = 30 * time.Second

	// baseWatcherExecutable is the watcher binary name without platform extension.
	baseWatcherExecutable = "voicetrim-watcher"
)

// markerPath returns the marker location inside the watched directory.
func markerPath(dir string) string {
	return filepath.Join(dir, MarkerFilename)
}

// isWatcherRunningNow checks presence of a marker file and attempts recovery
// if it looks stale.
func isWatcherRunningNow(ctx context.Context, dir string) bool {
	fileInfo, err := os.Stat(markerPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false
		}

		logger.Infof(ctx, "Unable to read watcher marker: %v", err)

		return false
	}

	if time.Since(fileInfo.ModTime()) <= markerLifetime {
		return true
	}

	logger.Info(ctx, "The watcher marker is stale, attempting cleanup")

	if err = terminateProcessByName(watcherExecutable()); err != nil {
		return true
	}

	if err = os.Remove(markerPath(dir)); err != nil {
		return true
	}

	return false
}

// createMarker claims the directory for this watcher instance.
func createMarker(dir string) error {
	contents := []byte(strconv.Itoa(os.Getpid()))

	if err := os.WriteFile(markerPath(dir), contents, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("create watcher marker: %w", err)
	}

	return nil
}

// touchMarker refreshes the marker's modification time so it never
// looks stale while the watcher is alive.
func touchMarker(ctx context.Context, dir string) {
	now := time.Now()
	if err := os.Chtimes(markerPath(dir), now, now); err != nil {
		logger.WarnKV(ctx, "Failed to refresh watcher marker", "error", err)
	}
}

// removeMarker releases the directory on shutdown.
func removeMarker(dir string) {
	_ = os.Remove(markerPath(dir))
}

// terminateProcessByName tries to kill processes with the provided executable name.
func terminateProcessByName(processName string) error {
	processList, err := ps.Processes()
	if err != nil {
		return err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != processName {
			continue
		}

		var runningProcess *os.Process

		runningProcess, err = os.FindProcess(process.Pid())
		if err != nil {
			return err
		}

		if err = runningProcess.Kill(); err != nil {
			return err
		}
	}

	return nil
}

// watcherExecutable returns the watcher binary name for the current platform.
func watcherExecutable() string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return baseWatcherExecutable + ".exe"
	}

	return baseWatcherExecutable
}
