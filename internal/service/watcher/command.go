package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/logger"
	"github.com/asaiko/voicetrim/internal/repository/state"
	"github.com/asaiko/voicetrim/internal/service/processor"
)

// Options are inputs accepted by the watcher entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Directory is the directory to observe (defaults to the working directory).
	Directory string
	// Debounce is how long to wait after the last change before processing,
	// giving the recorder time to finish writing.
	Debounce time.Duration
}

// DefaultDebounce is the stock settle time after a change event.
const DefaultDebounce = time.Second

// errAlreadyWatching indicates another watcher instance owns the directory.
var errAlreadyWatching = errors.New("another watcher already observes this directory")

// Run observes the directory until the context is canceled and is the
// public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "voicetrim-watcher")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	dir := opts.Directory
	if dir == "" {
		dir = "."
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if isWatcherRunningNow(ctx, dir) {
		return fmt.Errorf("%s: %w", dir, errAlreadyWatching)
	}

	if err = createMarker(dir); err != nil {
		return err
	}

	defer removeMarker(dir)

	service := processor.NewService(cfg, state.NewFileRepository(cfg.StateFile))

	// Process a recording that is already there before waiting for changes.
	processTarget(ctx, service, dir)

	return watchLoop(ctx, service, cfg, dir, debounce)
}

// watchLoop runs the fsnotify event loop with debounced processing.
func watchLoop(
	ctx context.Context,
	service *processor.Service,
	cfg *config.Config,
	dir string,
	debounce time.Duration,
) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create filesystem watcher: %w", err)
	}

	defer func() {
		_ = fsWatcher.Close()
	}()

	if err = fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	logger.InfoKV(ctx, "Watching for changes",
		"directory", dir, "target", cfg.TargetFile, "debounce", debounce.String())

	// The timer is armed only after a relevant event.
	settle := time.NewTimer(debounce)
	if !settle.Stop() {
		<-settle.C
	}

	heartbeat := time.NewTicker(markerRefreshInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}

			if isTargetChange(event, cfg.TargetFile) {
				logger.DebugKV(ctx, "Target recording changed", "event", event.String())
				settle.Reset(debounce)
			}

		case watchErr, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}

			logger.WarnKV(ctx, "Filesystem watcher error", "error", watchErr)

		case <-settle.C:
			processTarget(ctx, service, dir)

		case <-heartbeat.C:
			touchMarker(ctx, dir)
		}
	}
}

// isTargetChange reports whether the event is a content change of the
// target recording. Output files and unrelated files are ignored.
func isTargetChange(event fsnotify.Event, target string) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return false
	}

	return filepath.Base(event.Name) == target
}

// processTarget runs one processing pass. The watch loop must survive a bad
// write, so failures are logged instead of propagated.
func processTarget(ctx context.Context, service *processor.Service, dir string) {
	report, err := service.ProcessTarget(ctx, dir)
	if err != nil {
		if errors.Is(err, processor.ErrNoRecording) {
			logger.DebugKV(ctx, "No recording yet", "directory", dir)
			return
		}

		logger.ErrorKV(ctx, "Failed to process recording", "error", err)

		return
	}

	if !report.Skipped {
		logger.InfoKV(ctx, "Automatic processing completed", "output", report.Output)
	}
}
