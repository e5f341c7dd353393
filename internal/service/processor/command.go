package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/logger"
	"github.com/asaiko/voicetrim/internal/repository/state"
)

// Options are inputs accepted by the processor entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Directory is where the recording lives (defaults to the working directory).
	Directory string
	// All processes every WAV recording in the directory instead of
	// just the configured target file.
	All bool
	// ThresholdDB overrides the configured silence threshold when non-zero.
	ThresholdDB float64
	// MinSilence overrides the configured minimum silence when non-zero.
	MinSilence time.Duration
	// TargetSilence overrides the configured replacement silence when non-zero.
	TargetSilence time.Duration
}

// Run executes one processing pass and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "voicetrim")

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	dir := opts.Directory
	if dir == "" {
		dir = "."
	}

	service := NewService(cfg, state.NewFileRepository(cfg.StateFile))

	if opts.All {
		return service.ProcessAll(ctx, dir)
	}

	if _, err = service.ProcessTarget(ctx, dir); err != nil {
		return err
	}

	return nil
}

// loadConfig loads settings and applies command-line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if opts.ThresholdDB != 0 {
		cfg.SilenceThresholdDB = opts.ThresholdDB
	}

	if opts.MinSilence > 0 {
		cfg.MinSilence = opts.MinSilence
	}

	if opts.TargetSilence > 0 {
		cfg.TargetSilence = opts.TargetSilence
	}

	// Revalidate so flag overrides obey the same rules as file settings.
	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ProcessAll trims every WAV recording in the directory, skipping files
// that are themselves processing results. Per-file failures are logged and
// do not stop the batch.
func (s *Service) ProcessAll(ctx context.Context, dir string) error {
	recordings, err := s.listRecordings(dir)
	if err != nil {
		return err
	}

	if len(recordings) == 0 {
		logger.InfoKV(ctx, "No recordings found", "directory", dir)
		return nil
	}

	logger.InfoKV(ctx, "Processing recordings", "count", len(recordings), "directory", dir)

	var (
		bar    = progressbar.Default(int64(len(recordings)), "trimming")
		failed int
	)

	for _, recording := range recordings {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if _, err = s.ProcessFile(ctx, recording); err != nil {
			failed++

			logger.ErrorKV(ctx, "Failed to process recording",
				"recording", recording, "error", err)
		}

		_ = bar.Add(1)
	}

	logger.InfoKV(ctx, "Batch completed", "processed", len(recordings)-failed, "failed", failed)

	return nil
}

// listRecordings returns the WAV files of a directory in lexical order,
// excluding processed outputs.
func (s *Service) listRecordings(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var recordings []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".wav") || s.IsOutput(name) {
			continue
		}

		recordings = append(recordings, filepath.Join(dir, name))
	}

	return recordings, nil
}
