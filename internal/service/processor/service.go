package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asaiko/voicetrim/internal/audiofile"
	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/domain/journal"
	"github.com/asaiko/voicetrim/internal/dsp"
	"github.com/asaiko/voicetrim/internal/logger"
	"github.com/asaiko/voicetrim/internal/repository/state"
	"github.com/asaiko/voicetrim/internal/service/common"
)

// Report describes the outcome of processing one recording.
type Report struct {
	// Source is the absolute path of the input recording.
	Source string
	// Output is the absolute path of the processed result.
	Output string
	// SourceDuration is the playing time of the input.
	SourceDuration time.Duration
	// ResultDuration is the playing time of the output.
	ResultDuration time.Duration
	// Segments is the number of voiced/silent runs found.
	Segments int
	// Collapsed is how many silent stretches were shortened.
	Collapsed int
	// Skipped reports that the input was unchanged since the last run.
	Skipped bool
}

// ErrNoRecording is returned when the target recording does not exist.
var ErrNoRecording = errors.New("recording not found")

// errEmptyRecording is returned when the input decodes to zero samples.
var errEmptyRecording = errors.New("recording contains no audio")

// Service trims silences from recordings and journals the results.
type Service struct {
	// cfg holds processing parameters.
	cfg *config.Config
	// repo persists the processing journal.
	repo state.Repository
}

// NewService creates a processing service with the provided configuration and journal.
func NewService(cfg *config.Config, repo state.Repository) *Service {
	return &Service{
		cfg:  cfg,
		repo: repo,
	}
}

// ProcessTarget processes the configured target recording inside dir.
func (s *Service) ProcessTarget(ctx context.Context, dir string) (*Report, error) {
	path := filepath.Join(dir, s.cfg.TargetFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoRecording)
		}

		return nil, fmt.Errorf("stat recording: %w", err)
	}

	return s.ProcessFile(ctx, path)
}

// ProcessFile trims silences from a single recording.
// When the input checksum matches the journal and the previous output still
// exists, the run is skipped.
func (s *Service) ProcessFile(ctx context.Context, path string) (*Report, error) {
	source, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve recording path: %w", err)
	}

	checksum, err := common.FileChecksum(source)
	if err != nil {
		return nil, fmt.Errorf("fingerprint recording: %w", err)
	}

	history := s.loadHistory(ctx)

	output := s.OutputPath(source)
	if report, skipped := s.skipUnchanged(ctx, history, source, checksum, output); skipped {
		return report, nil
	}

	clip, err := audiofile.Read(source)
	if err != nil {
		return nil, err
	}

	if clip.Empty() {
		return nil, fmt.Errorf("%s: %w", source, errEmptyRecording)
	}

	trimmed, stats := dsp.Trim(clip, dsp.Params{
		ThresholdDB:   s.cfg.SilenceThresholdDB,
		MinSilence:    s.cfg.MinSilence,
		TargetSilence: s.cfg.TargetSilence,
	})

	if err = audiofile.Write(output, trimmed); err != nil {
		return nil, err
	}

	history.Record(source, journal.Entry{
		SourceChecksum: checksum,
		OutputFile:     output,
		ProcessedAt:    time.Now(),
	})

	if err = s.repo.Save(ctx, history); err != nil {
		// The output is already on disk, a stale journal only costs an
		// extra rerun next time.
		logger.WarnKV(ctx, "Failed to persist journal", "error", err)
	}

	report := &Report{
		Source:         source,
		Output:         output,
		SourceDuration: clip.Duration(),
		ResultDuration: trimmed.Duration(),
		Segments:       stats.Segments,
		Collapsed:      stats.Collapsed,
	}

	logger.InfoKV(ctx, "Recording processed",
		"source", report.Source,
		"output", report.Output,
		"source_duration", report.SourceDuration.String(),
		"result_duration", report.ResultDuration.String(),
		"segments", report.Segments,
		"collapsed", report.Collapsed)

	return report, nil
}

// OutputPath derives the processed file name: voice.wav -> voice_processed.wav.
func (s *Service) OutputPath(source string) string {
	ext := filepath.Ext(source)
	stem := strings.TrimSuffix(source, ext)

	return stem + s.cfg.OutputSuffix + ".wav"
}

// IsOutput reports whether the file name looks like a processed result.
func (s *Service) IsOutput(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	return strings.HasSuffix(stem, s.cfg.OutputSuffix)
}

// loadHistory reads the journal, starting fresh when none exists yet.
func (s *Service) loadHistory(ctx context.Context) *journal.History {
	history, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			logger.WarnKV(ctx, "Failed to read journal, starting fresh", "error", err)
		}

		return journal.NewHistory()
	}

	return history
}

// skipUnchanged decides whether the recording can be skipped based on the journal.
func (s *Service) skipUnchanged(
	ctx context.Context,
	history *journal.History,
	source, checksum, output string,
) (*Report, bool) {
	entry, found := history.Lookup(source)
	if !found || entry.SourceChecksum != checksum {
		return nil, false
	}

	if _, err := os.Stat(entry.OutputFile); err != nil {
		return nil, false
	}

	logger.InfoKV(ctx, "Recording unchanged since last run, skipping",
		"source", source, "output", entry.OutputFile)

	return &Report{
		Source:  source,
		Output:  output,
		Skipped: true,
	}, true
}
