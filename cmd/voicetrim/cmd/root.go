package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/logger"
	"github.com/asaiko/voicetrim/internal/service/processor"
	"github.com/asaiko/voicetrim/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel controls logging verbosity.
	logLevel string
	// processAll trims every WAV recording in the directory.
	processAll bool
	// thresholdDB overrides the configured silence threshold.
	thresholdDB float64
	// minSilence overrides the shortest silence that gets collapsed.
	minSilence time.Duration
	// targetSilence overrides the replacement silence duration.
	targetSilence time.Duration

	// rootCmd represents the base command for one-shot processing.
	rootCmd = &cobra.Command{
		Use:   "voicetrim [directory]",
		Short: "Remove long silences from a voice recording.",
		Long: `Reads the target recording (voice.wav by default) from the directory,
collapses every silence of at least the minimum duration down to the target
duration, and writes the result next to the input as voice_processed.wav.

Recordings that have not changed since the last run are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			applyLogLevel()

			// Use the directory argument if provided, otherwise the working directory.
			var directory string
			if len(args) > 0 {
				directory = args[0]
			}

			options := &processor.Options{
				ConfigPath:    configPath,
				Directory:     directory,
				All:           processAll,
				ThresholdDB:   thresholdDB,
				MinSilence:    minSilence,
				TargetSilence: targetSilence,
			}

			return processor.Run(ctx, options)
		},
	}
)

// Execute runs the voicetrim CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyLogLevel configures the global logger from the flag value.
func applyLogLevel() {
	if level, ok := logger.ParseLogLevel(logLevel); ok {
		logger.SetLevel(level)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "logging level (debug|info|warn|error)")
	rootCmd.Flags().BoolVarP(&processAll, "all", "a", false, "process every WAV recording in the directory")
	rootCmd.Flags().
		Float64VarP(&thresholdDB, "threshold", "t", 0, "silence threshold in dB relative to peak (defaults to configuration)")
	rootCmd.Flags().DurationVar(&minSilence, "min-silence", 0, "shortest silence to collapse (defaults to configuration)")
	rootCmd.Flags().
		DurationVar(&targetSilence, "target-silence", 0, "duration a collapsed silence shrinks to (defaults to configuration)")
}
