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
	"github.com/asaiko/voicetrim/internal/service/watcher"
	"github.com/asaiko/voicetrim/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel controls logging verbosity.
	logLevel string
	// debounce is the settle time after a change before processing starts.
	debounce time.Duration

	// rootCmd represents the base command for watching a directory.
	rootCmd = &cobra.Command{
		Use:   "voicetrim-watcher [directory]",
		Short: "Watch a directory and reprocess the recording on every change.",
		Long: `Observes the directory and reruns silence removal whenever the target
recording (voice.wav by default) is created or rewritten. An existing
recording is processed once at startup.

Only one watcher may observe a directory at a time; a marker file left by a
crashed watcher is cleaned up automatically.`,
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

			options := &watcher.Options{
				ConfigPath: configPath,
				Directory:  directory,
				Debounce:   debounce,
			}

			return watcher.Run(ctx, options)
		},
	}
)

// Execute runs the voicetrim-watcher CLI and exits with non-zero status on error.
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
	rootCmd.Flags().
		DurationVarP(&debounce, "debounce", "d", watcher.DefaultDebounce, "settle time after a change before processing")
}
