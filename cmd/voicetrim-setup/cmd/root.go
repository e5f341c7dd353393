package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/logger"
	"github.com/asaiko/voicetrim/internal/service/setup"
	"github.com/asaiko/voicetrim/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel controls logging verbosity.
	logLevel string
	// osPackage is the sound-file decoding OS package to install.
	osPackage string
	// manifestPath is the Python dependency manifest passed to pip.
	manifestPath string

	// rootCmd represents the base command for provisioning the host.
	rootCmd = &cobra.Command{
		Use:   "voicetrim-setup",
		Short: "Provision the host for the recording workflow.",
		Long: `Prepares the host in four fixed steps: refresh the OS package index,
install the sound-file decoding package, upgrade pip, and install the Python
dependencies listed in the manifest.

The sequence aborts at the first failing step and exits with that step's
exit code. Rerunning on an already provisioned host is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			applyLogLevel()

			options := &setup.Options{
				ConfigPath:   configPath,
				OSPackage:    osPackage,
				ManifestPath: manifestPath,
			}

			return setup.Run(ctx, options)
		},
	}
)

// Execute runs the voicetrim-setup CLI. The exit status of a failed
// provisioning step is propagated as the process exit status.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		var stepErr *setup.StepError
		if errors.As(err, &stepErr) && stepErr.ExitCode != 0 {
			os.Exit(stepErr.ExitCode)
		}

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
	rootCmd.Flags().StringVarP(&osPackage, "package", "p", "", "OS package to install (defaults to configuration)")
	rootCmd.Flags().
		StringVarP(&manifestPath, "manifest", "m", "", "Python dependency manifest (defaults to configuration)")
}
