package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/logger"
)

// Options are inputs accepted by the setup entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// OSPackage overrides the OS package to install.
	OSPackage string
	// ManifestPath overrides the Python dependency manifest path.
	ManifestPath string
}

// Step is one external command of the provisioning sequence.
type Step struct {
	// Name labels the step in logs and errors.
	Name string
	// Command is the executable to invoke.
	Command string
	// Args are passed to the command verbatim.
	Args []string
	// Env entries are appended to the inherited environment.
	Env []string
}

// StepError reports which step failed and with what exit code.
type StepError struct {
	// Step is the name of the failed step.
	Step string
	// ExitCode is the failing tool's exit status (1 when the tool could
	// not be started at all).
	ExitCode int
	// Err is the underlying execution error.
	Err error
}

// Error describes the failed step.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed with exit code %d: %v", e.Step, e.ExitCode, e.Err)
}

// Unwrap exposes the underlying execution error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// stepFunc executes a single step. Tests substitute it to avoid
// touching the host's package managers.
type stepFunc func(ctx context.Context, step Step) error

// Steps returns the provisioning sequence in execution order.
func Steps(osPackage, manifestPath string) []Step {
	return []Step{
		{
			Name:    "refresh index",
			Command: "apt-get",
			Args:    []string{"update"},
			Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		},
		{
			Name:    "install package",
			Command: "apt-get",
			Args:    []string{"install", "-y", osPackage},
			Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		},
		{
			Name:    "upgrade installer",
			Command: "python3",
			Args:    []string{"-m", "pip", "install", "--upgrade", "pip"},
		},
		{
			Name:    "install dependencies",
			Command: "python3",
			Args:    []string{"-m", "pip", "install", "-r", manifestPath},
		},
	}
}

// Run executes the provisioning sequence and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "voicetrim-setup")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	osPackage := cfg.Setup.OSPackage
	if opts.OSPackage != "" {
		osPackage = opts.OSPackage
	}

	manifestPath := cfg.Setup.ManifestPath
	if opts.ManifestPath != "" {
		manifestPath = opts.ManifestPath
	}

	if err = runSequence(ctx, Steps(osPackage, manifestPath), execStep); err != nil {
		logger.ErrorKV(ctx, "Provisioning failed", "error", err)
		return err
	}

	logger.Info(ctx, "Provisioning completed")

	return nil
}

// runSequence executes steps strictly in order and stops at the first failure.
func runSequence(ctx context.Context, steps []Step, run stepFunc) error {
	for _, step := range steps {
		logger.InfoKV(ctx, "Running provisioning step",
			"step", step.Name, "command", step.String())

		if err := run(ctx, step); err != nil {
			return &StepError{
				Step:     step.Name,
				ExitCode: exitCodeOf(err),
				Err:      err,
			}
		}
	}

	return nil
}

// String renders the step's command line for logging.
func (s Step) String() string {
	return strings.Join(append([]string{s.Command}, s.Args...), " ")
}

// execStep runs the step's command, streaming the tool's own output through.
func execStep(ctx context.Context, step Step) error {
	cmd := exec.CommandContext(ctx, step.Command, step.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), step.Env...)

	return cmd.Run()
}

// exitCodeOf extracts the exit status of a failed command,
// defaulting to 1 when the command never ran.
func exitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return 1
}
