package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds processing parameters shared by the voicetrim binaries.
type Config struct {
	// TargetFile is the recording name the one-shot tool and the watcher
	// look for inside the working directory.
	TargetFile string `yaml:"target_file"`
	// OutputSuffix is appended to the input stem when naming the
	// processed file (voice.wav -> voice_processed.wav).
	OutputSuffix string `yaml:"output_suffix"`
	// SilenceThresholdDB is the level, in dB relative to the loudest
	// frame, below which a frame counts as silent. Always negative.
	SilenceThresholdDB float64 `yaml:"silence_threshold_db"`
	// MinSilence is the shortest silent stretch that gets collapsed.
	MinSilence time.Duration `yaml:"min_silence"`
	// TargetSilence is the duration a collapsed stretch is replaced with.
	TargetSilence time.Duration `yaml:"target_silence"`
	// StateFile is the path to the JSON journal of processed recordings.
	StateFile string `yaml:"state_file"`
	// Setup holds host-provisioning parameters.
	Setup SetupConfig `yaml:"setup"`
}

// SetupConfig holds the inputs of the provisioning sequence.
type SetupConfig struct {
	// OSPackage is the system package providing sound-file decoding.
	OSPackage string `yaml:"os_package"`
	// ManifestPath is the Python dependency manifest passed to pip.
	ManifestPath string `yaml:"manifest"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "voicetrim-settings.yaml"

	// DefaultStateFilename is the default filename for the processing journal.
	DefaultStateFilename = "voicetrim-state.json"

	// DefaultTargetFile is the recording processed by default.
	DefaultTargetFile = "voice.wav"

	// DefaultOutputSuffix is appended to the input stem for output names.
	DefaultOutputSuffix = "_processed"

	// DefaultSilenceThresholdDB marks frames quieter than 40 dB below
	// the loudest frame as silent.
	DefaultSilenceThresholdDB = -40

	// DefaultMinSilence is the shortest silence that gets collapsed.
	DefaultMinSilence = 100 * time.Millisecond

	// DefaultTargetSilence is what a collapsed silence shrinks to.
	DefaultTargetSilence = 100 * time.Millisecond

	// DefaultOSPackage is the sound-file decoding library installed during setup.
	DefaultOSPackage = "libsndfile1"

	// DefaultManifestPath is the Python dependency manifest installed during setup.
	DefaultManifestPath = "requirements.txt"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errPositiveThreshold is returned when the silence threshold is not negative.
	errPositiveThreshold = errors.New("silence threshold must be negative (dB relative to peak)")
	// errNotWAV is returned when the target file is not a .wav recording.
	errNotWAV = errors.New("target file must be a .wav recording")
)

// Default returns a configuration with all stock values filled in.
func Default() *Config {
	return &Config{
		TargetFile:         DefaultTargetFile,
		OutputSuffix:       DefaultOutputSuffix,
		SilenceThresholdDB: DefaultSilenceThresholdDB,
		MinSilence:         DefaultMinSilence,
		TargetSilence:      DefaultTargetSilence,
		StateFile:          DefaultStateFilename,
		Setup: SetupConfig{
			OSPackage:    DefaultOSPackage,
			ManifestPath: DefaultManifestPath,
		},
	}
}

// Load reads configuration from the provided path and validates essential fields.
// A missing file is not an error: the tools must work out of the box, so
// defaults are returned instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided configuration and fills defaults for unset fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.TargetFile == "" {
		cfg.TargetFile = DefaultTargetFile
	}

	if !strings.EqualFold(filepath.Ext(cfg.TargetFile), ".wav") {
		return fmt.Errorf("%q: %w", cfg.TargetFile, errNotWAV)
	}

	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = DefaultOutputSuffix
	}

	switch {
	case cfg.SilenceThresholdDB == 0:
		cfg.SilenceThresholdDB = DefaultSilenceThresholdDB
	case cfg.SilenceThresholdDB > 0:
		return fmt.Errorf("%v dB: %w", cfg.SilenceThresholdDB, errPositiveThreshold)
	}

	if cfg.MinSilence <= 0 {
		cfg.MinSilence = DefaultMinSilence
	}

	if cfg.TargetSilence <= 0 {
		cfg.TargetSilence = DefaultTargetSilence
	}

	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFilename
	}

	if cfg.Setup.OSPackage == "" {
		cfg.Setup.OSPackage = DefaultOSPackage
	}

	if cfg.Setup.ManifestPath == "" {
		cfg.Setup.ManifestPath = DefaultManifestPath
	}

	return nil
}
