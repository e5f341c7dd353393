package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields and defaulting behavior.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Nil configuration.
	require.Error(t, Validate(nil))

	// Empty configuration gets all defaults.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultTargetFile, cfg.TargetFile)
	require.Equal(t, float64(DefaultSilenceThresholdDB), cfg.SilenceThresholdDB)
	require.Equal(t, DefaultMinSilence, cfg.MinSilence)
	require.Equal(t, DefaultOSPackage, cfg.Setup.OSPackage)
	require.Equal(t, DefaultManifestPath, cfg.Setup.ManifestPath)

	// Target file must be a WAV recording.
	cfg = &Config{TargetFile: "voice.mp3"}
	require.Error(t, Validate(cfg))

	// Threshold is relative to peak, so positive values are rejected.
	cfg = &Config{SilenceThresholdDB: 10}
	require.Error(t, Validate(cfg))
}

// TestLoadMissingFile ensures defaults are returned when no settings file exists.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		TargetFile:         "take.wav",
		SilenceThresholdDB: -35,
		MinSilence:         200 * time.Millisecond,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.TargetFile, loaded.TargetFile)
	require.Equal(t, cfg.SilenceThresholdDB, loaded.SilenceThresholdDB)
	require.Equal(t, cfg.MinSilence, loaded.MinSilence)

	// Defaults were filled on save.
	require.Equal(t, DefaultOutputSuffix, loaded.OutputSuffix)
}
