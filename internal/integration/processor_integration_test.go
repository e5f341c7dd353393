package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asaiko/voicetrim/internal/audiofile"
	"github.com/asaiko/voicetrim/internal/config"
	"github.com/asaiko/voicetrim/internal/domain/sound"
	"github.com/asaiko/voicetrim/internal/service/processor"
)

const testSampleRate = 8000

// writeRecording produces a WAV with speech, a pause, then more speech.
func writeRecording(t *testing.T, path string, pause time.Duration) {
	t.Helper()

	samples := block(300*time.Millisecond, 0.5)
	samples = append(samples, block(pause, 0)...)
	samples = append(samples, block(300*time.Millisecond, 0.5)...)

	require.NoError(t, audiofile.Write(path, &sound.Clip{
		Samples:    samples,
		SampleRate: testSampleRate,
	}))
}

// block produces a constant-amplitude run of samples.
func block(duration time.Duration, amplitude float64) []float64 {
	samples := make([]float64, int(duration.Seconds()*testSampleRate))
	for i := range samples {
		samples[i] = amplitude
	}

	return samples
}

// TestProcessor_Run_EndToEnd exercises the CLI entry point against real files
// with default settings in a scratch working directory.
func TestProcessor_Run_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeRecording(t, filepath.Join(dir, config.DefaultTargetFile), time.Second)

	require.NoError(t, processor.Run(context.Background(), &processor.Options{}))

	// The trimmed result sits next to the input.
	output := filepath.Join(dir, "voice_processed.wav")

	trimmed, err := audiofile.Read(output)
	require.NoError(t, err)

	// 0.3s + 0.1s + 0.3s once the one-second pause is collapsed.
	require.InDelta(t, 0.7, trimmed.Duration().Seconds(), 0.1)

	// The journal was created with default naming.
	_, err = os.Stat(filepath.Join(dir, config.DefaultStateFilename))
	require.NoError(t, err)

	// A rerun without input changes leaves the output untouched.
	before, err := os.Stat(output)
	require.NoError(t, err)

	require.NoError(t, processor.Run(context.Background(), &processor.Options{}))

	after, err := os.Stat(output)
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime())
}

// chdir switches the working directory for the duration of the test and
// restores the previous one on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
