package dsp

import (
	"time"

	"github.com/asaiko/voicetrim/internal/domain/sound"
)

// Params controls silence detection and replacement.
type Params struct {
	// ThresholdDB marks frames below this level (dB relative to the
	// loudest frame) as silent. Always negative.
	ThresholdDB float64
	// MinSilence is the shortest silent stretch that gets collapsed.
	MinSilence time.Duration
	// TargetSilence is the duration a collapsed stretch is replaced with.
	TargetSilence time.Duration
}

// Stats describes what Trim did to a clip.
type Stats struct {
	// Segments is the number of voiced/silent runs the clip was split into.
	Segments int
	// Collapsed is how many silent stretches were shortened.
	Collapsed int
}

// Trim collapses long silences in the clip and returns the shortened clip.
// The input clip is not modified.
func Trim(clip *sound.Clip, params Params) (*sound.Clip, Stats) {
	if clip.Empty() {
		return clip.Clone(), Stats{}
	}

	frameLength, hopLength := frameSizes(clip.SampleRate)
	silent := silentFrames(clip.Samples, frameLength, hopLength, params.ThresholdDB)

	var (
		stats  Stats
		result = make([]float64, 0, len(clip.Samples))
	)

	for i := 0; i < len(silent); {
		runStart := i
		for i < len(silent) && silent[i] == silent[runStart] {
			i++
		}

		stats.Segments++

		if !silent[runStart] {
			result = append(result, sampleRange(clip.Samples, runStart, i, hopLength)...)
			continue
		}

		runDuration := time.Duration(i-runStart) * hopDuration
		if runDuration >= params.MinSilence {
			stats.Collapsed++
			result = append(result, make([]float64, targetSamples(params.TargetSilence, clip.SampleRate))...)

			continue
		}

		// Short pauses are part of natural speech, keep them verbatim.
		result = append(result, sampleRange(clip.Samples, runStart, i, hopLength)...)
	}

	return &sound.Clip{Samples: result, SampleRate: clip.SampleRate}, stats
}

// silentFrames classifies each analysis frame of the signal.
func silentFrames(samples []float64, frameLength, hopLength int, thresholdDB float64) []bool {
	levels := levelsDB(frameRMS(samples, frameLength, hopLength))

	silent := make([]bool, len(levels))
	for i, level := range levels {
		silent[i] = level < thresholdDB
	}

	return silent
}

// sampleRange maps a frame run [start, end) back to the underlying samples.
func sampleRange(samples []float64, start, end, hopLength int) []float64 {
	lo := start * hopLength

	hi := end * hopLength
	if hi > len(samples) {
		hi = len(samples)
	}

	if lo >= hi {
		return nil
	}

	return samples[lo:hi]
}

// targetSamples converts the replacement silence duration to a sample count.
func targetSamples(target time.Duration, sampleRate int) int {
	return int(target.Seconds() * float64(sampleRate))
}
