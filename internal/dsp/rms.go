package dsp

import (
	"math"
	"time"
)

const (
	// frameDuration is the analysis window length.
	frameDuration = 25 * time.Millisecond
	// hopDuration is the stride between consecutive analysis windows.
	hopDuration = 10 * time.Millisecond

	// minRMS avoids log of zero when converting digital silence to dB.
	minRMS = 1e-10
)

// frameSizes converts the fixed window/hop durations into sample counts
// for the provided sample rate.
func frameSizes(sampleRate int) (frameLength, hopLength int) {
	frameLength = int(frameDuration.Seconds() * float64(sampleRate))
	hopLength = int(hopDuration.Seconds() * float64(sampleRate))

	if hopLength < 1 {
		hopLength = 1
	}

	if frameLength < hopLength {
		frameLength = hopLength
	}

	return frameLength, hopLength
}

// frameRMS computes per-frame RMS energy. The final frames may cover less
// than a full window; they are evaluated over the samples that exist.
func frameRMS(samples []float64, frameLength, hopLength int) []float64 {
	if len(samples) == 0 {
		return nil
	}

	numFrames := (len(samples) + hopLength - 1) / hopLength
	rms := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		start := i * hopLength

		end := start + frameLength
		if end > len(samples) {
			end = len(samples)
		}

		var sum float64
		for _, sample := range samples[start:end] {
			sum += sample * sample
		}

		rms[i] = math.Sqrt(sum / float64(end-start))
	}

	return rms
}

// levelsDB converts RMS values to dB relative to the loudest frame.
// The result is always <= 0, with 0 at the peak frame.
func levelsDB(rms []float64) []float64 {
	ref := minRMS
	for _, value := range rms {
		if value > ref {
			ref = value
		}
	}

	levels := make([]float64, len(rms))

	for i, value := range rms {
		if value < minRMS {
			value = minRMS
		}

		levels[i] = 20 * math.Log10(value/ref)
	}

	return levels
}
