package sound

import "time"

// Clip is a mono audio recording.
type Clip struct {
	// Samples are normalized to [-1, 1].
	Samples []float64
	// SampleRate is in frames per second (e.g. 44100).
	SampleRate int
}

// Duration returns the playing time of the clip.
func (c *Clip) Duration() time.Duration {
	if c == nil || c.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(c.Samples)) / float64(c.SampleRate) * float64(time.Second))
}

// Empty reports whether the clip carries no audio.
func (c *Clip) Empty() bool {
	return c == nil || len(c.Samples) == 0
}

// Clone returns a deep copy of the clip to avoid leaking internal references.
func (c *Clip) Clone() *Clip {
	if c == nil {
		return nil
	}

	return &Clip{
		Samples:    append([]float64(nil), c.Samples...),
		SampleRate: c.SampleRate,
	}
}
