package audiofile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/asaiko/voicetrim/internal/domain/sound"
)

const (
	// outputBitDepth is the bit depth of every file this package writes.
	outputBitDepth = 16

	// pcmAudioFormat is the WAV format tag for uncompressed PCM.
	pcmAudioFormat = 1
)

var (
	// ErrInvalidFile is returned when the input is not a decodable WAV file.
	ErrInvalidFile = errors.New("not a valid WAV file")
	// errEmptyClip is returned when asked to write a clip with no audio.
	errEmptyClip = errors.New("clip is empty")
)

// Read decodes a WAV file into a mono clip with samples normalized to [-1, 1].
func Read(path string) (*sound.Clip, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidFile)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}

	return fromPCM(buf, int(decoder.BitDepth)), nil
}

// Write encodes the clip as a 16-bit mono PCM WAV file.
func Write(path string, clip *sound.Clip) error {
	if clip.Empty() {
		return errEmptyClip
	}

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	encoder := wav.NewEncoder(file, clip.SampleRate, outputBitDepth, 1, pcmAudioFormat)

	if err = encoder.Write(toPCM(clip)); err != nil {
		_ = encoder.Close()
		_ = file.Close()

		return fmt.Errorf("encode output: %w", err)
	}

	if err = encoder.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("finalize output: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	return nil
}

// fromPCM converts an integer PCM buffer to a normalized mono clip.
func fromPCM(buf *audio.IntBuffer, decoderBitDepth int) *sound.Clip {
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = decoderBitDepth
	}

	if bitDepth <= 0 {
		bitDepth = outputBitDepth
	}

	var (
		scale    = float64(int(1) << (bitDepth - 1))
		channels = buf.Format.NumChannels
	)

	if channels < 1 {
		channels = 1
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)

	for frame := 0; frame < frames; frame++ {
		var sum float64
		for channel := 0; channel < channels; channel++ {
			sum += float64(buf.Data[frame*channels+channel])
		}

		samples[frame] = sum / float64(channels) / scale
	}

	return &sound.Clip{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
	}
}

// toPCM converts a clip to a 16-bit mono PCM buffer, clipping out-of-range samples.
func toPCM(clip *sound.Clip) *audio.IntBuffer {
	const peak = 1<<(outputBitDepth-1) - 1

	data := make([]int, len(clip.Samples))

	for i, sample := range clip.Samples {
		switch {
		case sample > 1:
			sample = 1
		case sample < -1:
			sample = -1
		}

		data[i] = int(sample * peak)
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  clip.SampleRate,
		},
		Data:           data,
		SourceBitDepth: outputBitDepth,
	}
}
