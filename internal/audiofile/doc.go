// Package audiofile decodes and encodes WAV recordings as sound.Clip values.
//
// Reading accepts any PCM WAV the decoder understands and downmixes
// multichannel audio by averaging. Writing always produces 16-bit mono PCM
// at the clip's sample rate.
package audiofile
