// Package sound contains the core domain type for audio processing.
//
// A Clip is a mono recording as normalized float samples plus its sample
// rate; every stage of the pipeline (decode, trim, encode) speaks Clip.
package sound
