// Package dsp implements the silence-trimming engine.
//
// A clip is sliced into 25 ms frames advanced by a 10 ms hop. Each frame's
// RMS level is expressed in dB relative to the loudest frame, frames below
// the threshold count as silent, and silent stretches of at least the
// minimum duration are collapsed down to the target duration. Voiced audio
// and short pauses pass through untouched.
package dsp
