// SPDX-License-Identifier: EPL-2.0

// Package audio connects encoded audio to the renderer.
//
// A Decoder reads a whole stream into a storage buffer (a block.Block with
// one float64 slice per channel). Decoders are looked up by format key in a
// Registry:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	buf, err := registry.Decode("wav", file)
//
// The From* helpers deinterleave the PCM layouts codec libraries hand back
// (go-audio integer buffers, float32 frames, little-endian int16 bytes).
//
// # Resampling
//
// Resample converts a storage buffer to another rate with Catmull-Rom cubic
// interpolation:
//
//	buf, _ = audio.Resample(buf, 48000)
//
// When downsampling, a one-pole low-pass runs first to reduce aliasing.
//
// # Sample Format
//
// Samples are float64 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
package audio
