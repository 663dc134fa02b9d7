// SPDX-License-Identifier: EPL-2.0

// Package block provides the sample container shared by every part of the
// renderer.
//
// A Block owns N channels of equal length at a fixed sample rate. The same
// type is used for fixed-length render blocks (one engine tick) and for
// arbitrary-length storage buffers holding decoded audio:
//
//	buf, _ := block.New(2, 44100, 44100) // one second of stereo silence
//	head := buf.Slice(0, 128)            // view, no copy
//	tail := buf.Slice(128, buf.Len())
//	whole, _ := head.Concat(tail)        // copy of buf
//
// Blocks are only combinable (Concat, Set) when sample rate and channel count
// match; a mismatch returns ErrSampleRateMismatch or ErrChannelMismatch and
// leaves the receiver untouched.
//
// Samples are float64 in [-1.0, 1.0] by convention; nothing clamps them until
// an encoder converts them to integer PCM.
package block
