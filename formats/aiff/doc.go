// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Integer PCM at 16, 24 or 32 bits is supported, any channel count and any
// sample rate:
//
//	f, _ := os.Open("hit.aiff")
//	buf, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // 8-bit or odd sample size
//	}
//
// Inputs that are not seekable are read into memory first, since go-audio
// needs to jump between chunks.
package aiff
