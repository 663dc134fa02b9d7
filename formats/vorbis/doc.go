// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
//	f, _ := os.Open("pad.ogg")
//	buf, err := vorbis.Decoder{}.Decode(f)
//
// The channel layout and sample rate of the file are kept as is. Vorbis
// already decodes to floats, so no scaling takes place.
package vorbis
