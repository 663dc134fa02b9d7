// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// The whole stream is decoded into a storage buffer. go-mp3 always produces
// stereo, so mono files come back with both channels equal:
//
//	f, _ := os.Open("voice.mp3")
//	buf, err := mp3.Decoder{}.Decode(f)
//
// The buffer keeps the file's own sample rate; audgraph.Context.DecodeAudioData
// resamples it to the context rate.
package mp3
