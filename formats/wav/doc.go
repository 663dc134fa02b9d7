// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files.
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 16, 24 or 32 bits, any channel count and any sample rate. The result is a
// storage buffer ready for a BufferSource:
//
//	f, _ := os.Open("loop.wav")
//	buf, err := wav.Decoder{}.Decode(f)
//
// # Writing WAV Files
//
// Encode16 writes a whole buffer at once:
//
//	out, _ := os.Create("out.wav")
//	err := wav.Encode16(out, buf)
//
// Sink streams rendered blocks instead and can be handed to
// audgraph.Context.Run:
//
//	out, _ := os.Create("out.wav")
//	sink := wav.NewSink(out, ctx.SampleRate(), 2)
//	err := ctx.Run(context.Background(), sink)
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE stream
//   - ErrOnlyPCMSupported: float or compressed encodings
//   - ErrUnsupportedBitDepth: PCM at 8 bits or another odd depth
//   - ErrUnsupportedWavLayout: the stream has no usable format, or a block
//     does not match the Sink layout
package wav
