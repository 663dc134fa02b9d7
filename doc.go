// SPDX-License-Identifier: EPL-2.0

// Package audgraph renders block-based audio node graphs.
//
// A Context owns a graph of nodes (buffer sources, gains and the
// destination), a logical clock and a render transport. Each render step
// pulls one block of BlockSize frames from the destination, which pulls its
// inputs in turn, so only nodes connected to the destination do any work.
//
// # Quick Start
//
//	ctx, _ := audgraph.NewContext(audgraph.WithSampleRate(48000))
//
//	f, _ := os.Open("loop.wav")
//	buf, _ := ctx.DecodeAudioData(f, "wav")
//
//	src := ctx.CreateBufferSource()
//	src.SetBuffer(buf)
//	src.SetLoop(true)
//
//	gain := ctx.CreateGain()
//	gain.Gain().SetValue(0.5)
//	gain.Gain().LinearRampToValueAtTime(0, 4)
//
//	src.Connect(gain, 0, 0)
//	gain.Connect(ctx.Destination(), 0, 0)
//	src.Start(0)
//
//	out, _ := os.Create("out.wav")
//	ctx.CloseAt(4)
//	err := ctx.Run(context.Background(), wav.NewSink(out, ctx.SampleRate(), 2))
//
// # Rendering
//
// Run drives any Sink: formats/wav.Sink writes a file, sink.PCM streams raw
// s16le to a pipe or socket, and RenderOffline collects frames in memory.
// Sinks signal backpressure by returning false from Write; the loop then
// waits on Drain.
//
// The graph is not safe for concurrent use. While Run is active, hand graph
// changes to Do and they are applied between two blocks.
//
// # Decoding
//
// DecodeAudioData uses the registry given with WithRegistry, or
// DefaultRegistry which knows "wav", "mp3", "ogg" and "aiff". The decoded
// buffer is resampled to the context rate.
package audgraph
