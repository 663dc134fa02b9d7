// SPDX-License-Identifier: EPL-2.0

// Package sink holds streaming outputs for audgraph.Context.Run.
//
// PCM interleaves rendered blocks into signed 16-bit little-endian frames
// and writes them to any io.Writer from its own goroutine, so a slow pipe or
// socket pushes back on the render loop instead of stalling it mid-block:
//
//	out := sink.NewPCM(os.Stdout, 2, sink.WithNumBuffers(8))
//	err := ctx.Run(context.Background(), out)
//
// Live device output lives in sink/portaudio behind the portaudio build tag.
package sink
