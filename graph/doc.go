// SPDX-License-Identifier: EPL-2.0

// Package graph is the render graph: nodes joined through ports, pulled one
// block at a time from the Destination.
//
// A Graph owns every node, parameter and port; they refer to each other by
// index, never by owning pointer. Rendering a block ticks the Destination,
// which pulls its input port, which pulls each connected output port, which
// ticks the node behind it. An output port caches its block for the current
// time, so a node feeding several inputs runs once per block.
//
//	g, _ := graph.New(44100, 128)
//	src := g.NewBufferSource()
//	src.SetBuffer(buf)
//	gain := g.NewGain()
//	_ = src.Connect(gain, 0, 0)
//	_ = gain.Connect(g.Destination(), 0, 0)
//	_ = gain.Gain().LinearRampToValueAtTime(0, 2)
//	_ = src.Start(0)
//
//	for range blocks {
//		out, err := g.Render()
//		...
//		g.Advance()
//	}
//
// Each input resolves its width from the owner's CountMode and mixes every
// source into it with the owner's channel interpretation (see package
// mixing). When a source changes width the inputs it feeds recompute theirs.
//
// A Graph is not safe for concurrent use; one goroutine renders and mutates
// it.
package graph
