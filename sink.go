// SPDX-License-Identifier: EPL-2.0

package audgraph

import "github.com/ik5/audgraph/block"

// Sink receives rendered blocks.
//
// Write must not modify b, which may still be cached by the graph. room
// reports whether the sink can take another block right away; when it cannot,
// the render loop waits on Drain.
type Sink interface {
	Write(b *block.Block) (room bool, err error)
	// Drain fires once the sink can take more blocks.
	Drain() <-chan struct{}
	// Close flushes pending output and finalizes the sink.
	Close() error
	// End stops the sink without flushing.
	End() error
}
