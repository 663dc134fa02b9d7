// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/mixing"
)

// destinationChannels is the widest layout the destination accepts.
const destinationChannels = 2

// Destination is the single sink of a Graph. Whatever is connected to it is
// mixed down to its channel count and handed to the transport.
type Destination struct {
	node
}

func newDestination(g *Graph) *Destination {
	n := &Destination{}
	n.setup(g, n, KindDestination, 1, 0, channelConfig{
		count:          destinationChannels,
		mode:           Explicit,
		interpretation: mixing.Speakers,
	})
	n.maxCount = destinationChannels
	return n
}

func (n *Destination) MaxChannelCount() int { return destinationChannels }

func (n *Destination) generate() (*block.Block, error) {
	return n.g.pullInput(n.inputs[0])
}
