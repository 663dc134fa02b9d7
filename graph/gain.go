// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"github.com/cwbudde/algo-vecmath"
	"github.com/ik5/audgraph/automation"
	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/mixing"
)

// Gain scales its input by an a-rate gain parameter, sample by sample. The
// output has as many channels as the mixed input.
type Gain struct {
	node

	gain *Param
}

// NewGain adds a unity Gain to g.
func (g *Graph) NewGain() *Gain {
	n := &Gain{}
	n.setup(g, n, KindGain, 1, 1, channelConfig{count: 2, mode: Max, interpretation: mixing.Speakers})
	n.gain = g.newParam(&n.node, 1, automation.ARate)
	return n
}

// Gain is the multiplier applied to every channel.
func (n *Gain) Gain() *Param { return n.gain }

func (n *Gain) generate() (*block.Block, error) {
	in, err := n.g.pullInput(n.inputs[0])
	if err != nil {
		return nil, err
	}

	gain, err := n.gain.tick()
	if err != nil {
		return nil, err
	}
	coeff := gain.Channel(0)

	out := n.g.silence(in.Channels())
	for ch := range in.Channels() {
		vecmath.MulBlock(out.Channel(ch), in.Channel(ch), coeff)
	}

	return out, nil
}
