// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"slices"

	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/mixing"
)

// PortID addresses a port in its Graph.
type PortID int

type portKind int

const (
	inputPort portKind = iota
	outputPort
)

type port struct {
	kind  portKind
	owner ObjectID
	peers []PortID

	// input side
	computed int
	stale    bool

	// output side
	cache     *block.Block
	cacheTime float64
	channels  int
}

func (g *Graph) newPort(kind portKind, owner ObjectID) PortID {
	id := PortID(len(g.ports))
	g.ports = append(g.ports, &port{
		kind:      kind,
		owner:     owner,
		stale:     true,
		cacheTime: -1,
		channels:  -1,
	})
	return id
}

// connect links an output to an input. It reports false when the two are
// already connected.
func (g *Graph) connect(out, in PortID) bool {
	o, i := g.ports[out], g.ports[in]
	if slices.Contains(o.peers, in) {
		return false
	}

	o.peers = append(o.peers, in)
	i.peers = append(i.peers, out)
	i.stale = true

	return true
}

// disconnect removes the link between out and in. It reports false when
// there was none.
func (g *Graph) disconnect(out, in PortID) bool {
	o, i := g.ports[out], g.ports[in]

	idx := slices.Index(o.peers, in)
	if idx < 0 {
		return false
	}

	o.peers = slices.Delete(o.peers, idx, idx+1)
	if j := slices.Index(i.peers, out); j >= 0 {
		i.peers = slices.Delete(i.peers, j, j+1)
	}
	i.stale = true

	return true
}

// disconnectAll drops every connection of id, whichever side it is.
func (g *Graph) disconnectAll(id PortID) {
	p := g.ports[id]
	for _, peer := range slices.Clone(p.peers) {
		if p.kind == outputPort {
			g.disconnect(id, peer)
		} else {
			g.disconnect(peer, id)
		}
	}
}

// pullInput ticks every source of an input and mixes them into one block
// sized by the owner's channel configuration.
func (g *Graph) pullInput(id PortID) (*block.Block, error) {
	in := g.ports[id]

	// Sources may disconnect while they tick.
	peers := slices.Clone(in.peers)

	sources := make([]*block.Block, 0, len(peers))
	upstream := 0
	for _, peer := range peers {
		b, err := g.pullOutput(peer)
		if err != nil {
			return nil, err
		}
		sources = append(sources, b)
		upstream = max(upstream, b.Channels())
	}

	cfg := g.objects[in.owner].channels()
	if in.stale {
		in.computed = cfg.compute(upstream)
		in.stale = false
	}

	out, err := block.New(in.computed, g.clock.BlockSize, g.clock.SampleRate)
	if err != nil {
		return nil, err
	}

	for _, src := range sources {
		mixing.New(src.Channels(), in.computed, cfg.interpretation).Mix(src, out)
	}

	return out, nil
}

// pullOutput returns the block its owner produced for the current time,
// ticking the owner at most once per time.
func (g *Graph) pullOutput(id PortID) (*block.Block, error) {
	out := g.ports[id]
	if out.cache != nil && out.cacheTime >= g.now {
		return out.cache, nil
	}

	b, err := g.objects[out.owner].tick()
	if err != nil {
		return nil, err
	}

	if b.Channels() != out.channels {
		out.channels = b.Channels()
		for _, sink := range out.peers {
			g.ports[sink].stale = true
		}
	}

	out.cache, out.cacheTime = b, g.now

	return b, nil
}
