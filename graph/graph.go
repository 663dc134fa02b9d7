// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/audgraph/automation"
	"github.com/ik5/audgraph/block"
)

// ObjectID addresses a node or parameter in its Graph.
type ObjectID int

// object is anything that owns ports: nodes and parameters.
type object interface {
	channels() *channelConfig
	tick() (*block.Block, error)
}

// Graph owns every node, parameter and port of one render context, together
// with the logical clock they share. It is driven from a single goroutine.
type Graph struct {
	clock automation.Clock
	frame int64
	now   float64

	ports   []*port
	objects []object

	destination *Destination
}

// New creates a graph with its Destination already in place.
func New(sampleRate float64, blockSize int) (*Graph, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	g := &Graph{
		clock: automation.Clock{SampleRate: sampleRate, BlockSize: blockSize},
	}
	g.destination = newDestination(g)

	return g, nil
}

func (g *Graph) SampleRate() float64     { return g.clock.SampleRate }
func (g *Graph) BlockSize() int          { return g.clock.BlockSize }
func (g *Graph) Clock() automation.Clock { return g.clock }

// Frame is the number of frames rendered so far.
func (g *Graph) Frame() int64 { return g.frame }

// CurrentTime is Frame in seconds.
func (g *Graph) CurrentTime() float64 { return g.now }

func (g *Graph) Destination() *Destination { return g.destination }

// Render pulls one block through the destination at the current time. The
// clock is not moved; call Advance once the block has been delivered.
func (g *Graph) Render() (*block.Block, error) {
	return g.destination.tick()
}

// Advance moves the clock forward by one block.
func (g *Graph) Advance() {
	g.frame += int64(g.clock.BlockSize)
	g.now = float64(g.frame) / g.clock.SampleRate
}

// frameTime converts a frame position to seconds without accumulating
// rounding from repeated additions.
func (g *Graph) frameTime(frame int64) float64 {
	return float64(frame) / g.clock.SampleRate
}

func (g *Graph) add(o object) ObjectID {
	id := ObjectID(len(g.objects))
	g.objects = append(g.objects, o)
	return id
}

// Upstream returns every node that feeds n, directly or through other nodes,
// including nodes connected to n's parameters. Each node appears once, in
// depth-first order.
func (g *Graph) Upstream(n Node) []Node {
	var found []Node
	g.collect(n.base(), &found)
	return found
}

func (g *Graph) collect(n *node, found *[]Node) {
	inputs := slices.Clone(n.inputs)
	for _, p := range n.params {
		inputs = append(inputs, p.input)
	}

	for _, in := range inputs {
		for _, peer := range g.ports[in].peers {
			up, ok := g.objects[g.ports[peer].owner].(Node)
			if !ok || slices.Contains(*found, up) {
				continue
			}
			*found = append(*found, up)
			g.collect(up.base(), found)
		}
	}
}

func (g *Graph) silence(channels int) *block.Block {
	b, _ := block.New(channels, g.clock.BlockSize, g.clock.SampleRate)
	return b
}
