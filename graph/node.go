// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"

	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/mixing"
	"github.com/ik5/audgraph/schedule"
)

// Kind tags the concrete type behind a Node.
type Kind int

const (
	KindGain Kind = iota
	KindBufferSource
	KindDestination
)

func (k Kind) String() string {
	switch k {
	case KindGain:
		return "gain"
	case KindBufferSource:
		return "buffer-source"
	case KindDestination:
		return "destination"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// CountMode decides how an input's channel count follows its sources.
type CountMode int

const (
	// Max uses the widest source.
	Max CountMode = iota
	// ClampedMax uses the widest source, capped at the channel count.
	ClampedMax
	// Explicit always uses the channel count.
	Explicit
)

func (m CountMode) String() string {
	switch m {
	case Max:
		return "max"
	case ClampedMax:
		return "clamped-max"
	case Explicit:
		return "explicit"
	}
	return fmt.Sprintf("CountMode(%d)", int(m))
}

func (m CountMode) Valid() bool { return m >= Max && m <= Explicit }

// ParseCountMode accepts "max", "clamped-max" or "explicit".
func ParseCountMode(s string) (CountMode, error) {
	for m := Max; m <= Explicit; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCountMode, s)
}

type channelConfig struct {
	count          int
	mode           CountMode
	interpretation mixing.Interpretation
}

// compute resolves an input width from the widest source feeding it.
func (c *channelConfig) compute(upstream int) int {
	switch c.mode {
	case ClampedMax:
		return min(upstream, c.count)
	case Explicit:
		return c.count
	}
	return upstream
}

// Node is one processing step in a Graph. The set of implementations is
// closed: Gain, BufferSource and Destination.
type Node interface {
	Kind() Kind
	NumberOfInputs() int
	NumberOfOutputs() int

	Connect(dst Node, output, input int) error
	ConnectParam(dst *Param, output int) error
	Disconnect(output int) error
	Kill()
	Killed() bool

	ChannelCount() int
	SetChannelCount(n int) error
	ChannelCountMode() CountMode
	SetChannelCountMode(m CountMode) error
	ChannelInterpretation() mixing.Interpretation
	SetChannelInterpretation(i mixing.Interpretation) error

	base() *node
}

// generator is the per-kind step run by node.tick after the scheduler.
type generator interface {
	generate() (*block.Block, error)
}

// node carries what every kind shares: ports, channel configuration,
// scheduler and lifecycle.
type node struct {
	g    *Graph
	id   ObjectID
	kind Kind
	impl generator

	inputs  []PortID
	outputs []PortID
	params  []*Param

	cfg      channelConfig
	maxCount int

	sched  schedule.Queue
	frame  int64
	killed bool
}

// setup registers self in g and creates its ports.
func (n *node) setup(g *Graph, self object, kind Kind, inputs, outputs int, cfg channelConfig) {
	n.g = g
	n.kind = kind
	n.cfg = cfg
	n.impl = self.(generator)
	n.id = g.add(self)

	for range inputs {
		n.inputs = append(n.inputs, g.newPort(inputPort, n.id))
	}
	for range outputs {
		n.outputs = append(n.outputs, g.newPort(outputPort, n.id))
	}
}

func (n *node) base() *node                 { return n }
func (n *node) channels() *channelConfig    { return &n.cfg }
func (n *node) Kind() Kind                  { return n.kind }
func (n *node) NumberOfInputs() int         { return len(n.inputs) }
func (n *node) NumberOfOutputs() int        { return len(n.outputs) }
func (n *node) Killed() bool                { return n.killed }
func (n *node) ChannelCount() int           { return n.cfg.count }
func (n *node) ChannelCountMode() CountMode { return n.cfg.mode }
func (n *node) ChannelInterpretation() mixing.Interpretation {
	return n.cfg.interpretation
}

// Frames is the number of times the node has been ticked.
func (n *node) Frames() int64 { return n.frame }

// Connect links output of n to input of dst. Connecting twice is a no-op and
// still returns nil; the error reports bad indices or dead nodes only. Use
// Graph.Upstream to inspect the resulting topology.
func (n *node) Connect(dst Node, output, input int) error {
	if output < 0 || output >= len(n.outputs) {
		return fmt.Errorf("%w: %d", ErrOutputOutOfBounds, output)
	}

	d := dst.base()
	if input < 0 || input >= len(d.inputs) {
		return fmt.Errorf("%w: %d", ErrInputOutOfBounds, input)
	}
	if d.g != n.g {
		return ErrForeignNode
	}
	if n.killed || d.killed {
		return fmt.Errorf("connect %s to %s: %w", n.kind, d.kind, ErrKilled)
	}

	n.g.connect(n.outputs[output], d.inputs[input])

	return nil
}

// ConnectParam feeds output of n into dst, whose input is added to its
// automation.
func (n *node) ConnectParam(dst *Param, output int) error {
	if output < 0 || output >= len(n.outputs) {
		return fmt.Errorf("%w: %d", ErrOutputOutOfBounds, output)
	}
	if dst.g != n.g {
		return ErrForeignNode
	}
	if n.killed || dst.killed {
		return fmt.Errorf("connect %s to param: %w", n.kind, ErrKilled)
	}

	n.g.connect(n.outputs[output], dst.input)

	return nil
}

// Disconnect removes every connection leaving output.
func (n *node) Disconnect(output int) error {
	if output < 0 || output >= len(n.outputs) {
		return fmt.Errorf("%w: %d", ErrOutputOutOfBounds, output)
	}

	n.g.disconnectAll(n.outputs[output])

	return nil
}

// Kill tears down every port and parameter of n. Ticking n afterwards fails
// with ErrKilled.
func (n *node) Kill() {
	if n.killed {
		return
	}

	for _, id := range n.inputs {
		n.g.disconnectAll(id)
	}
	for _, id := range n.outputs {
		n.g.disconnectAll(id)
	}
	for _, p := range n.params {
		p.kill()
	}

	n.sched.Clear()
	n.killed = true
}

func (n *node) SetChannelCount(c int) error {
	if c < 1 || (n.maxCount > 0 && c > n.maxCount) {
		return fmt.Errorf("%w: %d", ErrInvalidChannelCount, c)
	}

	n.cfg.count = c
	n.invalidateInputs()

	return nil
}

func (n *node) SetChannelCountMode(m CountMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidCountMode, m)
	}

	n.cfg.mode = m
	n.invalidateInputs()

	return nil
}

func (n *node) SetChannelInterpretation(i mixing.Interpretation) error {
	if !i.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidInterpretation, i)
	}

	n.cfg.interpretation = i

	return nil
}

func (n *node) invalidateInputs() {
	for _, id := range n.inputs {
		n.g.ports[id].stale = true
	}
}

// tick runs the scheduler due at the current time, then the kind's step.
func (n *node) tick() (*block.Block, error) {
	if n.killed {
		return nil, fmt.Errorf("tick %s: %w", n.kind, ErrKilled)
	}

	n.frame++

	if err := n.sched.Tick(n.g.now); err != nil {
		return nil, fmt.Errorf("%s: %w", n.kind, err)
	}

	return n.impl.generate()
}
