// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/ik5/audgraph"
	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/graph"
	"github.com/ik5/audgraph/mixing"
)

type automationFunc func(p *graph.Param, a Automation) error

var automationOps = map[string]automationFunc{
	"set_value": func(p *graph.Param, a Automation) error {
		return p.SetValue(a.Value)
	},
	"set_value_at_time": func(p *graph.Param, a Automation) error {
		return p.SetValueAtTime(a.Value, a.Time)
	},
	"linear_ramp": func(p *graph.Param, a Automation) error {
		return p.LinearRampToValueAtTime(a.Value, a.Time)
	},
	"exponential_ramp": func(p *graph.Param, a Automation) error {
		return p.ExponentialRampToValueAtTime(a.Value, a.Time)
	},
	"set_target": func(p *graph.Param, a Automation) error {
		return p.SetTargetAtTime(a.Value, a.Time, a.Tau)
	},
	"value_curve": func(p *graph.Param, a Automation) error {
		return p.SetValueCurveAtTime(a.Values, a.Time, a.Duration)
	},
}

// Built maps patch ids to the nodes created for them. The destination is
// listed under DestinationID.
type Built struct {
	Nodes map[string]graph.Node
	Gains map[string]*graph.Gain
}

// Options returns the context options the patch asks for.
func (p *Patch) Options() []audgraph.Option {
	var opts []audgraph.Option
	if p.SampleRate > 0 {
		opts = append(opts, audgraph.WithSampleRate(p.SampleRate))
	}
	if p.BlockSize > 0 {
		opts = append(opts, audgraph.WithBlockSize(p.BlockSize))
	}
	return opts
}

// Build creates every node of p in c, wires them and schedules their
// playback. Files are opened from fsys.
func Build(c *audgraph.Context, p *Patch, fsys fs.FS) (*Built, error) {
	b := &Built{
		Nodes: map[string]graph.Node{DestinationID: c.Destination()},
		Gains: map[string]*graph.Gain{},
	}

	if err := applyChannels(c.Destination(), p.Destination); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	for _, n := range p.Nodes {
		node, err := b.build(c, n, fsys)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		if err := applyChannels(node, n.Channels); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		b.Nodes[n.ID] = node
	}

	for _, conn := range p.Connections {
		if err := b.connect(conn); err != nil {
			return nil, fmt.Errorf("connection %s -> %s: %w", conn.From, conn.To, err)
		}
	}

	return b, nil
}

func (b *Built) build(c *audgraph.Context, n Node, fsys fs.FS) (graph.Node, error) {
	switch n.Type {
	case TypeBufferSource:
		return buildSource(c, n, fsys)
	case TypeGain:
		gain := c.CreateGain()
		b.Gains[n.ID] = gain

		if n.Gain != nil {
			if err := gain.Gain().SetValue(*n.Gain); err != nil {
				return nil, err
			}
		}
		for _, a := range n.Automation {
			if err := automationOps[a.Op](gain.Gain(), a); err != nil {
				return nil, fmt.Errorf("%s: %w", a.Op, err)
			}
		}
		return gain, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, n.Type)
}

func buildSource(c *audgraph.Context, n Node, fsys fs.FS) (graph.Node, error) {
	buf, err := loadBuffer(c, n, fsys)
	if err != nil {
		return nil, err
	}

	src := c.CreateBufferSource()
	if err := src.SetBuffer(buf); err != nil {
		return nil, fmt.Errorf("node %q: %w", n.ID, err)
	}
	src.SetLoop(n.Loop)
	src.SetLoopStart(n.LoopStart)
	src.SetLoopEnd(n.LoopEnd)

	var opts []graph.StartOption
	if n.Offset > 0 {
		opts = append(opts, graph.WithOffset(n.Offset))
	}
	if n.Length > 0 {
		opts = append(opts, graph.WithDuration(n.Length))
	}
	if err := src.Start(n.Start, opts...); err != nil {
		return nil, err
	}

	if n.Stop != nil {
		if err := src.Stop(*n.Stop); err != nil {
			return nil, err
		}
	}

	return src, nil
}

func loadBuffer(c *audgraph.Context, n Node, fsys fs.FS) (*block.Block, error) {
	if n.Tone != nil {
		return tone(c.SampleRate(), *n.Tone)
	}

	f, err := fsys.Open(n.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	format := n.Format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(path.Ext(n.File)), ".")
	}

	return c.DecodeAudioData(f, format)
}

func tone(sampleRate float64, t Tone) (*block.Block, error) {
	if !(t.Duration > 0) {
		return nil, fmt.Errorf("tone: %w: %v", ErrBadDuration, t.Duration)
	}

	channels := max(t.Channels, 1)
	amp := t.Amplitude
	if amp == 0 {
		amp = 1
	}

	buf, err := block.New(channels, int(t.Duration*sampleRate), sampleRate)
	if err != nil {
		return nil, err
	}

	w := 2 * math.Pi * t.Frequency / sampleRate
	for ch := range channels {
		data := buf.Channel(ch)
		for i := range data {
			data[i] = amp * math.Sin(w*float64(i))
		}
	}

	return buf, nil
}

func (b *Built) connect(conn Connection) error {
	src, ok := b.Nodes[conn.From]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, conn.From)
	}

	id, param := conn.Target()
	if param != "" {
		gain, ok := b.Gains[id]
		if !ok || param != "gain" {
			return fmt.Errorf("%w: %q", ErrUnknownParam, conn.To)
		}
		return src.ConnectParam(gain.Gain(), 0)
	}

	dst, ok := b.Nodes[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return src.Connect(dst, 0, 0)
}

func applyChannels(n graph.Node, c Channels) error {
	if c.CountMode != "" {
		mode, err := graph.ParseCountMode(c.CountMode)
		if err != nil {
			return err
		}
		if err := n.SetChannelCountMode(mode); err != nil {
			return err
		}
	}

	if c.Interpretation != "" {
		interp, err := mixing.ParseInterpretation(c.Interpretation)
		if err != nil {
			return err
		}
		if err := n.SetChannelInterpretation(interp); err != nil {
			return err
		}
	}

	if c.Count > 0 {
		return n.SetChannelCount(c.Count)
	}
	return nil
}
