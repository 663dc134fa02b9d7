// SPDX-License-Identifier: EPL-2.0

// Package patch reads node graphs described in YAML and builds them into an
// audgraph.Context.
//
//	sample_rate: 48000
//	duration: 4
//	nodes:
//	  - id: loop
//	    type: buffer_source
//	    file: loop.wav
//	    loop: true
//	  - id: fade
//	    type: gain
//	    gain: 1
//	    automation:
//	      - {op: linear_ramp, value: 0, time: 4}
//	connections:
//	  - {from: loop, to: fade}
//	  - {from: fade, to: destination}
package patch

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DestinationID names the context destination in connections.
const DestinationID = "destination"

const (
	TypeBufferSource = "buffer_source"
	TypeGain         = "gain"
)

type Patch struct {
	SampleRate  float64      `yaml:"sample_rate,omitempty"`
	BlockSize   int          `yaml:"block_size,omitempty"`
	Duration    float64      `yaml:"duration"` // seconds rendered
	Destination Channels     `yaml:"destination,omitempty"`
	Nodes       []Node       `yaml:"nodes"`
	Connections []Connection `yaml:"connections"`
}

// Channels holds the optional channel settings of a node. Empty fields keep
// the node defaults.
type Channels struct {
	Count          int    `yaml:"channel_count,omitempty"`
	CountMode      string `yaml:"channel_count_mode,omitempty"`     // max, clamped-max, explicit
	Interpretation string `yaml:"channel_interpretation,omitempty"` // speakers, discrete
}

type Node struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`

	Channels `yaml:",inline"`

	// buffer_source
	File      string   `yaml:"file,omitempty"`
	Format    string   `yaml:"format,omitempty"` // defaults to the file extension
	Tone      *Tone    `yaml:"tone,omitempty"`
	Loop      bool     `yaml:"loop,omitempty"`
	LoopStart float64  `yaml:"loop_start,omitempty"`
	LoopEnd   float64  `yaml:"loop_end,omitempty"`
	Start     float64  `yaml:"start,omitempty"`
	Offset    float64  `yaml:"offset,omitempty"`
	Length    float64  `yaml:"length,omitempty"` // play duration, 0 for all
	Stop      *float64 `yaml:"stop,omitempty"`

	// gain
	Gain       *float64     `yaml:"gain,omitempty"`
	Automation []Automation `yaml:"automation,omitempty"`
}

// Tone is a generated sine buffer, handy when no file is at hand.
type Tone struct {
	Frequency float64 `yaml:"frequency"`
	Duration  float64 `yaml:"duration"`
	Amplitude float64 `yaml:"amplitude,omitempty"` // default 1
	Channels  int     `yaml:"channels,omitempty"`  // default 1
}

// Automation is one scheduled parameter change.
type Automation struct {
	Op       string    `yaml:"op"`
	Value    float64   `yaml:"value,omitempty"`
	Time     float64   `yaml:"time,omitempty"`
	Tau      float64   `yaml:"tau,omitempty"`
	Values   []float64 `yaml:"values,omitempty"`
	Duration float64   `yaml:"duration,omitempty"`
}

// Connection wires node output 0 to node input 0, or to a parameter when To
// reads "node.param".
type Connection struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Target splits To into a node id and an optional parameter name.
func (c Connection) Target() (node, param string) {
	node, param, _ = strings.Cut(c.To, ".")
	return node, param
}

// Parse decodes a patch and checks that it is self-consistent. Unknown YAML
// fields are rejected.
func Parse(r io.Reader) (*Patch, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Patch
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (p *Patch) validate() error {
	if !(p.Duration > 0) {
		return fmt.Errorf("%w: %v", ErrBadDuration, p.Duration)
	}

	ids := map[string]string{DestinationID: ""}
	for _, n := range p.Nodes {
		if _, dup := ids[n.ID]; dup || n.ID == "" {
			return fmt.Errorf("%w: %q", ErrDuplicateID, n.ID)
		}
		ids[n.ID] = n.Type

		switch n.Type {
		case TypeBufferSource:
			if n.File == "" && n.Tone == nil {
				return fmt.Errorf("node %q: %w", n.ID, ErrNoSource)
			}
		case TypeGain:
			for _, a := range n.Automation {
				if _, ok := automationOps[a.Op]; !ok {
					return fmt.Errorf("node %q: %w: %q", n.ID, ErrUnknownOp, a.Op)
				}
			}
		default:
			return fmt.Errorf("node %q: %w: %q", n.ID, ErrUnknownNodeType, n.Type)
		}
	}

	for _, c := range p.Connections {
		if _, ok := ids[c.From]; !ok || c.From == DestinationID {
			return fmt.Errorf("connection %s -> %s: %w: %q", c.From, c.To, ErrUnknownNode, c.From)
		}

		node, param := c.Target()
		typ, ok := ids[node]
		if !ok {
			return fmt.Errorf("connection %s -> %s: %w: %q", c.From, c.To, ErrUnknownNode, node)
		}
		if param != "" && (typ != TypeGain || param != "gain") {
			return fmt.Errorf("connection %s -> %s: %w: %q", c.From, c.To, ErrUnknownParam, param)
		}
	}

	return nil
}
