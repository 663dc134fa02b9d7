// SPDX-License-Identifier: EPL-2.0

package mixing

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/ik5/audgraph/block"
)

// Sqrt1_2 is the fold-down coefficient for center and surround channels.
const Sqrt1_2 = math.Sqrt2 / 2

// Rule names the strategy a Mixer selected.
type Rule int

const (
	Identity Rule = iota
	Speaker
	DiscreteUpMix
	DiscreteDownMix
)

func (r Rule) String() string {
	switch r {
	case Identity:
		return "identity"
	case Speaker:
		return "speaker"
	case DiscreteUpMix:
		return "discrete-up-mix"
	case DiscreteDownMix:
		return "discrete-down-mix"
	}
	return "unknown"
}

type mixFunc func(in, out *block.Block)

type layout struct{ src, dst int }

// speakerRules holds the fixed-coefficient layouts. Channel order is
// L, R for stereo; L, R, SL, SR for quad; L, R, C, LFE, SL, SR for 5.1.
var speakerRules = map[layout]mixFunc{
	{1, 2}: monoToFront,
	{1, 4}: monoToFront,
	{1, 6}: monoToCenter,
	{2, 4}: stereoToFront,
	{2, 6}: stereoToFront,
	{4, 6}: quadToSurround,
	{2, 1}: stereoToMono,
	{4, 1}: quadToMono,
	{4, 2}: quadToStereo,
	{6, 1}: surroundToMono,
	{6, 2}: surroundToStereo,
	{6, 4}: surroundToQuad,
}

// Mixer accumulates a source block of one channel count into a destination
// block of another. The zero value is not usable; use New.
type Mixer struct {
	src, dst int
	rule     Rule
	fn       mixFunc
}

// New picks the mixing strategy for src channels into dst channels.
func New(src, dst int, interp Interpretation) Mixer {
	m := Mixer{src: src, dst: dst}

	switch {
	case src == dst:
		m.rule, m.fn = Identity, m.identity
	case interp == Speakers && speakerRules[layout{src, dst}] != nil:
		m.rule, m.fn = Speaker, speakerRules[layout{src, dst}]
	case src < dst:
		m.rule, m.fn = DiscreteUpMix, m.discrete
	default:
		m.rule, m.fn = DiscreteDownMix, m.discrete
	}

	return m
}

func (m Mixer) Rule() Rule { return m.rule }

// Mix adds in into out. out must already hold whatever it should be summed
// with (usually silence); channels the rule does not reach are left as is.
// Both blocks must have the channel counts given to New and equal lengths.
func (m Mixer) Mix(in, out *block.Block) {
	m.fn(in, out)
}

func (m Mixer) identity(in, out *block.Block) {
	for ch := range m.dst {
		vecmath.AddBlockInPlace(out.Channel(ch), in.Channel(ch))
	}
}

// discrete maps channel n to channel n for the channels both sides have.
func (m Mixer) discrete(in, out *block.Block) {
	for ch := range min(m.src, m.dst) {
		vecmath.AddBlockInPlace(out.Channel(ch), in.Channel(ch))
	}
}

func monoToFront(in, out *block.Block) {
	m := in.Channel(0)
	vecmath.AddBlockInPlace(out.Channel(0), m)
	vecmath.AddBlockInPlace(out.Channel(1), m)
}

func monoToCenter(in, out *block.Block) {
	vecmath.AddBlockInPlace(out.Channel(2), in.Channel(0))
}

func stereoToFront(in, out *block.Block) {
	vecmath.AddBlockInPlace(out.Channel(0), in.Channel(0))
	vecmath.AddBlockInPlace(out.Channel(1), in.Channel(1))
}

func quadToSurround(in, out *block.Block) {
	vecmath.AddBlockInPlace(out.Channel(0), in.Channel(0))
	vecmath.AddBlockInPlace(out.Channel(1), in.Channel(1))
	vecmath.AddBlockInPlace(out.Channel(4), in.Channel(2))
	vecmath.AddBlockInPlace(out.Channel(5), in.Channel(3))
}

func stereoToMono(in, out *block.Block) {
	l, r := in.Channel(0), in.Channel(1)
	o := out.Channel(0)

	for i := range o {
		o[i] += 0.5 * (l[i] + r[i])
	}
}

func quadToMono(in, out *block.Block) {
	l, r, sl, sr := in.Channel(0), in.Channel(1), in.Channel(2), in.Channel(3)
	o := out.Channel(0)

	for i := range o {
		o[i] += 0.25 * (l[i] + r[i] + sl[i] + sr[i])
	}
}

func quadToStereo(in, out *block.Block) {
	l, r, sl, sr := in.Channel(0), in.Channel(1), in.Channel(2), in.Channel(3)
	ol, or := out.Channel(0), out.Channel(1)

	for i := range ol {
		ol[i] += 0.5 * (l[i] + sl[i])
		or[i] += 0.5 * (r[i] + sr[i])
	}
}

func surroundToMono(in, out *block.Block) {
	l, r, c := in.Channel(0), in.Channel(1), in.Channel(2)
	sl, sr := in.Channel(4), in.Channel(5)
	o := out.Channel(0)

	for i := range o {
		o[i] += Sqrt1_2*(l[i]+r[i]) + c[i] + 0.5*(sl[i]+sr[i])
	}
}

func surroundToStereo(in, out *block.Block) {
	l, r, c := in.Channel(0), in.Channel(1), in.Channel(2)
	sl, sr := in.Channel(4), in.Channel(5)
	ol, or := out.Channel(0), out.Channel(1)

	for i := range ol {
		ol[i] += l[i] + Sqrt1_2*(c[i]+sl[i])
		or[i] += r[i] + Sqrt1_2*(c[i]+sr[i])
	}
}

func surroundToQuad(in, out *block.Block) {
	l, r, c := in.Channel(0), in.Channel(1), in.Channel(2)
	ol, or := out.Channel(0), out.Channel(1)

	for i := range ol {
		ol[i] += l[i] + Sqrt1_2*c[i]
		or[i] += r[i] + Sqrt1_2*c[i]
	}

	vecmath.AddBlockInPlace(out.Channel(2), in.Channel(4))
	vecmath.AddBlockInPlace(out.Channel(3), in.Channel(5))
}
