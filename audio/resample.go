// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/utils"
)

// filterAlpha is the coefficient of the one-pole low-pass applied before
// downsampling.
const filterAlpha = 0.5

// Resample converts b to rate using cubic interpolation. When rate already
// matches, b itself is returned. Downsampling runs a simple one-pole low-pass
// over each channel first to tame aliasing.
func Resample(b *block.Block, rate float64) (*block.Block, error) {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, rate)
	}
	if rate == b.SampleRate() {
		return b, nil
	}

	ratio := b.SampleRate() / rate // source frames per output frame
	length := int(math.Round(float64(b.Len()) / ratio))

	out, err := block.New(b.Channels(), length, rate)
	if err != nil {
		return nil, err
	}
	if b.Len() == 0 {
		return out, nil
	}

	src := b
	if ratio > 1 {
		src = lowPass(b)
	}

	last := b.Len() - 1
	at := func(data []float64, i int) float64 {
		return data[max(0, min(i, last))]
	}

	for ch := range b.Channels() {
		in, dst := src.Channel(ch), out.Channel(ch)

		for i := range dst {
			pos := float64(i) * ratio
			idx := int(pos)
			frac := pos - float64(idx)

			dst[i] = utils.CubicInterpolate(
				at(in, idx-1), at(in, idx), at(in, idx+1), at(in, idx+2), frac)
		}
	}

	return out, nil
}

// lowPass returns a filtered copy: y[n] = a·x[n] + (1-a)·y[n-1], seeded with
// the first sample so the filter does not ramp in from zero.
func lowPass(b *block.Block) *block.Block {
	out, _ := block.New(b.Channels(), b.Len(), b.SampleRate())

	for ch := range out.Channels() {
		data := out.Channel(ch)
		vecmath.ScaleBlock(data, b.Channel(ch), filterAlpha)

		state := b.Channel(ch)[0]
		for i := range data {
			data[i] += (1 - filterAlpha) * state
			state = data[i]
		}
	}

	return out
}
