// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/audgraph/block"
)

// Waveform builds a storage buffer whose samples come from fn.
func Waveform(sampleRate, channels, frames int, fn func(frame, channel int) float64) *block.Block {
	b, err := block.New(channels, frames, float64(sampleRate))
	if err != nil {
		panic(err)
	}

	for ch := range channels {
		data := b.Channel(ch)
		for i := range data {
			data[i] = fn(i, ch)
		}
	}

	return b
}

// Silence builds a buffer of zeros.
func Silence(sampleRate, channels, frames int) *block.Block {
	return Waveform(sampleRate, channels, frames, func(int, int) float64 { return 0 })
}

// Sine builds a buffer holding the same sine tone on every channel.
func Sine(sampleRate, channels, frames int, frequency float64) *block.Block {
	return Waveform(sampleRate, channels, frames, func(frame, _ int) float64 {
		t := float64(frame) / float64(sampleRate)
		return math.Sin(2 * math.Pi * frequency * t)
	})
}

// Constant builds a buffer with every sample set to value.
func Constant(sampleRate, channels, frames int, value float64) *block.Block {
	return Waveform(sampleRate, channels, frames, func(int, int) float64 { return value })
}

// Ramp builds a mono buffer holding 1, 2, 3, ... so frame positions are easy
// to read back.
func Ramp(sampleRate, frames int) *block.Block {
	return Waveform(sampleRate, 1, frames, func(frame, _ int) float64 { return float64(frame + 1) })
}
