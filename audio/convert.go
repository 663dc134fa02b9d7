// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/utils"
)

// deinterleave splits frame-interleaved samples into a storage buffer.
func deinterleave[T any](data []T, channels, sampleRate int, conv func(T) float64) (*block.Block, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if len(data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples, %d channels", ErrPartialFrame, len(data), channels)
	}

	b, err := block.New(channels, len(data)/channels, float64(sampleRate))
	if err != nil {
		return nil, err
	}

	for ch := range channels {
		dst := b.Channel(ch)
		for i := range dst {
			dst[i] = conv(data[i*channels+ch])
		}
	}

	return b, nil
}

// FromInts builds a buffer from interleaved signed PCM of the given bit
// depth, as produced by go-audio decoders.
func FromInts(data []int, channels, bitDepth, sampleRate int) (*block.Block, error) {
	return deinterleave(data, channels, sampleRate, func(v int) float64 {
		return utils.IntToFloat(v, bitDepth)
	})
}

// FromFloat32 builds a buffer from interleaved float samples in [-1, 1].
func FromFloat32(data []float32, channels, sampleRate int) (*block.Block, error) {
	return deinterleave(data, channels, sampleRate, func(v float32) float64 {
		return float64(v)
	})
}

// FromInt16LE builds a buffer from interleaved little-endian 16-bit PCM bytes.
// A trailing odd byte is ignored.
func FromInt16LE(data []byte, channels, sampleRate int) (*block.Block, error) {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}

	return deinterleave(samples, channels, sampleRate, func(v int16) float64 {
		return utils.IntToFloat(int(v), 16)
	})
}

// PutInt16LE writes b into dst as interleaved little-endian 16-bit PCM,
// clamping samples to [-1, 1]. dst must hold at least b.Len()*b.Channels()*2
// bytes; the number of bytes written is returned.
func PutInt16LE(dst []byte, b *block.Block) int {
	channels := b.Channels()
	for ch := range channels {
		for i, v := range b.Channel(ch) {
			off := (i*channels + ch) * 2
			binary.LittleEndian.PutUint16(dst[off:], uint16(utils.FloatToInt16(v)))
		}
	}

	return b.Len() * channels * 2
}

// ToInts interleaves b into signed 16-bit PCM values held in ints, the shape
// go-audio encoders take.
func ToInts(dst []int, b *block.Block) []int {
	channels := b.Channels()
	n := b.Len() * channels
	if cap(dst) < n {
		dst = make([]int, n)
	}
	dst = dst[:n]

	for ch := range channels {
		for i, v := range b.Channel(ch) {
			dst[i*channels+ch] = int(utils.FloatToInt16(v))
		}
	}

	return dst
}
