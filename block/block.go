// SPDX-License-Identifier: EPL-2.0

package block

import "fmt"

// Block is a fixed shape set of channels, each holding Len() float64 samples.
// Render blocks are produced once per engine tick; storage buffers hold
// decoded or preloaded audio of any length.
type Block struct {
	data       [][]float64
	length     int
	sampleRate float64
}

func validate(channels, length int, sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if length < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if channels < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	return nil
}

// New returns a zero-filled block.
func New(channels, length int, sampleRate float64) (*Block, error) {
	if err := validate(channels, length, sampleRate); err != nil {
		return nil, err
	}

	// One backing array keeps the channels close together in memory.
	backing := make([]float64, channels*length)
	data := make([][]float64, channels)
	for ch := range channels {
		data[ch] = backing[ch*length : (ch+1)*length : (ch+1)*length]
	}

	return &Block{data: data, length: length, sampleRate: sampleRate}, nil
}

// Fill returns a block with every sample set to val.
func Fill(val float64, channels, length int, sampleRate float64) (*Block, error) {
	b, err := New(channels, length, sampleRate)
	if err != nil {
		return nil, err
	}

	for _, chData := range b.data {
		for i := range chData {
			chData[i] = val
		}
	}

	return b, nil
}

// FromChannels wraps data without copying. All channels must share one length.
func FromChannels(data [][]float64, sampleRate float64) (*Block, error) {
	length := 0
	if len(data) > 0 {
		length = len(data[0])
	}

	if err := validate(len(data), length, sampleRate); err != nil {
		return nil, err
	}

	for ch, chData := range data {
		if len(chData) != length {
			return nil, fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrRaggedChannels, ch, len(chData), length)
		}
	}

	return &Block{data: data, length: length, sampleRate: sampleRate}, nil
}

func (b *Block) Channels() int       { return len(b.data) }
func (b *Block) Len() int            { return b.length }
func (b *Block) SampleRate() float64 { return b.sampleRate }

// Duration in seconds.
func (b *Block) Duration() float64 { return float64(b.length) / b.sampleRate }

// Channel returns the samples of channel ch. It panics when ch is out of range.
func (b *Block) Channel(ch int) []float64 {
	return b.data[ch]
}

// Slice returns a view over frames [start, end). Indices are clamped to the
// block bounds; the view shares samples with b.
func (b *Block) Slice(start, end int) *Block {
	start = clamp(start, 0, b.length)
	end = clamp(end, start, b.length)

	data := make([][]float64, len(b.data))
	for ch, chData := range b.data {
		data[ch] = chData[start:end:end]
	}

	return &Block{data: data, length: end - start, sampleRate: b.sampleRate}
}

func (b *Block) compatible(other *Block) error {
	if other.sampleRate != b.sampleRate {
		return fmt.Errorf("%w: %v != %v", ErrSampleRateMismatch, other.sampleRate, b.sampleRate)
	}
	if len(other.data) != len(b.data) {
		return fmt.Errorf("%w: %d != %d", ErrChannelMismatch, len(other.data), len(b.data))
	}
	return nil
}

// Concat returns a new block holding b followed by other.
func (b *Block) Concat(other *Block) (*Block, error) {
	if err := b.compatible(other); err != nil {
		return nil, err
	}

	out, err := New(len(b.data), b.length+other.length, b.sampleRate)
	if err != nil {
		return nil, err
	}

	for ch, chData := range out.data {
		copy(chData, b.data[ch])
		copy(chData[b.length:], other.data[ch])
	}

	return out, nil
}

// Set writes other into b starting at frame offset.
func (b *Block) Set(other *Block, offset int) error {
	if err := b.compatible(other); err != nil {
		return err
	}
	if offset < 0 || offset+other.length > b.length {
		return fmt.Errorf("%w: %d frames at %d into %d", ErrOutOfRange, other.length, offset, b.length)
	}

	for ch, chData := range b.data {
		copy(chData[offset:], other.data[ch])
	}

	return nil
}

// Clone returns a deep copy of b.
func (b *Block) Clone() *Block {
	out, _ := New(len(b.data), b.length, b.sampleRate)
	for ch, chData := range out.data {
		copy(chData, b.data[ch])
	}
	return out
}

// Zero sets every sample to 0.
func (b *Block) Zero() {
	for _, chData := range b.data {
		clear(chData)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
