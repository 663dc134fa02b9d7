// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
)

// readChunk is the number of samples asked for per PCMBuffer call.
const readChunk = 4096

// aiffReader is the part of aiff.Decoder the decoder needs.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*block.Block, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return decode(dec, bitDepth)
}

func decode(dec aiffReader, bitDepth int) (*block.Block, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	chunk := readChunk - readChunk%format.NumChannels
	buf := &goaudio.IntBuffer{Data: make([]int, chunk), Format: format}

	var data []int
	for {
		n, err := dec.PCMBuffer(buf)
		data = append(data, buf.Data[:n]...)

		if errors.Is(err, io.EOF) || (err == nil && n < chunk) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading aiff samples: %w", err)
		}
	}

	data = data[:len(data)-len(data)%format.NumChannels]

	return audio.FromInts(data, format.NumChannels, bitDepth, format.SampleRate)
}
