// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
	"github.com/jfreymuth/oggvorbis"
)

// readChunk is the number of samples asked for per Read.
const readChunk = 4096

// oggReader is the part of oggvorbis.Reader the decoder needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*block.Block, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return decode(dec)
}

func decode(dec oggReader) (*block.Block, error) {
	channels := dec.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidChannels, channels)
	}

	// Read takes and returns interleaved sample counts
	var data []float32
	buf := make([]float32, readChunk-readChunk%channels)

	for {
		n, err := dec.Read(buf)
		data = append(data, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading vorbis packets: %w", err)
		}
		if n == 0 {
			break
		}
	}

	data = data[:len(data)-len(data)%channels]

	return audio.FromFloat32(data, channels, dec.SampleRate())
}
