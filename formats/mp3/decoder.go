// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
)

// go-mp3 always yields interleaved stereo int16 little-endian PCM.
const (
	channels   = 2
	frameBytes = channels * 2
)

// mp3Reader is the part of gomp3.Decoder the decoder needs.
type mp3Reader interface {
	io.Reader
	SampleRate() int
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*block.Block, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return decode(dec)
}

func decode(dec mp3Reader) (*block.Block, error) {
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 frames: %w", err)
	}

	// drop a trailing partial frame
	data = data[:len(data)-len(data)%frameBytes]

	return audio.FromInt16LE(data, channels, dec.SampleRate())
}
