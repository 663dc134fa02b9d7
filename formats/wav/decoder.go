// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
)

// pcmFormat is the WAVE_FORMAT_PCM tag.
const pcmFormat = 1

type Decoder struct{}

// Decode reads a whole integer PCM WAV stream (16, 24 or 32 bit).
func (Decoder) Decode(r io.Reader) (*block.Block, error) {
	// go-audio needs to seek between chunks
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading wav samples: %w", err)
	}
	if buf.Format == nil {
		return nil, ErrUnsupportedWavLayout
	}

	return audio.FromInts(buf.Data, buf.Format.NumChannels, bitDepth, buf.Format.SampleRate)
}
