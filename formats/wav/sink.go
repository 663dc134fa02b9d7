// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
)

// Sink streams rendered blocks into a 16-bit PCM WAV file. The header is
// patched with the final sizes on Close, so w must be seekable.
//
// A Sink never applies backpressure.
type Sink struct {
	enc *gowav.Encoder
	buf *goaudio.IntBuffer

	frames int
	closed bool
}

// NewSink prepares a WAV stream with the given layout. Nothing is written
// until the first block arrives.
func NewSink(w io.WriteSeeker, sampleRate float64, channels int) *Sink {
	sr := int(math.Round(sampleRate))

	return &Sink{
		enc: gowav.NewEncoder(w, sr, 16, channels, pcmFormat),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sr},
			SourceBitDepth: 16,
		},
	}
}

func (s *Sink) Write(b *block.Block) (bool, error) {
	if s.closed {
		return false, fmt.Errorf("write: %w", io.ErrClosedPipe)
	}
	if b.Channels() != s.buf.Format.NumChannels {
		return false, fmt.Errorf("%w: got %d channels, want %d",
			ErrUnsupportedWavLayout, b.Channels(), s.buf.Format.NumChannels)
	}

	s.buf.Data = audio.ToInts(s.buf.Data, b)
	if err := s.enc.Write(s.buf); err != nil {
		return false, fmt.Errorf("write: %w", err)
	}
	s.frames += b.Len()

	return true, nil
}

// Drain is always ready.
func (s *Sink) Drain() <-chan struct{} {
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	return ch
}

// Close finalizes the header.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// End finalizes the file as well; whatever was written stays playable.
func (s *Sink) End() error { return s.Close() }

// Frames is the number of frames written so far.
func (s *Sink) Frames() int { return s.frames }
