// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

// Package portaudio plays rendered blocks on the default output device with
// github.com/gordonklaus/portaudio. It needs the PortAudio C library and is
// only built with the portaudio build tag.
package portaudio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/ik5/audgraph/block"
)

var ErrInvalidLayout = errors.New("block does not match stream layout")

// Sink writes blocks to a blocking PortAudio stream. Write returns once the
// device has taken the block, so the device clock paces the render loop and
// Write always reports room.
type Sink struct {
	stream *portaudio.Stream
	out    [][]float32
}

// New initializes PortAudio and opens the default output with channels
// channels and blockSize frames per buffer, matching the render context.
func New(sampleRate float64, channels, blockSize int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, blockSize)
	}

	stream, err := portaudio.OpenDefaultStream(0, channels, sampleRate, blockSize, out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("portaudio open: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("portaudio start: %w", err)
	}

	return &Sink{stream: stream, out: out}, nil
}

func (s *Sink) Write(b *block.Block) (bool, error) {
	if b.Channels() != len(s.out) || b.Len() != len(s.out[0]) {
		return false, fmt.Errorf("%w: %dx%d", ErrInvalidLayout, b.Channels(), b.Len())
	}

	for ch, dst := range s.out {
		for i, v := range b.Channel(ch) {
			dst[i] = float32(v)
		}
	}

	if err := s.stream.Write(); err != nil {
		return false, fmt.Errorf("portaudio write: %w", err)
	}
	return true, nil
}

func (s *Sink) Drain() <-chan struct{} {
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	return ch
}

// Close lets the device play what it has, then releases it.
func (s *Sink) Close() error {
	defer portaudio.Terminate()

	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("portaudio stop: %w", err)
	}
	return s.stream.Close()
}

// End stops the device immediately.
func (s *Sink) End() error {
	defer portaudio.Terminate()

	if err := s.stream.Abort(); err != nil {
		return fmt.Errorf("portaudio abort: %w", err)
	}
	return s.stream.Close()
}
