// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"slices"
	"testing"
)

func TestFromInts(t *testing.T) {
	t.Parallel()

	b, err := FromInts([]int{0, -32768, 16384, 8192}, 2, 16, 8000)
	if err != nil {
		t.Fatalf("FromInts() error = %v", err)
	}

	if b.Channels() != 2 || b.Len() != 2 || b.SampleRate() != 8000 {
		t.Fatalf("FromInts() = %d ch x %d @ %v, want 2 x 2 @ 8000", b.Channels(), b.Len(), b.SampleRate())
	}
	if got := b.Channel(0); !slices.Equal(got, []float64{0, 0.5}) {
		t.Errorf("Channel(0) = %v, want [0 0.5]", got)
	}
	if got := b.Channel(1); !slices.Equal(got, []float64{-1, 0.25}) {
		t.Errorf("Channel(1) = %v, want [-1 0.25]", got)
	}
}

func TestFromFloat32(t *testing.T) {
	t.Parallel()

	b, err := FromFloat32([]float32{0.5, -0.5, 0.25}, 1, 22050)
	if err != nil {
		t.Fatalf("FromFloat32() error = %v", err)
	}
	if got := b.Channel(0); !slices.Equal(got, []float64{0.5, -0.5, 0.25}) {
		t.Errorf("Channel(0) = %v", got)
	}
}

func TestFromInt16LE(t *testing.T) {
	t.Parallel()

	// 0x4000 = 16384, 0xC000 = -16384
	data := []byte{0x00, 0x40, 0x00, 0xC0, 0xFF}

	b, err := FromInt16LE(data, 2, 44100)
	if err != nil {
		t.Fatalf("FromInt16LE() error = %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	if b.Channel(0)[0] != 0.5 || b.Channel(1)[0] != -0.5 {
		t.Errorf("frame = %v, %v, want 0.5, -0.5", b.Channel(0)[0], b.Channel(1)[0])
	}
}

func TestDeinterleave_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []float32
		channels int
		rate     int
		err      error
	}{
		{"partial frame", []float32{1, 2, 3}, 2, 44100, ErrPartialFrame},
		{"no channels", []float32{1}, 0, 44100, ErrInvalidChannels},
		{"no rate", []float32{1}, 1, 0, ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := FromFloat32(tt.data, tt.channels, tt.rate); !errors.Is(err, tt.err) {
				t.Errorf("FromFloat32() error = %v, want %v", err, tt.err)
			}
		})
	}
}
