// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audgraph/block"
)

func TestSink_StreamsBlocks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	sink := NewSink(f, 8000, 2)

	for _, v := range []float64{0.5, -0.25} {
		b, _ := block.Fill(v, 2, 64, 8000)

		room, err := sink.Write(b)
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if !room {
			t.Fatal("Write() room = false, want true")
		}
	}

	select {
	case <-sink.Drain():
	default:
		t.Fatal("Drain() not ready")
	}

	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if sink.Frames() != 128 {
		t.Errorf("Frames() = %d, want 128", sink.Frames())
	}

	r, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	got, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Channels() != 2 || got.Len() != 128 {
		t.Fatalf("shape = %dx%d, want 2x128", got.Channels(), got.Len())
	}
	if v := got.Channel(1)[0]; math.Abs(v-0.5) > pcmTolerance {
		t.Errorf("Channel(1)[0] = %v, want 0.5", v)
	}
	if v := got.Channel(0)[127]; math.Abs(v+0.25) > pcmTolerance {
		t.Errorf("Channel(0)[127] = %v, want -0.25", v)
	}
}

func TestSink_Errors(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	sink := NewSink(f, 8000, 1)

	stereo, _ := block.New(2, 16, 8000)
	if _, err := sink.Write(stereo); !errors.Is(err, ErrUnsupportedWavLayout) {
		t.Errorf("Write(stereo) error = %v, want ErrUnsupportedWavLayout", err)
	}

	mono, _ := block.New(1, 16, 8000)
	if _, err := sink.Write(mono); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if err := sink.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := sink.Write(mono); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("Write() after Close error = %v, want io.ErrClosedPipe", err)
	}
}
