// SPDX-License-Identifier: EPL-2.0

package mixing

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audgraph/block"
)

const (
	testLength = 16
	tolerance  = 1e-12
)

// channelBlock returns a block where channel n holds vals[n] everywhere.
func channelBlock(t *testing.T, vals ...float64) *block.Block {
	t.Helper()

	b, err := block.New(len(vals), testLength, 44100)
	if err != nil {
		t.Fatalf("block.New() error = %v", err)
	}
	for ch, v := range vals {
		data := b.Channel(ch)
		for i := range data {
			data[i] = v
		}
	}

	return b
}

func zeroBlock(t *testing.T, channels int) *block.Block {
	t.Helper()

	b, err := block.New(channels, testLength, 44100)
	if err != nil {
		t.Fatalf("block.New() error = %v", err)
	}
	return b
}

func assertChannels(t *testing.T, b *block.Block, want []float64) {
	t.Helper()

	if b.Channels() != len(want) {
		t.Fatalf("Channels() = %d, want %d", b.Channels(), len(want))
	}
	for ch, w := range want {
		for i, v := range b.Channel(ch) {
			if math.Abs(v-w) > tolerance {
				t.Fatalf("Channel(%d)[%d] = %v, want %v", ch, i, v, w)
			}
		}
	}
}

func TestSpeakerRules(t *testing.T) {
	t.Parallel()

	var (
		l  = 0.1
		r  = 0.2
		c  = 0.3
		lf = 0.4
		sl = 0.5
		sr = 0.6
		m  = 0.7
	)

	tests := []struct {
		name string
		in   []float64
		dst  int
		want []float64
	}{
		{"1->2 duplicates unscaled", []float64{m}, 2, []float64{m, m}},
		{"1->4 front only", []float64{m}, 4, []float64{m, m, 0, 0}},
		{"1->6 center only", []float64{m}, 6, []float64{0, 0, m, 0, 0, 0}},
		{"2->4", []float64{l, r}, 4, []float64{l, r, 0, 0}},
		{"2->6", []float64{l, r}, 6, []float64{l, r, 0, 0, 0, 0}},
		{"4->6", []float64{l, r, sl, sr}, 6, []float64{l, r, 0, 0, sl, sr}},
		{"2->1", []float64{l, r}, 1, []float64{0.5 * (l + r)}},
		{"4->1", []float64{l, r, sl, sr}, 1, []float64{0.25 * (l + r + sl + sr)}},
		{"4->2", []float64{l, r, sl, sr}, 2, []float64{0.5 * (l + sl), 0.5 * (r + sr)}},
		{
			"6->1",
			[]float64{l, r, c, lf, sl, sr}, 1,
			[]float64{Sqrt1_2*(l+r) + c + 0.5*(sl+sr)},
		},
		{
			"6->2",
			[]float64{l, r, c, lf, sl, sr}, 2,
			[]float64{l + Sqrt1_2*(c+sl), r + Sqrt1_2*(c+sr)},
		},
		{
			"6->4",
			[]float64{l, r, c, lf, sl, sr}, 4,
			[]float64{l + Sqrt1_2*c, r + Sqrt1_2*c, sl, sr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := channelBlock(t, tt.in...)
			out := zeroBlock(t, tt.dst)

			mixer := New(len(tt.in), tt.dst, Speakers)
			if mixer.Rule() != Speaker {
				t.Fatalf("Rule() = %v, want speaker", mixer.Rule())
			}

			mixer.Mix(in, out)
			assertChannels(t, out, tt.want)
		})
	}
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	for _, interp := range []Interpretation{Speakers, Discrete} {
		in := channelBlock(t, 0.1, -0.2, 0.3)
		out := zeroBlock(t, 3)

		mixer := New(3, 3, interp)
		if mixer.Rule() != Identity {
			t.Fatalf("%v: Rule() = %v, want identity", interp, mixer.Rule())
		}

		mixer.Mix(in, out)
		assertChannels(t, out, []float64{0.1, -0.2, 0.3})
	}
}

func TestDiscrete(t *testing.T) {
	t.Parallel()

	t.Run("up-mix leaves extra channels untouched", func(t *testing.T) {
		t.Parallel()

		in := channelBlock(t, 0.1, 0.2)
		out := zeroBlock(t, 6)

		mixer := New(2, 6, Discrete)
		if mixer.Rule() != DiscreteUpMix {
			t.Fatalf("Rule() = %v, want discrete-up-mix", mixer.Rule())
		}
		mixer.Mix(in, out)
		assertChannels(t, out, []float64{0.1, 0.2, 0, 0, 0, 0})
	})

	t.Run("down-mix drops extra channels", func(t *testing.T) {
		t.Parallel()

		in := channelBlock(t, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6)
		out := zeroBlock(t, 2)

		mixer := New(6, 2, Discrete)
		if mixer.Rule() != DiscreteDownMix {
			t.Fatalf("Rule() = %v, want discrete-down-mix", mixer.Rule())
		}
		mixer.Mix(in, out)
		assertChannels(t, out, []float64{0.1, 0.2})
	})

	t.Run("speakers without a rule falls back", func(t *testing.T) {
		t.Parallel()

		in := channelBlock(t, 0.1, 0.2, 0.3)
		out := zeroBlock(t, 5)

		mixer := New(3, 5, Speakers)
		if mixer.Rule() != DiscreteUpMix {
			t.Fatalf("Rule() = %v, want discrete-up-mix", mixer.Rule())
		}
		mixer.Mix(in, out)
		assertChannels(t, out, []float64{0.1, 0.2, 0.3, 0, 0})
	})

	t.Run("discrete ignores speaker rules", func(t *testing.T) {
		t.Parallel()

		in := channelBlock(t, 0.7)
		out := zeroBlock(t, 2)

		New(1, 2, Discrete).Mix(in, out)
		assertChannels(t, out, []float64{0.7, 0})
	})
}

func TestMix_Accumulates(t *testing.T) {
	t.Parallel()

	a := channelBlock(t, 0.25)
	b := channelBlock(t, 0.5, 0.125)
	out := zeroBlock(t, 2)

	New(1, 2, Speakers).Mix(a, out)
	New(2, 2, Speakers).Mix(b, out)

	assertChannels(t, out, []float64{0.75, 0.375})
}

func TestParseInterpretation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Interpretation
		err  error
	}{
		{"speakers", Speakers, nil},
		{"discrete", Discrete, nil},
		{"surround", 0, ErrInvalidInterpretation},
		{"", 0, ErrInvalidInterpretation},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseInterpretation(tt.in)
			if !errors.Is(err, tt.err) {
				t.Fatalf("ParseInterpretation(%q) error = %v, want %v", tt.in, err, tt.err)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseInterpretation(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if err == nil && got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}

	if Interpretation(7).Valid() {
		t.Error("Interpretation(7).Valid() = true, want false")
	}
}

func BenchmarkMix_SurroundToStereo(b *testing.B) {
	in, _ := block.Fill(0.5, 6, 128, 44100)
	out, _ := block.New(2, 128, 44100)
	mixer := New(6, 2, Speakers)

	b.ReportAllocs()

	for b.Loop() {
		mixer.Mix(in, out)
	}
}
