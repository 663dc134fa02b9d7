// SPDX-License-Identifier: EPL-2.0

package automation

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func fillBlocks(g Generator, blocks, size int, period float64) [][]float64 {
	out := make([][]float64, blocks)
	now := 0.0
	for i := range blocks {
		out[i] = make([]float64, size)
		g.Fill(out[i], now)
		now += period
	}
	return out
}

func assertClose(t *testing.T, name string, got, want []float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tolerance {
			t.Fatalf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestArithmeticSeries(t *testing.T) {
	t.Parallel()

	s := ArithmeticSeries{Value: 1, Step: 0.5}
	for _, want := range []float64{1.5, 2, 2.5} {
		if got := s.Next(); got != want {
			t.Fatalf("Next() = %v, want %v", got, want)
		}
	}
}

func TestGeometricSeries(t *testing.T) {
	t.Parallel()

	s := GeometricSeries{Value: 1, Ratio: 2}
	for _, want := range []float64{2, 4, 8} {
		if got := s.Next(); got != want {
			t.Fatalf("Next() = %v, want %v", got, want)
		}
	}
}

func TestConstant(t *testing.T) {
	t.Parallel()

	dst := make([]float64, 4)
	if done := (&Constant{Value: 0.3}).Fill(dst, 0); done {
		t.Error("Fill() done = true, want false")
	}
	assertClose(t, "dst", dst, []float64{0.3, 0.3, 0.3, 0.3})
}

func TestLinearRamp_ARate(t *testing.T) {
	t.Parallel()

	c := Clock{SampleRate: 8, BlockSize: 8}
	g := NewLinearRamp(ARate, c, 0, 1, 0, 1)

	blocks := fillBlocks(g, 3, 8, 1)

	assertClose(t, "block 0", blocks[0], []float64{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 0.875})
	assertClose(t, "block 1", blocks[1], []float64{1, 1, 1, 1, 1, 1, 1, 1})
	assertClose(t, "block 2", blocks[2], []float64{1, 1, 1, 1, 1, 1, 1, 1})
}

func TestLinearRamp_NeverPassesTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to float64
	}{
		{"rising", 0, 1},
		{"falling", 1, 0},
		{"negative", -0.3, -0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := Clock{SampleRate: 44100, BlockSize: 128}
			g := NewLinearRamp(ARate, c, tt.from, tt.to, 0, 0.01)

			first := true
			for _, blk := range fillBlocks(g, 8, 128, 128.0/44100) {
				for _, v := range blk {
					if tt.to > tt.from && (v > tt.to || v < tt.from) {
						t.Fatalf("sample %v outside [%v, %v]", v, tt.from, tt.to)
					}
					if tt.to < tt.from && (v < tt.to || v > tt.from) {
						t.Fatalf("sample %v outside [%v, %v]", v, tt.to, tt.from)
					}
					if first && v != tt.from {
						t.Fatalf("first sample = %v, want %v", v, tt.from)
					}
					first = false
				}
			}
		})
	}
}

func TestLinearRamp_KRate(t *testing.T) {
	t.Parallel()

	c := Clock{SampleRate: 8, BlockSize: 4}
	g := NewLinearRamp(KRate, c, 0, 1, 0, 1)

	blocks := fillBlocks(g, 4, 4, 0.5)

	for i, want := range []float64{0, 0.5, 1, 1} {
		assertClose(t, "block", blocks[i], []float64{want, want, want, want})
	}
}

func TestLinearRamp_NoLength(t *testing.T) {
	t.Parallel()

	c := Clock{SampleRate: 8, BlockSize: 4}
	g := NewLinearRamp(ARate, c, 0, 0.7, 1, 1)

	if _, ok := g.(*Constant); !ok {
		t.Fatalf("NewLinearRamp() = %T, want *Constant", g)
	}
}

func TestExponentialRamp(t *testing.T) {
	t.Parallel()

	t.Run("rising a-rate", func(t *testing.T) {
		t.Parallel()

		c := Clock{SampleRate: 4, BlockSize: 4}
		g := NewExponentialRamp(ARate, c, 1, 16, 0, 1)

		blocks := fillBlocks(g, 2, 4, 1)
		assertClose(t, "block 0", blocks[0], []float64{1, 2, 4, 8})
		assertClose(t, "block 1", blocks[1], []float64{16, 16, 16, 16})
	})

	t.Run("falling k-rate", func(t *testing.T) {
		t.Parallel()

		c := Clock{SampleRate: 8, BlockSize: 4}
		g := NewExponentialRamp(KRate, c, 1, 0.25, 0, 1)

		blocks := fillBlocks(g, 4, 4, 0.5)
		for i, want := range []float64{1, 0.5, 0.25, 0.25} {
			assertClose(t, "block", blocks[i], []float64{want, want, want, want})
		}
	})

	t.Run("no length", func(t *testing.T) {
		t.Parallel()

		g := NewExponentialRamp(ARate, Clock{SampleRate: 8, BlockSize: 4}, 1, 2, 3, 2)
		if _, ok := g.(*Constant); !ok {
			t.Fatalf("NewExponentialRamp() = %T, want *Constant", g)
		}
	})
}

func TestTargetDecay(t *testing.T) {
	t.Parallel()

	t.Run("approaches target", func(t *testing.T) {
		t.Parallel()

		c := Clock{SampleRate: 100, BlockSize: 16}
		g := NewTargetDecay(ARate, c, 1, 0.2, 0.05)

		dst := make([]float64, 16)
		if done := g.Fill(dst, 0); done {
			t.Fatal("Fill() done = true, want false")
		}

		ratio := math.Exp(-0.01 / 0.05)
		for i, v := range dst {
			want := 0.2 + 0.8*math.Pow(ratio, float64(i))
			if math.Abs(v-want) > tolerance {
				t.Fatalf("dst[%d] = %v, want %v", i, v, want)
			}
			if v < 0.2 {
				t.Fatalf("dst[%d] = %v passed the target", i, v)
			}
		}
	})

	t.Run("zero time constant lands on target", func(t *testing.T) {
		t.Parallel()

		c := Clock{SampleRate: 100, BlockSize: 4}
		g := NewTargetDecay(ARate, c, 0.1, 0.6, 0)

		dst := make([]float64, 4)
		if done := g.Fill(dst, 0); !done {
			t.Fatal("Fill() done = false, want true")
		}
		assertClose(t, "dst", dst, []float64{0.1, 0.6, 0.6, 0.6})
	})

	t.Run("k-rate holds per block", func(t *testing.T) {
		t.Parallel()

		c := Clock{SampleRate: 100, BlockSize: 4}
		g := NewTargetDecay(KRate, c, 1, 0, 0.04)

		blocks := fillBlocks(g, 2, 4, 0.04)
		assertClose(t, "block 0", blocks[0], []float64{1, 1, 1, 1})

		want := math.Exp(-1)
		assertClose(t, "block 1", blocks[1], []float64{want, want, want, want})
	})
}

func TestValueCurve(t *testing.T) {
	t.Parallel()

	values := []float64{10, 20, 30, 40}

	t.Run("a-rate", func(t *testing.T) {
		t.Parallel()

		c := Clock{SampleRate: 4, BlockSize: 4}
		g := NewValueCurve(ARate, c, values, 0, 1)

		dst := make([]float64, 4)
		if done := g.Fill(dst, 0); !done {
			t.Error("Fill() done = false, want true")
		}
		assertClose(t, "dst", dst, values)
	})

	t.Run("clamps before and after", func(t *testing.T) {
		t.Parallel()

		c := Clock{SampleRate: 4, BlockSize: 2}
		g := NewValueCurve(ARate, c, values, 1, 1)

		before := make([]float64, 2)
		g.Fill(before, 0)
		assertClose(t, "before", before, []float64{10, 10})

		after := make([]float64, 2)
		g.Fill(after, 5)
		assertClose(t, "after", after, []float64{40, 40})
	})

	t.Run("k-rate", func(t *testing.T) {
		t.Parallel()

		c := Clock{SampleRate: 8, BlockSize: 4}
		g := NewValueCurve(KRate, c, values, 0, 1)

		blocks := fillBlocks(g, 3, 4, 0.5)
		for i, want := range []float64{10, 30, 40} {
			assertClose(t, "block", blocks[i], []float64{want, want, want, want})
		}
	})
}

func TestRate_String(t *testing.T) {
	t.Parallel()

	if ARate.String() != "a-rate" || KRate.String() != "k-rate" {
		t.Errorf("String() = %q, %q", ARate, KRate)
	}
	if Rate(5).Valid() {
		t.Error("Rate(5).Valid() = true, want false")
	}
}

func BenchmarkLinearRamp_ARate(b *testing.B) {
	c := Clock{SampleRate: 44100, BlockSize: 128}
	g := NewLinearRamp(ARate, c, 0, 1, 0, 10)
	dst := make([]float64, 128)

	b.ReportAllocs()

	for b.Loop() {
		g.Fill(dst, 0)
	}
}
