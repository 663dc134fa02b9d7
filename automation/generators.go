// SPDX-License-Identifier: EPL-2.0

package automation

import (
	"fmt"
	"math"
)

// Rate says how often a control value is recomputed.
type Rate int

const (
	// ARate recomputes the value for every sample.
	ARate Rate = iota
	// KRate recomputes the value once per block.
	KRate
)

func (r Rate) String() string {
	switch r {
	case ARate:
		return "a-rate"
	case KRate:
		return "k-rate"
	}
	return fmt.Sprintf("Rate(%d)", int(r))
}

func (r Rate) Valid() bool { return r == ARate || r == KRate }

// Clock describes the render grid generators run on.
type Clock struct {
	SampleRate float64
	BlockSize  int
}

func (c Clock) samplePeriod() float64 { return 1 / c.SampleRate }
func (c Clock) blockPeriod() float64  { return float64(c.BlockSize) / c.SampleRate }

// Generator writes one block of control values. now is the logical time of
// the first sample. done reports that the generator reached its end and the
// owner should move on to whatever comes next.
type Generator interface {
	Fill(dst []float64, now float64) (done bool)
}

// Constant holds one value.
type Constant struct {
	Value float64
}

func (g *Constant) Fill(dst []float64, _ float64) bool {
	for i := range dst {
		dst[i] = g.Value
	}
	return false
}

// LinearRamp moves from one value to another at a constant step.
type LinearRamp struct {
	rate   Rate
	target float64
	rising bool
	series ArithmeticSeries
}

// NewLinearRamp builds a ramp that starts at from on startTime and arrives at
// to on endTime. A ramp with no length collapses to a Constant at to.
func NewLinearRamp(rate Rate, c Clock, from, to, startTime, endTime float64) Generator {
	span := endTime - startTime
	if span <= 0 {
		return &Constant{Value: to}
	}

	period := c.samplePeriod()
	if rate == KRate {
		period = c.blockPeriod()
	}

	step := (to - from) / span * period

	return &LinearRamp{
		rate:   rate,
		target: to,
		rising: step > 0,
		series: ArithmeticSeries{Value: from, Step: step},
	}
}

func (g *LinearRamp) Fill(dst []float64, _ float64) bool {
	if g.rate == KRate {
		v := clipToward(g.series.Value, g.target, g.rising)
		for i := range dst {
			dst[i] = v
		}
		g.series.Next()
		return false
	}

	for i := range dst {
		dst[i] = clipToward(g.series.Value, g.target, g.rising)
		g.series.Next()
	}
	return false
}

// ExponentialRamp moves from one value to another by a constant ratio. Both
// ends must be strictly positive; callers check that.
type ExponentialRamp struct {
	rate   Rate
	target float64
	rising bool
	series GeometricSeries
}

// NewExponentialRamp builds a ramp from from on startTime to to on endTime.
// A ramp with no length collapses to a Constant at to.
func NewExponentialRamp(rate Rate, c Clock, from, to, startTime, endTime float64) Generator {
	span := endTime - startTime
	if span <= 0 {
		return &Constant{Value: to}
	}

	steps := c.SampleRate * span
	if rate == KRate {
		steps /= float64(c.BlockSize)
	}

	ratio := math.Pow(to/from, 1/steps)

	return &ExponentialRamp{
		rate:   rate,
		target: to,
		rising: ratio > 1,
		series: GeometricSeries{Value: from, Ratio: ratio},
	}
}

func (g *ExponentialRamp) Fill(dst []float64, _ float64) bool {
	if g.rate == KRate {
		v := clipToward(g.series.Value, g.target, g.rising)
		for i := range dst {
			dst[i] = v
		}
		g.series.Next()
		return false
	}

	for i := range dst {
		dst[i] = clipToward(g.series.Value, g.target, g.rising)
		g.series.Next()
	}
	return false
}

// TargetDecay approaches target exponentially with time constant tau.
type TargetDecay struct {
	rate   Rate
	target float64
	rising bool
	offset GeometricSeries
}

// NewTargetDecay starts a decay from the current value toward target.
func NewTargetDecay(rate Rate, c Clock, from, target, tau float64) *TargetDecay {
	period := c.samplePeriod()
	if rate == KRate {
		period = c.blockPeriod()
	}

	u0 := from - target

	return &TargetDecay{
		rate:   rate,
		target: target,
		rising: u0 < 0,
		offset: GeometricSeries{Value: u0, Ratio: math.Exp(-period / tau)},
	}
}

// Fill reports done only when the last sample lands exactly on the target.
// Only the a-rate decay ever finishes.
func (g *TargetDecay) Fill(dst []float64, _ float64) bool {
	if g.rate == KRate {
		v := g.target + g.offset.Value
		for i := range dst {
			dst[i] = v
		}
		g.offset.Next()
		return false
	}

	for i := range dst {
		dst[i] = clipToward(g.target+g.offset.Value, g.target, g.rising)
		g.offset.Next()
	}

	return len(dst) > 0 && dst[len(dst)-1] == g.target
}

// ValueCurve steps through a table of values spread over duration seconds.
type ValueCurve struct {
	rate      Rate
	values    []float64
	coeff     float64
	startTime float64
	duration  float64
	period    float64
}

// NewValueCurve plays values starting at startTime. values must not be empty
// and duration must be positive; callers check that.
func NewValueCurve(rate Rate, c Clock, values []float64, startTime, duration float64) *ValueCurve {
	return &ValueCurve{
		rate:      rate,
		values:    values,
		coeff:     float64(len(values)) / duration,
		startTime: startTime,
		duration:  duration,
		period:    c.samplePeriod(),
	}
}

func (g *ValueCurve) at(t float64) float64 {
	idx := int(math.Round(g.coeff * (t - g.startTime)))
	idx = max(0, min(idx, len(g.values)-1))
	return g.values[idx]
}

// Fill reports done once the a-rate curve has covered its duration. The
// k-rate curve evaluates once at now and holds its last value forever.
func (g *ValueCurve) Fill(dst []float64, now float64) bool {
	if g.rate == KRate {
		v := g.at(now)
		for i := range dst {
			dst[i] = v
		}
		return false
	}

	t := now
	for i := range dst {
		dst[i] = g.at(t)
		t += g.period
	}

	return t-g.startTime >= g.duration
}
