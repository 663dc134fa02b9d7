// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-vecmath"
	"github.com/ik5/audgraph/automation"
	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/mixing"
	"github.com/ik5/audgraph/schedule"
)

// paramChannels is the fixed input configuration of every Param: sources are
// folded to one channel by index.
var paramChannels = channelConfig{count: 1, mode: Explicit, interpretation: mixing.Discrete}

// Param is an automatable control value such as a gain. It keeps its own
// event queue and the generator currently shaping its output.
type Param struct {
	g     *Graph
	id    ObjectID
	input PortID

	rate         automation.Rate
	defaultValue float64
	value        float64

	gen    automation.Generator
	finish func()

	sched  schedule.Queue
	killed bool
}

func (g *Graph) newParam(owner *node, defaultValue float64, rate automation.Rate) *Param {
	p := &Param{
		g:            g,
		rate:         rate,
		defaultValue: defaultValue,
		value:        defaultValue,
	}
	p.id = g.add(p)
	p.input = g.newPort(inputPort, p.id)
	p.toConstant()

	owner.params = append(owner.params, p)

	return p
}

func (p *Param) DefaultValue() float64    { return p.defaultValue }
func (p *Param) Rate() automation.Rate    { return p.rate }
func (p *Param) channels() *channelConfig { return &paramChannels }

// Value is the intrinsic value: the last sample produced, or the value set
// directly since then.
func (p *Param) Value() float64 { return p.value }

// SetValue jumps to v right away, dropping every pending event.
func (p *Param) SetValue(v float64) error {
	if p.killed {
		return fmt.Errorf("set value: %w", ErrKilled)
	}

	p.value = v
	p.sched.Clear()
	p.toConstant()

	return nil
}

// SetValueAtTime jumps to v at time t.
func (p *Param) SetValueAtTime(v, t float64) error {
	if err := p.check(t); err != nil {
		return err
	}

	p.sched.Schedule(schedule.SetValue, t, func() error {
		p.value = v
		p.nextEvent()
		return nil
	})

	return nil
}

// LinearRampToValueAtTime ramps linearly from the current value to v,
// arriving at time t. The ramp starts now when it is the next pending event.
func (p *Param) LinearRampToValueAtTime(v, t float64) error {
	if err := p.check(t); err != nil {
		return err
	}

	p.sched.Schedule(schedule.LinearRampToValue, t, p.arrive(v), v)
	p.nextEvent()

	return nil
}

// ExponentialRampToValueAtTime ramps exponentially to v at time t. Both the
// current value and v must be positive; otherwise nothing is scheduled.
func (p *Param) ExponentialRampToValueAtTime(v, t float64) error {
	if err := p.check(t); err != nil {
		return err
	}
	if p.value <= 0 || v <= 0 {
		return fmt.Errorf("%w: from %v to %v", ErrNonPositiveValue, p.value, v)
	}

	p.sched.Schedule(schedule.ExponentialRampToValue, t, p.arrive(v), v)
	p.nextEvent()

	return nil
}

// SetTargetAtTime starts, at time t, an exponential approach toward target
// with time constant tau seconds. A zero tau jumps on the next sample.
func (p *Param) SetTargetAtTime(target, t, tau float64) error {
	if err := p.check(t); err != nil {
		return err
	}
	if tau < 0 || math.IsNaN(tau) {
		return fmt.Errorf("%w: %v", ErrInvalidTimeConstant, tau)
	}

	p.sched.Schedule(schedule.SetTarget, t, func() error {
		p.gen = automation.NewTargetDecay(p.rate, p.g.clock, p.value, target, tau)
		p.finish = func() {
			p.value = target
			p.nextEvent()
		}
		return nil
	})

	return nil
}

// SetValueCurveAtTime plays values spread evenly over duration seconds from
// time t. The slice is copied.
func (p *Param) SetValueCurveAtTime(values []float64, t, duration float64) error {
	if err := p.check(t); err != nil {
		return err
	}
	if len(values) == 0 {
		return ErrEmptyCurve
	}
	if !(duration > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}

	curve := slices.Clone(values)

	p.sched.Schedule(schedule.SetValueCurve, t, func() error {
		p.gen = automation.NewValueCurve(p.rate, p.g.clock, curve, t, duration)
		p.finish = func() {
			p.value = curve[len(curve)-1]
			p.nextEvent()
		}
		return nil
	})

	return nil
}

// CancelScheduledValues is not supported.
func (p *Param) CancelScheduledValues(float64) error {
	return fmt.Errorf("cancel scheduled values: %w", ErrNotImplemented)
}

func (p *Param) check(t float64) error {
	if p.killed {
		return ErrKilled
	}
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTime, t)
	}
	return nil
}

// arrive is the callback of a ramp event: the value lands on v and the next
// pending event takes over.
func (p *Param) arrive(v float64) schedule.Func {
	return func() error {
		p.value = v
		p.nextEvent()
		return nil
	}
}

// nextEvent picks the generator for whatever event is due next. Ramps start
// as soon as they are at the head of the queue; anything else holds the
// current value until it fires.
func (p *Param) nextEvent() {
	p.finish = nil

	ev, ok := p.sched.Peek()
	if !ok {
		p.toConstant()
		return
	}

	switch ev.Type {
	case schedule.LinearRampToValue:
		p.gen = automation.NewLinearRamp(p.rate, p.g.clock, p.value, ev.Args[0], p.g.now, ev.Time)
	case schedule.ExponentialRampToValue:
		p.gen = automation.NewExponentialRamp(p.rate, p.g.clock, p.value, ev.Args[0], p.g.now, ev.Time)
	default:
		p.toConstant()
	}
}

func (p *Param) toConstant() {
	p.gen = &automation.Constant{Value: p.value}
}

// tick runs due events, then the generator, into a fresh mono block. Audio
// connected to the param is added on top.
func (p *Param) tick() (*block.Block, error) {
	if p.killed {
		return nil, fmt.Errorf("tick param: %w", ErrKilled)
	}

	if err := p.sched.Tick(p.g.now); err != nil {
		return nil, fmt.Errorf("param: %w", err)
	}

	out := p.g.silence(1)
	data := out.Channel(0)

	done := p.gen.Fill(data, p.g.now)
	p.value = data[len(data)-1]
	if done && p.finish != nil {
		p.finish()
	}

	if len(p.g.ports[p.input].peers) > 0 {
		in, err := p.g.pullInput(p.input)
		if err != nil {
			return nil, err
		}
		vecmath.AddBlockInPlace(data, in.Channel(0))
	}

	return out, nil
}

func (p *Param) kill() {
	p.g.disconnectAll(p.input)
	p.sched.Clear()
	p.killed = true
}
