// SPDX-License-Identifier: EPL-2.0

package schedule

import (
	"errors"
	"slices"
	"testing"
)

type recorder struct {
	fired []string
}

func (r *recorder) fn(name string) Func {
	return func() error {
		r.fired = append(r.fired, name)
		return nil
	}
}

func TestSchedule_KeepsTimeOrder(t *testing.T) {
	t.Parallel()

	var q Queue
	q.Schedule(Start, 3, nil)
	q.Schedule(Start, 1, nil)
	q.Schedule(Stop, 2, nil)
	q.Schedule(Kill, 1, nil)

	var times []float64
	var types []Type
	for _, ev := range q.events {
		times = append(times, ev.Time)
		types = append(types, ev.Type)
	}

	if !slices.Equal(times, []float64{1, 1, 2, 3}) {
		t.Errorf("times = %v, want [1 1 2 3]", times)
	}
	// Ties keep insertion order.
	if types[0] != Start || types[1] != Kill {
		t.Errorf("tie order = %v, %v, want Start, Kill", types[0], types[1])
	}
}

func TestTick_FiresEachEventOnce(t *testing.T) {
	t.Parallel()

	var q Queue
	r := &recorder{}
	q.Schedule(SetValue, 0.1, r.fn("a"))
	q.Schedule(SetValue, 0.2, r.fn("b"))
	q.Schedule(SetValue, 0.3, r.fn("c"))

	if err := q.Tick(1); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if err := q.Tick(2); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if len(r.fired) != 3 {
		t.Fatalf("fired %d events, want 3", len(r.fired))
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestTick_LaterBatchFiresFirst(t *testing.T) {
	t.Parallel()

	var q Queue
	r := &recorder{}
	q.Schedule(SetValue, 0.1, r.fn("t1"))
	q.Schedule(SetValue, 0.2, r.fn("t2"))
	q.Schedule(SetValue, 0.3, r.fn("t3"))

	if err := q.Tick(0.3); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	want := []string{"t3", "t2", "t1"}
	if !slices.Equal(r.fired, want) {
		t.Errorf("fired = %v, want %v", r.fired, want)
	}
}

func TestTick_ReverseWithinBatch(t *testing.T) {
	t.Parallel()

	var q Queue
	r := &recorder{}
	q.Schedule(Start, 1, r.fn("start"))
	q.Schedule(Stop, 1, r.fn("stop"))
	q.Schedule(Kill, 1, r.fn("kill"))

	if err := q.Tick(1); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	want := []string{"kill", "stop", "start"}
	if !slices.Equal(r.fired, want) {
		t.Errorf("fired = %v, want %v", r.fired, want)
	}
}

func TestTick_SameTypeSameTimeDeduplicated(t *testing.T) {
	t.Parallel()

	var q Queue
	r := &recorder{}
	q.Schedule(SetValue, 0.5, r.fn("first"))
	q.Schedule(SetValue, 0.5, r.fn("second"))

	if err := q.Tick(1); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if !slices.Equal(r.fired, []string{"first"}) {
		t.Errorf("fired = %v, want [first]", r.fired)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0 (duplicate must be dequeued)", q.Len())
	}
}

func TestTick_SameTypeDifferentTimesBothFire(t *testing.T) {
	t.Parallel()

	var q Queue
	r := &recorder{}
	q.Schedule(SetValue, 0.5, r.fn("a"))
	q.Schedule(SetValue, 0.6, r.fn("b"))

	if err := q.Tick(1); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if !slices.Equal(r.fired, []string{"b", "a"}) {
		t.Errorf("fired = %v, want [b a]", r.fired)
	}
}

func TestTick_FutureEventsStay(t *testing.T) {
	t.Parallel()

	var q Queue
	r := &recorder{}
	q.Schedule(Start, 0.5, r.fn("due"))
	q.Schedule(Stop, 2, r.fn("later"))

	if err := q.Tick(1); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if !slices.Equal(r.fired, []string{"due"}) {
		t.Errorf("fired = %v, want [due]", r.fired)
	}

	ev, ok := q.Peek()
	if !ok || ev.Type != Stop || ev.Time != 2 {
		t.Errorf("Peek() = %+v, %v, want Stop at 2", ev, ok)
	}
}

func TestTick_ErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	var q Queue
	r := &recorder{}
	q.Schedule(Start, 0.1, r.fn("early"))
	q.Schedule(Stop, 0.2, func() error { return boom })

	err := q.Tick(1)
	if !errors.Is(err, boom) {
		t.Fatalf("Tick() error = %v, want boom", err)
	}

	// The later batch fires first, so the error stops the earlier one.
	if len(r.fired) != 0 {
		t.Errorf("fired = %v, want none", r.fired)
	}
}

func TestTick_CallbackSeesRemainingQueue(t *testing.T) {
	t.Parallel()

	var q Queue
	var next Event
	q.Schedule(SetValue, 0.1, func() error {
		next, _ = q.Peek()
		return nil
	})
	q.Schedule(LinearRampToValue, 5, nil, 0.75)

	if err := q.Tick(1); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if next.Type != LinearRampToValue || len(next.Args) != 1 || next.Args[0] != 0.75 {
		t.Errorf("Peek() in callback = %+v, want pending ramp", next)
	}
}

func TestClearAndRemoveTypes(t *testing.T) {
	t.Parallel()

	var q Queue
	q.Schedule(OnEnded, 1, nil)
	q.Schedule(Kill, 1, nil)
	q.Schedule(Stop, 2, nil)

	q.RemoveTypes(OnEnded, Kill)
	if q.Len() != 1 {
		t.Fatalf("Len() after RemoveTypes = %d, want 1", q.Len())
	}

	q.Clear()
	if _, ok := q.Peek(); ok {
		t.Error("Peek() after Clear() ok = true, want false")
	}
}

func TestType_String(t *testing.T) {
	t.Parallel()

	if got := ExponentialRampToValue.String(); got != "ExponentialRampToValue" {
		t.Errorf("String() = %q", got)
	}
	if got := Type(99).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}

func BenchmarkScheduleTick(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		var q Queue
		for i := range 64 {
			q.Schedule(Type(i%5), float64(i%16), nil)
		}
		_ = q.Tick(100)
	}
}
