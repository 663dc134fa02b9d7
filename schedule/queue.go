// SPDX-License-Identifier: EPL-2.0

package schedule

import (
	"slices"
	"sort"
)

// Type tags an event. Within one batch of same-time events only the first
// event of each Type survives.
type Type int

const (
	SetValue Type = iota
	LinearRampToValue
	ExponentialRampToValue
	SetTarget
	SetValueCurve
	Start
	Stop
	OnEnded
	Kill
)

var typeNames = [...]string{
	SetValue:               "SetValue",
	LinearRampToValue:      "LinearRampToValue",
	ExponentialRampToValue: "ExponentialRampToValue",
	SetTarget:              "SetTarget",
	SetValueCurve:          "SetValueCurve",
	Start:                  "Start",
	Stop:                   "Stop",
	OnEnded:                "OnEnded",
	Kill:                   "Kill",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// Func is the callback of an event. A non-nil error aborts the tick.
type Func func() error

// Event is a one-shot callback due at Time (logical seconds).
type Event struct {
	Time float64
	Type Type
	Args []float64

	fn Func
}

// Queue keeps events in ascending time order. It is owned by a single object
// and is not safe for concurrent use.
type Queue struct {
	events []Event
}

// Schedule inserts an event after any event already queued for the same time.
// at must not be NaN; callers validate times before scheduling.
func (q *Queue) Schedule(typ Type, at float64, fn Func, args ...float64) {
	ev := Event{Time: at, Type: typ, fn: fn}
	if len(args) > 0 {
		ev.Args = args
	}

	idx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Time > at
	})

	q.events = slices.Insert(q.events, idx, ev)
}

// Tick fires every event due at or before now.
//
// Due events are gathered batch by batch (one batch per distinct time),
// keeping the first event of each type in a batch and discarding the rest.
// The gathered list is then executed last-collected first.
func (q *Queue) Tick(now float64) error {
	var firing []Event

	i := 0
	for i < len(q.events) && q.events[i].Time <= now {
		batchTime := q.events[i].Time
		batchStart := len(firing)

		for i < len(q.events) && q.events[i].Time == batchTime {
			ev := q.events[i]
			i++

			dup := slices.ContainsFunc(firing[batchStart:], func(other Event) bool {
				return other.Type == ev.Type
			})
			if !dup {
				firing = append(firing, ev)
			}
		}
	}

	if i == 0 {
		return nil
	}

	q.events = slices.Delete(q.events, 0, i)

	slices.Reverse(firing)
	for _, ev := range firing {
		if ev.fn == nil {
			continue
		}
		if err := ev.fn(); err != nil {
			return err
		}
	}

	return nil
}

// Peek returns the earliest pending event.
func (q *Queue) Peek() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

func (q *Queue) Len() int { return len(q.events) }

// Clear drops every pending event.
func (q *Queue) Clear() {
	q.events = q.events[:0]
}

// RemoveTypes drops every pending event whose type is listed.
func (q *Queue) RemoveTypes(types ...Type) {
	q.events = slices.DeleteFunc(q.events, func(ev Event) bool {
		return slices.Contains(types, ev.Type)
	})
}
