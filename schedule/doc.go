// SPDX-License-Identifier: EPL-2.0

// Package schedule implements the time-ordered event queue carried by every
// node and automation parameter.
//
// Each owner keeps its own Queue and ticks it once per rendered block with the
// current logical time:
//
//	var q schedule.Queue
//	q.Schedule(schedule.Start, 0.5, func() error { ... })
//	q.Schedule(schedule.Stop, 2.0, func() error { ... })
//	err := q.Tick(currentTime)
//
// # Firing order
//
// All events due by now are collected batch by batch, one batch per distinct
// time. Inside a batch only the first event of each Type is kept; later
// duplicates are dropped without running. The collected list then runs in
// reverse: the latest batch first, and inside a batch the last kept event
// first. A callback error stops the remaining callbacks and is returned from
// Tick.
package schedule
