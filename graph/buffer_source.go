// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"
	"math"

	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/mixing"
	"github.com/ik5/audgraph/schedule"
)

// State is where a BufferSource is in its life.
type State int

const (
	Idle State = iota
	Playing
	Looping
	Stopped
	Killed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Looping:
		return "looping"
	case Stopped:
		return "stopped"
	case Killed:
		return "killed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StartOption adjusts a call to BufferSource.Start.
type StartOption func(*startConfig)

type startConfig struct {
	offset   float64
	duration float64
}

// WithOffset starts playback offset seconds into the buffer.
func WithOffset(offset float64) StartOption {
	return func(c *startConfig) { c.offset = offset }
}

// WithDuration plays at most duration seconds of the buffer.
func WithDuration(duration float64) StartOption {
	return func(c *startConfig) { c.duration = duration }
}

// BufferSource plays a storage buffer, once or in a loop. Positions are
// counted in frames of the graph's sample rate.
type BufferSource struct {
	node

	buffer    *block.Block
	loop      bool
	loopStart float64
	loopEnd   float64
	onEnded   func()

	// scheduled is set by the first Start call, started once it fires.
	scheduled bool
	started   bool
	playing   bool

	// duration of the window, re-applied on every loop wrap
	duration float64

	// cursor window into buffer, [cursor, cursorEnd)
	cursor    int
	cursorEnd int
}

// NewBufferSource adds an idle BufferSource to g.
func (g *Graph) NewBufferSource() *BufferSource {
	n := &BufferSource{}
	n.setup(g, n, KindBufferSource, 0, 1, channelConfig{count: 2, mode: Max, interpretation: mixing.Speakers})
	return n
}

func (n *BufferSource) Buffer() *block.Block   { return n.buffer }
func (n *BufferSource) Loop() bool             { return n.loop }
func (n *BufferSource) LoopStart() float64     { return n.loopStart }
func (n *BufferSource) LoopEnd() float64       { return n.loopEnd }
func (n *BufferSource) SetLoop(loop bool)      { n.loop = loop }
func (n *BufferSource) SetLoopStart(t float64) { n.loopStart = t }

// SetBuffer sets the storage buffer to play. Its sample rate must match the
// graph's; a nil buffer clears it.
func (n *BufferSource) SetBuffer(b *block.Block) error {
	if b != nil && b.SampleRate() != n.g.clock.SampleRate {
		return fmt.Errorf("%w: buffer %v, graph %v", ErrSampleRateMismatch, b.SampleRate(), n.g.clock.SampleRate)
	}
	n.buffer = b
	return nil
}

// SetLoopEnd sets where a loop wraps. Zero means the end of the buffer.
func (n *BufferSource) SetLoopEnd(t float64) { n.loopEnd = t }

// SetOnEnded registers fn to run once playback runs off the end of the
// buffer. It is not called when the node is stopped or killed.
func (n *BufferSource) SetOnEnded(fn func()) { n.onEnded = fn }

func (n *BufferSource) State() State {
	switch {
	case n.killed:
		return Killed
	case !n.started:
		return Idle
	case !n.playing:
		return Stopped
	case n.loop:
		return Looping
	}
	return Playing
}

// Start begins playback at time when. Only the first call schedules
// anything; later calls are ignored, whether or not the first has fired.
func (n *BufferSource) Start(when float64, opts ...StartOption) error {
	if n.killed {
		return fmt.Errorf("start: %w", ErrKilled)
	}
	if when < 0 || math.IsNaN(when) {
		return fmt.Errorf("%w: %v", ErrInvalidTime, when)
	}
	if n.scheduled {
		return nil
	}
	n.scheduled = true

	var cfg startConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	n.sched.Schedule(schedule.Start, when, func() error {
		if n.buffer == nil {
			return ErrNoBuffer
		}

		n.started = true
		n.playing = true

		start := cfg.offset
		if start == 0 {
			start = n.loopStart
		}
		n.duration = cfg.duration
		n.cursor, n.cursorEnd = n.window(start, n.duration)

		return nil
	})

	return nil
}

// Stop silences the node at time when.
func (n *BufferSource) Stop(when float64) error {
	if n.killed {
		return fmt.Errorf("stop: %w", ErrKilled)
	}
	if when < 0 || math.IsNaN(when) {
		return fmt.Errorf("%w: %v", ErrInvalidTime, when)
	}

	n.sched.Schedule(schedule.Stop, when, func() error {
		n.playing = false
		return nil
	})

	return nil
}

// window converts a start time and an optional duration into a frame range
// inside the buffer.
func (n *BufferSource) window(start, duration float64) (int, int) {
	sr := n.g.clock.SampleRate
	length := n.buffer.Len()

	cursor := int(math.Round(start * sr))

	var end int
	switch {
	case duration > 0:
		end = cursor + int(math.Round(duration*sr))
	case n.loopEnd > 0:
		end = int(math.Round(n.loopEnd * sr))
	default:
		end = length
	}

	end = max(0, min(end, length))
	cursor = max(0, min(cursor, end))

	return cursor, end
}

func (n *BufferSource) generate() (*block.Block, error) {
	if !n.playing {
		return n.g.silence(1), nil
	}

	size := n.g.clock.BlockSize

	if n.cursor+size < n.cursorEnd {
		out := n.buffer.Slice(n.cursor, n.cursor+size)
		n.cursor += size
		return out, nil
	}

	out, err := block.New(n.buffer.Channels(), size, n.g.clock.SampleRate)
	if err != nil {
		return nil, err
	}

	filled := 0
	for filled < size {
		if count := min(n.cursorEnd-n.cursor, size-filled); count > 0 {
			if err := out.Set(n.buffer.Slice(n.cursor, n.cursor+count), filled); err != nil {
				return nil, err
			}
			filled += count
			n.cursor += count
			continue
		}

		if !n.loop {
			break
		}

		n.cursor, n.cursorEnd = n.window(n.loopStart, n.duration)
		if n.cursor >= n.cursorEnd {
			break
		}
	}

	if !n.loop && n.cursor >= n.cursorEnd {
		n.exhaust(filled)
	}

	return out, nil
}

// exhaust ends playback after the frames delivered in this block and
// schedules the end callback and the node's removal for the moment the data
// ran out.
func (n *BufferSource) exhaust(frames int) {
	n.playing = false
	n.sched.RemoveTypes(schedule.Stop)

	at := n.g.frameTime(n.g.frame + int64(frames))

	if fn := n.onEnded; fn != nil {
		n.sched.Schedule(schedule.OnEnded, at, func() error {
			fn()
			return nil
		})
	}

	n.sched.Schedule(schedule.Kill, at, func() error {
		n.Kill()
		return nil
	})
}
