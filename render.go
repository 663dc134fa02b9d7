// SPDX-License-Identifier: EPL-2.0

package audgraph

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/schedule"
)

// Run renders blocks into sink until the context is closed or ctx is done.
//
// Each iteration applies the operations queued with Do, fires due context
// events, pulls one block from the destination, advances the clock and
// writes the block. A close scheduled with CloseAt finalizes sink with Close
// and makes Run return nil. Any error, including ctx being done, hard-ends
// the sink with End and is returned.
func (c *Context) Run(ctx context.Context, sink Sink) error {
	return c.run(ctx, sink, -1)
}

// RenderOffline renders frames frames as fast as possible and returns them as
// one storage buffer. The context is closed afterwards.
func (c *Context) RenderOffline(frames int) (*block.Block, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrames, frames)
	}

	bs := c.graph.BlockSize()
	blocks := (frames + bs - 1) / bs

	rec := &recorder{sampleRate: c.graph.SampleRate(), length: blocks * bs}
	if err := c.run(context.Background(), rec, blocks); err != nil {
		return nil, err
	}
	if rec.out == nil {
		return nil, ErrClosed
	}

	return rec.out.Slice(0, frames), nil
}

// CloseAt schedules the context to stop at logical time t. The sink in use at
// that time is finalized with Close.
func (c *Context) CloseAt(t float64) error {
	if t < 0 || math.IsNaN(t) {
		return fmt.Errorf("close at: %w: %v", ErrInvalidTime, t)
	}

	c.Do(func() {
		c.sched.Schedule(schedule.Kill, t, c.kill)
	})
	return nil
}

// Close stops rendering before the next block. An idle context is marked
// closed right away.
func (c *Context) Close() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if !c.rendering {
		c.closed = true
		c.sched.Clear()
		return nil
	}

	c.ops = append(c.ops, func() {
		c.sched.Schedule(schedule.Kill, 0, c.kill)
	})
	return nil
}

// Do runs fn on the render goroutine between two blocks. When no render is in
// progress fn runs before Do returns. fn must not call Do.
func (c *Context) Do(fn func()) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.rendering {
		c.ops = append(c.ops, fn)
		return
	}
	fn()
}

func (c *Context) run(ctx context.Context, sink Sink, limit int) error {
	c.mtx.Lock()
	switch {
	case c.closed:
		c.mtx.Unlock()
		return ErrClosed
	case c.rendering:
		c.mtx.Unlock()
		return ErrRunning
	}
	c.rendering = true
	c.playing = true
	c.sink = sink
	c.mtx.Unlock()

	defer func() {
		c.mtx.Lock()
		defer c.mtx.Unlock()

		c.rendering = false
		c.sink = nil
		c.ops = nil
	}()

	c.logger.Info("render started", "time", c.graph.CurrentTime())

	err := c.loop(ctx, sink, limit)
	if err != nil {
		if endErr := sink.End(); endErr != nil {
			c.logger.Warn("ending sink", "error", endErr)
		}
		c.logger.Error("render stopped", "time", c.graph.CurrentTime(), "error", err)
		return err
	}

	c.logger.Info("render stopped", "time", c.graph.CurrentTime())
	return nil
}

func (c *Context) loop(ctx context.Context, sink Sink, limit int) error {
	for rendered := 0; c.playing; rendered++ {
		if limit >= 0 && rendered == limit {
			return c.kill()
		}

		c.applyOps()

		if err := c.sched.Tick(c.graph.CurrentTime()); err != nil {
			return fmt.Errorf("context events: %w", err)
		}
		if !c.playing {
			return nil
		}

		out, err := c.graph.Render()
		if err != nil {
			return fmt.Errorf("render at %v: %w", c.graph.CurrentTime(), err)
		}
		c.graph.Advance()

		room, err := sink.Write(out)
		if err != nil {
			return fmt.Errorf("sink write: %w", err)
		}

		if !room {
			c.logger.Debug("sink full, waiting for drain", "time", c.graph.CurrentTime())

			select {
			case <-sink.Drain():
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		runtime.Gosched()
	}

	return nil
}

func (c *Context) applyOps() {
	c.mtx.Lock()
	ops := c.ops
	c.ops = nil
	c.mtx.Unlock()

	for _, fn := range ops {
		fn()
	}
}

// kill is the context Kill event.
func (c *Context) kill() error {
	c.playing = false

	c.mtx.Lock()
	c.closed = true
	c.mtx.Unlock()

	if err := c.sink.Close(); err != nil {
		return fmt.Errorf("close sink: %w", err)
	}
	return nil
}

// recorder is the Sink behind RenderOffline.
type recorder struct {
	sampleRate float64
	length     int
	offset     int
	out        *block.Block
}

func (r *recorder) Write(b *block.Block) (bool, error) {
	if r.out == nil {
		out, err := block.New(b.Channels(), r.length, r.sampleRate)
		if err != nil {
			return false, err
		}
		r.out = out
	}

	if err := r.out.Set(b, r.offset); err != nil {
		return false, err
	}
	r.offset += b.Len()

	return true, nil
}

func (r *recorder) Drain() <-chan struct{} { return nil }
func (r *recorder) Close() error           { return nil }
func (r *recorder) End() error             { return nil }
