// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
)

const DefaultNumBuffers = 4

type config struct {
	numBuffers int
}

type Option func(*config)

// WithNumBuffers sets how many encoded blocks may wait for the writer.
func WithNumBuffers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.numBuffers = n
		}
	}
}

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// PCM streams blocks as interleaved s16le PCM. Write encodes on the caller's
// goroutine and queues the bytes; a writer goroutine hands them to w.
//
// An error from w is reported by the next Write or by Close. Write, Close and
// End are called from one goroutine, as Context.Run does; Drain may be called
// from anywhere.
type PCM struct {
	w        io.Writer
	channels int

	queue   chan []byte
	drained chan struct{}
	done    chan struct{}

	mtx     sync.Mutex
	err     error
	abort   bool
	closed  bool
	written int64

	once sync.Once
}

// NewPCM starts the writer goroutine. Every block written must have channels
// channels.
func NewPCM(w io.Writer, channels int, opts ...Option) *PCM {
	cfg := config{numBuffers: DefaultNumBuffers}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &PCM{
		w:        w,
		channels: channels,
		queue:    make(chan []byte, cfg.numBuffers),
		drained:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go s.writeLoop()

	return s
}

func (s *PCM) writeLoop() {
	defer close(s.done)

	for buf := range s.queue {
		s.mtx.Lock()
		skip := s.err != nil || s.abort
		s.mtx.Unlock()

		if !skip {
			n, err := s.w.Write(buf)

			s.mtx.Lock()
			s.written += int64(n)
			if err != nil {
				s.err = fmt.Errorf("pcm write: %w", err)
			}
			s.mtx.Unlock()
		}

		select {
		case s.drained <- struct{}{}:
		default:
		}
	}
}

func (s *PCM) Write(b *block.Block) (bool, error) {
	s.mtx.Lock()
	err, closed := s.err, s.closed
	s.mtx.Unlock()

	if err != nil {
		return false, err
	}
	if closed {
		return false, ErrClosed
	}
	if b.Channels() != s.channels {
		return false, fmt.Errorf("%w: got %d channels, want %d", ErrInvalidLayout, b.Channels(), s.channels)
	}

	buf := make([]byte, b.Len()*b.Channels()*2)
	audio.PutInt16LE(buf, b)

	// blocks when the caller ignored a previous false room
	s.queue <- buf

	return len(s.queue) < cap(s.queue), nil
}

// Drain fires once the queue has room.
func (s *PCM) Drain() <-chan struct{} {
	// drop a stale signal, then look again
	select {
	case <-s.drained:
	default:
	}

	if len(s.queue) < cap(s.queue) {
		ready := make(chan struct{}, 1)
		ready <- struct{}{}
		return ready
	}

	return s.drained
}

// Close writes every queued block, flushes w when it buffers and returns the
// first write error.
func (s *PCM) Close() error {
	s.shutdown(false)

	if f, ok := s.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			s.mtx.Lock()
			if s.err == nil {
				s.err = fmt.Errorf("pcm flush: %w", err)
			}
			s.mtx.Unlock()
		}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.err
}

// End drops queued blocks and stops the writer.
func (s *PCM) End() error {
	s.shutdown(true)
	return nil
}

func (s *PCM) shutdown(abort bool) {
	s.once.Do(func() {
		s.mtx.Lock()
		s.closed = true
		s.abort = abort
		s.mtx.Unlock()

		close(s.queue)
	})
	<-s.done
}

// Written is the number of bytes handed to w so far.
func (s *PCM) Written() int64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.written
}
