// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync"

	"github.com/ik5/audgraph/block"
)

// Sink records every block written to it. With a capacity it reports no room
// once that many blocks are pending; asking for Drain frees them all.
type Sink struct {
	mtx sync.Mutex

	blocks   []*block.Block
	capacity int
	pending  int
	waits    int

	failAfter int
	failErr   error

	closed bool
	ended  bool
}

// NewSink returns a recording sink. A capacity of 0 never applies
// backpressure.
func NewSink(capacity int) *Sink {
	return &Sink{capacity: capacity}
}

// FailAfter makes the Write after n successful ones return err.
func (s *Sink) FailAfter(n int, err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.failAfter, s.failErr = n, err
}

func (s *Sink) Write(b *block.Block) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.failErr != nil && len(s.blocks) >= s.failAfter {
		return false, s.failErr
	}

	s.blocks = append(s.blocks, b.Clone())

	if s.capacity == 0 {
		return true, nil
	}
	s.pending++
	return s.pending < s.capacity, nil
}

func (s *Sink) Drain() <-chan struct{} {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.waits++
	s.pending = 0

	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	return ch
}

func (s *Sink) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.closed = true
	return nil
}

func (s *Sink) End() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.ended = true
	return nil
}

// Blocks returns copies of everything written so far.
func (s *Sink) Blocks() []*block.Block {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return append([]*block.Block(nil), s.blocks...)
}

// Channel concatenates channel ch across every written block.
func (s *Sink) Channel(ch int) []float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var out []float64
	for _, b := range s.blocks {
		out = append(out, b.Channel(ch)...)
	}
	return out
}

// Waits is how many times Drain was requested.
func (s *Sink) Waits() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.waits
}

func (s *Sink) Closed() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.closed
}

func (s *Sink) Ended() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.ended
}
