// SPDX-License-Identifier: EPL-2.0

package audgraph

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/graph"
	"github.com/ik5/audgraph/schedule"
)

const (
	DefaultSampleRate = 44100
	DefaultBlockSize  = 128
)

type config struct {
	sampleRate float64
	blockSize  int
	logger     *slog.Logger
	registry   *audio.Registry
}

// Option configures a Context.
type Option func(*config)

// WithSampleRate sets the rate every node renders at. Default 44100.
func WithSampleRate(rate float64) Option {
	return func(c *config) { c.sampleRate = rate }
}

// WithBlockSize sets the number of frames per render block. Default 128.
func WithBlockSize(frames int) Option {
	return func(c *config) { c.blockSize = frames }
}

// WithLogger routes lifecycle logs to l. Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRegistry replaces the decoders used by DecodeAudioData.
func WithRegistry(r *audio.Registry) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// Context owns a render graph, its clock and the transport that pushes
// rendered blocks into a Sink.
//
// Graph construction and mutation are not safe for concurrent use with Run.
// While a render is in progress, hand mutations to Do.
type Context struct {
	id       uuid.UUID
	graph    *graph.Graph
	registry *audio.Registry
	logger   *slog.Logger

	// sched holds context-level events such as the close at CloseAt. It is
	// only touched from the render goroutine, or inline when idle.
	sched schedule.Queue

	mtx       sync.Mutex
	rendering bool
	closed    bool
	ops       []func()

	playing bool
	sink    Sink
}

func NewContext(opts ...Option) (*Context, error) {
	cfg := config{
		sampleRate: DefaultSampleRate,
		blockSize:  DefaultBlockSize,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}

	g, err := graph.New(cfg.sampleRate, cfg.blockSize)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	c := &Context{
		id:       id,
		graph:    g,
		registry: cfg.registry,
		logger:   cfg.logger.With("context", id.String()),
	}

	c.logger.Debug("context created",
		"sample_rate", cfg.sampleRate,
		"block_size", cfg.blockSize,
	)

	return c, nil
}

func (c *Context) ID() uuid.UUID        { return c.id }
func (c *Context) SampleRate() float64  { return c.graph.SampleRate() }
func (c *Context) BlockSize() int       { return c.graph.BlockSize() }
func (c *Context) CurrentTime() float64 { return c.graph.CurrentTime() }

// Graph exposes the underlying node graph.
func (c *Context) Graph() *graph.Graph { return c.graph }

func (c *Context) Destination() *graph.Destination { return c.graph.Destination() }

// CreateBuffer returns a silent storage buffer.
func (c *Context) CreateBuffer(channels, length int, sampleRate float64) (*block.Block, error) {
	return block.New(channels, length, sampleRate)
}

func (c *Context) CreateBufferSource() *graph.BufferSource { return c.graph.NewBufferSource() }
func (c *Context) CreateGain() *graph.Gain                 { return c.graph.NewGain() }

// Closed reports whether the context was closed.
func (c *Context) Closed() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.closed
}
