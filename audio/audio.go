// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/ik5/audgraph/block"
)

// Decoder turns an encoded stream into a storage buffer holding every frame,
// deinterleaved, at the stream's own sample rate.
type Decoder interface {
	Decode(r io.Reader) (*block.Block, error)
}

// DecoderFunc adapts a plain function to Decoder.
type DecoderFunc func(r io.Reader) (*block.Block, error)

func (f DecoderFunc) Decode(r io.Reader) (*block.Block, error) { return f(r) }

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.RWMutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	formats := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	return formats
}

// Decode looks up format and decodes r with it.
func (r *Registry) Decode(format string, src io.Reader) (*block.Block, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	b, err := d.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	return b, nil
}
