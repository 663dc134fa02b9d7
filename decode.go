// SPDX-License-Identifier: EPL-2.0

package audgraph

import (
	"fmt"
	"io"

	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/formats/aiff"
	"github.com/ik5/audgraph/formats/mp3"
	"github.com/ik5/audgraph/formats/vorbis"
	"github.com/ik5/audgraph/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder: "wav",
// "mp3", "ogg" and "aiff".
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})

	return r
}

// DecodeAudioData decodes r as format and resamples the result to the
// context sample rate.
func (c *Context) DecodeAudioData(r io.Reader, format string) (*block.Block, error) {
	b, err := c.registry.Decode(format, r)
	if err != nil {
		return nil, err
	}

	out, err := audio.Resample(b, c.graph.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("resample %s: %w", format, err)
	}

	return out, nil
}

// DecodeAudioDataAsync decodes on its own goroutine and reports on done or
// fail, whichever applies. It never touches the graph, so it is safe to call
// while rendering; hand the buffer to a node through Do.
func (c *Context) DecodeAudioDataAsync(r io.Reader, format string, done chan<- *block.Block, fail chan<- error) {
	go func() {
		b, err := c.DecodeAudioData(r, format)
		if err != nil {
			c.logger.Warn("decode failed", "format", format, "error", err)
			if fail != nil {
				fail <- err
			}
			return
		}

		if done != nil {
			done <- b
		}
	}()
}
