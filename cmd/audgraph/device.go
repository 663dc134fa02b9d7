// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package main

import (
	"github.com/ik5/audgraph"
	"github.com/ik5/audgraph/sink/portaudio"
)

func init() {
	outputs["device"] = openDevice
}

// openDevice plays on the default output; out is ignored.
func openDevice(_ string, c *audgraph.Context, _ int) (audgraph.Sink, func() error, error) {
	s, err := portaudio.New(c.SampleRate(), c.Destination().ChannelCount(), c.BlockSize())
	if err != nil {
		return nil, nil, err
	}
	return s, func() error { return nil }, nil
}
