// SPDX-License-Identifier: EPL-2.0

package audgraph

import (
	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
	"github.com/ik5/audgraph/mixing"
	"github.com/ik5/audgraph/utils"
)

// ResampleToMono16 resamples b to targetRate, folds it down to one channel
// and converts the result to 16-bit PCM.
//
// Layouts with a speaker rule (stereo, quad, 5.1) are folded with that rule;
// any other layout keeps its first channel.
//
// Example:
//
//	buf, _ := ctx.DecodeAudioData(file, "wav")
//	pcm16, err := audgraph.ResampleToMono16(buf, 8000)
func ResampleToMono16(b *block.Block, targetRate float64) ([]int16, error) {
	r, err := audio.Resample(b, targetRate)
	if err != nil {
		return nil, err
	}

	mono, err := block.New(1, r.Len(), targetRate)
	if err != nil {
		return nil, err
	}
	if r.Channels() > 0 {
		mixing.New(r.Channels(), 1, mixing.Speakers).Mix(r, mono)
	}

	pcm16 := make([]int16, mono.Len())
	for i, v := range mono.Channel(0) {
		pcm16[i] = utils.FloatToInt16(v)
	}

	return pcm16, nil
}
