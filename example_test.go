// SPDX-License-Identifier: EPL-2.0

package audgraph_test

import (
	"fmt"

	"github.com/ik5/audgraph"
	"github.com/ik5/audgraph/block"
)

func ExampleContext_RenderOffline() {
	ctx, err := audgraph.NewContext(audgraph.WithSampleRate(8000), audgraph.WithBlockSize(64))
	if err != nil {
		fmt.Println(err)
		return
	}

	tone, _ := block.Fill(0.8, 1, 8000, 8000)

	src := ctx.CreateBufferSource()
	src.SetBuffer(tone)

	gain := ctx.CreateGain()
	_ = gain.Gain().SetValue(0.5)

	_ = src.Connect(gain, 0, 0)
	_ = gain.Connect(ctx.Destination(), 0, 0)
	_ = src.Start(0)

	out, err := ctx.RenderOffline(100)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d channels, %d frames\n", out.Channels(), out.Len())
	fmt.Printf("left %.2f, right %.2f\n", out.Channel(0)[0], out.Channel(1)[99])
	// Output:
	// 2 channels, 100 frames
	// left 0.40, right 0.40
}

func ExampleResampleToMono16() {
	buf, _ := block.Fill(0.5, 2, 441, 44100)

	pcm16, err := audgraph.ResampleToMono16(buf, 8000)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(len(pcm16), "samples")
	// Output:
	// 80 samples
}
