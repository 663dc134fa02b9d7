// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audgraph/audio"
	"github.com/ik5/audgraph/block"
)

const headerSize = 44

// Encode16 writes b as an interleaved 16-bit PCM WAV file. Samples are
// clamped to [-1, 1].
func Encode16(w io.Writer, b *block.Block) error {
	if b.Channels() == 0 {
		return ErrEmptyBuffer
	}

	numChannels := uint16(b.Channels())
	bitsPerSample := uint16(16)
	sampleRate := uint32(math.Round(b.SampleRate()))
	byteRate := sampleRate * uint32(numChannels) * uint32(bitsPerSample/8)
	blockAlign := numChannels * (bitsPerSample / 8)
	dataSize := uint32(b.Len() * b.Channels() * 2)
	riffSize := 36 + dataSize

	header := make([]byte, headerSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	// Write 4096 frames at a time
	const chunkFrames = 4096
	if b.Len() == 0 {
		return nil
	}

	frameBytes := int(blockAlign)
	buf := make([]byte, min(b.Len(), chunkFrames)*frameBytes)

	for start := 0; start < b.Len(); start += chunkFrames {
		end := min(start+chunkFrames, b.Len())
		out := buf[:(end-start)*frameBytes]

		audio.PutInt16LE(out, b.Slice(start, end))

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
