// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// maxPreallocFrames bounds the up-front allocation taken from a Sized hint.
// Hints come from file headers and are not trusted beyond it.
const maxPreallocFrames = 1 << 20

// ReadAll drains src and returns every interleaved sample it produced.
// bufferSize is rounded down to a whole number of frames. When src
// implements Sized the result is preallocated from its hint, up to
// maxPreallocFrames frames, and grows past that as needed.
//
// Example:
//
//	src, _ := decoder.Decode(file)
//	pipeline := audio.NewStereoMixer(audio.NewResampler(src, 48000))
//	samples, err := audio.ReadAll(pipeline, 4096)
func ReadAll(src Source, bufferSize int) ([]float32, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	bufferSize -= bufferSize % channels
	if bufferSize <= 0 {
		bufferSize = channels * 1024
	}

	var out []float32
	if sized, ok := src.(Sized); ok {
		if frames := sized.TotalFrames(); frames > 0 {
			out = make([]float32, 0, min(frames, maxPreallocFrames)*int64(channels))
		}
	}

	buf := make([]float32, bufferSize)
	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read all: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}
}
