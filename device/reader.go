// SPDX-License-Identifier: EPL-2.0

package device

import (
	"encoding/binary"
	"math"

	"github.com/ik5/sndpool/audio"
)

const bytesPerSample = 4

// pcmReader turns a float32 Source into the little-endian byte stream the
// output device consumes. Partial samples are never emitted.
type pcmReader struct {
	src audio.Source
	buf []float32
	err error
}

func newPCMReader(src audio.Source) *pcmReader {
	return &pcmReader{src: src}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	frameBytes := bytesPerSample * r.src.Channels()
	samples := (len(p) / frameBytes) * r.src.Channels()
	if samples == 0 {
		return 0, nil
	}
	if cap(r.buf) < samples {
		r.buf = make([]float32, samples)
	}
	buf := r.buf[:samples]

	n, err := r.src.ReadSamples(buf)
	for i, v := range buf[:n] {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	if err != nil {
		r.err = err
	}
	if n == 0 && err != nil {
		return 0, err
	}
	return n * bytesPerSample, nil
}
