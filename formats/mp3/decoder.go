// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/sndpool/audio"
	"github.com/ik5/sndpool/internal/dsp"
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const (
	channels      = 2
	bytesPerFrame = 4
)

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	Read([]byte) (int, error)
}

type source struct {
	dec        mp3Reader
	sampleRate int
	frames     int64
	buf        []byte
}

func (s *source) SampleRate() int    { return s.sampleRate }
func (s *source) Channels() int      { return channels }
func (s *source) Close() error       { return nil }
func (s *source) BufSize() int       { return cap(s.buf) / 2 }
func (s *source) TotalFrames() int64 { return s.frames }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	// go-mp3 may hand back partial frames; ReadFull keeps them whole.
	n, err := io.ReadFull(s.dec, s.buf)
	n -= n % bytesPerFrame

	samples := n / 2
	for i := range samples {
		dst[i] = dsp.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return samples, io.EOF
	default:
		return samples, fmt.Errorf("mp3: %w", err)
	}
}

type Decoder struct{}

// Decode parses the first MPEG frame of r. When r can seek, the decoder
// also scans the stream once to learn its length.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	frames := int64(-1)
	if n := dec.Length(); n >= 0 {
		frames = n / bytesPerFrame
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		frames:     frames,
		buf:        make([]byte, 8192),
	}, nil
}
