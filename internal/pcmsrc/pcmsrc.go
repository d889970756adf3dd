// SPDX-License-Identifier: EPL-2.0

// Package pcmsrc adapts the integer PCM readers of the go-audio decoders to
// the float32 audio.Source interface.
package pcmsrc

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/sndpool/internal/dsp"
)

// Reader is the part of a go-audio decoder the source pulls from.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Format describes the integer stream behind a Reader.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
	// Unsigned marks 8-bit data stored as 0..255, as WAV does.
	Unsigned bool
	// Frames is the stream length, or -1 when unknown.
	Frames int64
}

// Source converts go-audio integer buffers to normalized float32 samples.
type Source struct {
	dec    Reader
	format Format
	buf    *goaudio.IntBuffer
	eof    bool
}

func New(dec Reader, f Format) *Source {
	return &Source{
		dec:    dec,
		format: f,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
			Data:           make([]int, 4096),
			SourceBitDepth: f.BitDepth,
		},
	}
}

func (s *Source) SampleRate() int    { return s.format.SampleRate }
func (s *Source) Channels() int      { return s.format.Channels }
func (s *Source) BufSize() int       { return cap(s.buf.Data) }
func (s *Source) TotalFrames() int64 { return s.format.Frames }
func (s *Source) Close() error       { return nil }

// ReadSamples fills dst from the decoder. The go-audio readers report the
// end of the PCM chunk either as a zero-length read or as io.EOF; both end
// the stream.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
	case err != nil:
		return 0, fmt.Errorf("pcm: %w", err)
	case n == 0:
		s.eof = true
	}

	depth := s.format.BitDepth
	for i, v := range s.buf.Data[:n] {
		if s.format.Unsigned && depth == 8 {
			v -= 128
		}
		dst[i] = dsp.IntToFloat32(v, depth)
	}

	if s.eof {
		return n, io.EOF
	}
	return n, nil
}
