// SPDX-License-Identifier: EPL-2.0

// Package sound holds fully decoded sounds ready for the mixer, and a bank
// that loads and caches them by name.
package sound

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/sndpool/audio"
)

// Channels is the layout of every Sound: interleaved stereo.
const Channels = 2

const readBufferSize = 8192

// Sound is decoded PCM at a fixed rate. Its samples are shared with the
// mixer and must not be modified after construction.
type Sound struct {
	name    string
	rate    int
	samples []float32
}

// FromSamples wraps interleaved stereo samples at rate.
func FromSamples(name string, rate int, samples []float32) (*Sound, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}
	if len(samples)%Channels != 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrPartialFrame, len(samples))
	}
	return &Sound{name: name, rate: rate, samples: samples}, nil
}

// Decode drains src, converted to stereo at rate, and closes it.
func Decode(name string, src audio.Source, rate int) (s *Sound, err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("sound %q: %w", name, cerr)
		}
	}()

	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}

	pipeline := audio.NewStereoMixer(audio.NewResampler(src, rate))
	samples, err := audio.ReadAll(pipeline, readBufferSize)
	if err != nil {
		return nil, fmt.Errorf("sound %q: %w", name, err)
	}

	return &Sound{name: name, rate: rate, samples: samples}, nil
}

// Load decodes r with the decoder registered for format.
func Load(reg *audio.Registry, name, format string, r io.Reader, rate int) (*Sound, error) {
	dec, ok := reg.Get(format)
	if !ok {
		return nil, fmt.Errorf("sound %q: %w: %s", name, audio.ErrUnknownFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("sound %q: %w", name, err)
	}
	return Decode(name, src, rate)
}

// Open loads the file at path, picking the decoder from its extension.
// The sound is named after the file without its extension.
func Open(reg *audio.Registry, path string, rate int) (*Sound, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return Load(reg, name, filepath.Ext(path), f, rate)
}

func (s *Sound) Name() string       { return s.name }
func (s *Sound) SampleRate() int    { return s.rate }
func (s *Sound) Samples() []float32 { return s.samples }
func (s *Sound) Frames() int        { return len(s.samples) / Channels }

// Length is the duration of one pass through the sound.
func (s *Sound) Length() (time.Duration, error) {
	if s.rate <= 0 {
		return 0, ErrInvalidRate
	}
	return time.Duration(s.Frames()) * time.Second / time.Duration(s.rate), nil
}

func (s *Sound) String() string {
	return fmt.Sprintf("%s (%d frames @ %d Hz)", s.name, s.Frames(), s.rate)
}
