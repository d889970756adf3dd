// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer maps any channel layout onto interleaved stereo. Mono is
// duplicated to both sides, stereo passes through, and wider layouts fold
// even-indexed channels to the left and odd-indexed ones to the right.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }

func (m *StereoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("stereo mixer: %w", err)
	}
	return nil
}

// TotalFrames forwards the source length hint; the frame count does not
// change when only the layout does.
func (m *StereoMixer) TotalFrames() int64 {
	if sized, ok := m.src.(Sized); ok {
		return sized.TotalFrames()
	}
	return -1
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	switch {
	case channels <= 0:
		return 0, ErrNoChannels
	case channels == 2:
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / 2
	need := frames * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / channels

	if channels == 1 {
		for f := range got {
			v := m.tmp[f]
			dst[2*f] = v
			dst[2*f+1] = v
		}
		return got * 2, err
	}

	left := float32(1) / float32((channels+1)/2)
	right := float32(1) / float32(channels/2)
	for f := range got {
		var l, r float32
		frame := m.tmp[f*channels : (f+1)*channels]
		for c, v := range frame {
			if c%2 == 0 {
				l += v
			} else {
				r += v
			}
		}
		dst[2*f] = l * left
		dst[2*f+1] = r * right
	}

	return got * 2, err
}
