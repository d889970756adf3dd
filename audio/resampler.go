// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/sndpool/internal/dsp"
)

// maxEmptyReads bounds how many (0, nil) reads a source may return in a row
// before the resampler gives up with io.ErrNoProgress.
const maxEmptyReads = 16

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation. Works on interleaved samples and preserves channel count.
// When downsampling, frames pass through a one-pole low-pass first.
// When both rates match, reads are passed straight through.
type Resampler struct {
	src      Source
	channels int
	srcRate  int
	dstRate  int

	// hist[1] is the frame at the integer part of the read position,
	// hist[0] the one before it and hist[2], hist[3] the two after.
	hist [4][]float32
	live [4]bool // false for frames duplicated past the end of src
	// frac is the position between hist[1] and hist[2] in units of
	// 1/dstRate, kept integral so long streams do not drift.
	frac int
	init bool

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	lowpass bool
	alpha   float32
	state   []float32
	warm    bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 0)
	srcRate := src.SampleRate()
	step := float64(srcRate) / float64(dstRate)

	r := &Resampler{
		src:      src,
		channels: channels,
		srcRate:  srcRate,
		dstRate:  dstRate,
		in:       make([]float32, channels*1024),
		lowpass:  step > 1.0,
		state:    make([]float32, channels),
	}
	if r.lowpass {
		// Cheap cutoff that tracks the rate ratio.
		r.alpha = float32(max(1.0/step, 0.1))
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resample: %w", err)
	}
	return nil
}

// TotalFrames scales the source length hint, if there is one.
func (r *Resampler) TotalFrames() int64 {
	sized, ok := r.src.(Sized)
	if !ok {
		return -1
	}
	n := sized.TotalFrames()
	if n < 0 || r.srcRate <= 0 || r.dstRate <= 0 {
		return -1
	}
	// One output frame per dstRate/srcRate source frames, rounded up.
	src, dst := int64(r.srcRate), int64(r.dstRate)
	if src == dst {
		return n
	}
	if n > (math.MaxInt64-src)/dst {
		return -1
	}
	return (n*dst + src - 1) / src
}

// ReadSamples produces dst samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.srcRate <= 0 || r.dstRate <= 0 {
		return 0, ErrInvalidRate
	}
	if r.channels <= 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.srcRate == r.dstRate {
		return r.src.ReadSamples(dst)
	}

	if !r.init {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.frac >= r.dstRate {
			r.frac -= r.dstRate
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.live[1] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		x := float32(r.frac) / float32(r.dstRate)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = dsp.CatmullRom(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.frac += r.srcRate
	}

	return written * r.channels, nil
}

// prime loads the first frames. A source that is empty from the start
// reports io.EOF.
func (r *Resampler) prime() error {
	ok, err := r.load(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.hist[0], r.hist[1])
	r.live[1] = true

	r.live[2], err = r.loadOrRepeat(r.hist[2], r.hist[1], true)
	if err != nil {
		return err
	}
	r.live[3], err = r.loadOrRepeat(r.hist[3], r.hist[2], r.live[2])
	if err != nil {
		return err
	}

	r.init = true
	return nil
}

// shift advances the window by one source frame.
func (r *Resampler) shift() error {
	oldest := r.hist[0]
	r.hist[0], r.hist[1], r.hist[2] = r.hist[1], r.hist[2], r.hist[3]
	r.hist[3] = oldest
	r.live[0], r.live[1], r.live[2] = r.live[1], r.live[2], r.live[3]

	var err error
	r.live[3], err = r.loadOrRepeat(r.hist[3], r.hist[2], r.live[2])
	return err
}

func (r *Resampler) loadOrRepeat(into, prev []float32, try bool) (bool, error) {
	if try {
		ok, err := r.load(into)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	copy(into, prev)
	return false, nil
}

// load copies the next source frame into frame. It reports false once the
// source is exhausted.
func (r *Resampler) load(frame []float32) (bool, error) {
	empty := 0
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		n -= n % r.channels
		r.inPos, r.inLen = 0, n

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("resample: %w", err)
		}

		if n == 0 && !r.srcEOF {
			empty++
			if empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpass {
		if !r.warm {
			// Seed the filter so the first frame is not attenuated.
			copy(r.state, frame)
			r.warm = true
		}
		for c := range frame {
			frame[c] = r.alpha*frame[c] + (1-r.alpha)*r.state[c]
			r.state[c] = frame[c]
		}
	}

	return true, nil
}
