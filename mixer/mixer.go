// SPDX-License-Identifier: EPL-2.0

// Package mixer is a software channel mixer. It plays decoded sounds on a
// fixed set of channels and exposes the summed output as an audio.Source,
// which is what the device package and offline rendering pull from.
package mixer

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/sndpool/audio"
	"github.com/ik5/sndpool/internal/dsp"
	"github.com/ik5/sndpool/scheduler"
	"github.com/ik5/sndpool/sound"
)

var (
	_ scheduler.Backend = (*Mixer)(nil)
	_ audio.Source      = (*Mixer)(nil)
)

type voice struct {
	snd    *sound.Sound
	pos    int // next frame
	loop   bool
	active bool

	left, right float32

	fadeLen int // frames, 0 for none
	fadePos int
}

// Mixer owns maxChannels voices. Reserve hands them out in contiguous
// ranges; Play, Stop, Busy and SetVolume act on one channel. ReadSamples
// may run on the audio thread while the other methods run elsewhere.
type Mixer struct {
	mu       sync.Mutex
	rate     int
	voices   []voice
	reserved int
	logger   *slog.Logger
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Mixer) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns a mixer producing stereo at rate with maxChannels voices.
func New(rate, maxChannels int, opts ...Option) (*Mixer, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}
	if maxChannels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, maxChannels)
	}
	m := &Mixer{
		rate:   rate,
		voices: make([]voice, maxChannels),
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// Reserve claims the next n unclaimed channels.
func (m *Mixer) Reserve(n int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n < 1 || m.reserved+n > len(m.voices) {
		return 0, fmt.Errorf("%w: want %d, %d of %d claimed", ErrNoChannels, n, m.reserved, len(m.voices))
	}
	start := m.reserved
	m.reserved += n
	m.logger.Debug("mixer: channels reserved", "start", start, "count", n)
	return start, nil
}

// Play starts s on channel from its first frame at full gain, replacing
// whatever played there.
func (m *Mixer) Play(channel int, s scheduler.Sound, loop bool, fadeIn time.Duration) error {
	snd, ok := s.(*sound.Sound)
	if !ok || snd == nil {
		return fmt.Errorf("%w: %T", ErrUnsupported, s)
	}
	if snd.SampleRate() != m.rate {
		return fmt.Errorf("%w: %d Hz, mixer runs at %d Hz", ErrRateMismatch, snd.SampleRate(), m.rate)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.valid(channel) {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}

	m.voices[channel] = voice{
		snd:     snd,
		loop:    loop,
		active:  snd.Frames() > 0,
		left:    1,
		right:   1,
		fadeLen: int(int64(fadeIn) * int64(m.rate) / int64(time.Second)),
	}
	m.logger.Debug("mixer: voice started", "channel", channel, "sound", snd.Name(), "loop", loop)
	return nil
}

// Stop silences channel. Unknown channels are ignored.
func (m *Mixer) Stop(channel int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid(channel) {
		m.voices[channel].active = false
		m.voices[channel].snd = nil
	}
}

// Busy reports whether channel is still playing.
func (m *Mixer) Busy(channel int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.valid(channel) && m.voices[channel].active
}

// SetVolume sets the stereo gains of channel until its next Play.
func (m *Mixer) SetVolume(channel int, left, right float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid(channel) {
		m.voices[channel].left = float32(left)
		m.voices[channel].right = float32(right)
	}
}

// Active counts the channels currently playing.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for i := range m.voices {
		if m.voices[i].active {
			n++
		}
	}
	return n
}

func (m *Mixer) valid(channel int) bool {
	return channel >= 0 && channel < len(m.voices)
}

// SampleRate is the output rate every played sound must match.
func (m *Mixer) SampleRate() int { return m.rate }

// Channels is always 2: the output is interleaved stereo.
func (m *Mixer) Channels() int { return sound.Channels }

// BufSize is the suggested read size in samples.
func (m *Mixer) BufSize() int { return 4096 }

// Close silences every channel. The mixer stays usable.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.voices {
		m.voices[i] = voice{}
	}
	return nil
}

// ReadSamples mixes the next len(dst)/2 frames of every active voice into
// dst, clipped to [-1, 1]. The stream never ends: idle channels produce
// silence.
func (m *Mixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%sound.Channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	clear(dst)

	m.mu.Lock()
	for i := range m.voices {
		if m.voices[i].active {
			m.voices[i].mixInto(dst)
		}
	}
	m.mu.Unlock()

	for i, v := range dst {
		dst[i] = dsp.Clamp(v)
	}
	return len(dst), nil
}

// mixInto adds the voice to dst and advances it, deactivating single-shot
// voices that reach their end.
func (v *voice) mixInto(dst []float32) {
	samples := v.snd.Samples()
	frames := v.snd.Frames()

	for f := 0; f < len(dst)/2; f++ {
		if v.pos >= frames {
			if !v.loop {
				v.active = false
				v.snd = nil
				return
			}
			v.pos = 0
		}

		gain := float32(1)
		if v.fadePos < v.fadeLen {
			gain = float32(v.fadePos) / float32(v.fadeLen)
			v.fadePos++
		}

		dst[2*f] += samples[2*v.pos] * v.left * gain
		dst[2*f+1] += samples[2*v.pos+1] * v.right * gain
		v.pos++
	}

	if v.pos >= frames && !v.loop {
		v.active = false
		v.snd = nil
	}
}
