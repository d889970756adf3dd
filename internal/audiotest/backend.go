// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"
	"time"

	"github.com/ik5/sndpool/scheduler"
)

// Compile-time interface assertion.
var _ scheduler.Backend = (*Backend)(nil)

// ErrNoChannels is returned by Backend.Reserve when MaxChannels would be
// exceeded.
var ErrNoChannels = errors.New("audiotest: not enough channels")

// Sound is a scheduler.Sound with a fixed length.
type Sound struct {
	Name      string
	Len       time.Duration
	LengthErr error
}

// NewSound returns a sound handle of the given length.
func NewSound(name string, length time.Duration) *Sound {
	return &Sound{Name: name, Len: length}
}

func (s *Sound) Length() (time.Duration, error) {
	if s.LengthErr != nil {
		return 0, s.LengthErr
	}
	return s.Len, nil
}

// PlayCall records the arguments of a single Backend.Play invocation.
type PlayCall struct {
	Channel int
	Sound   scheduler.Sound
	Loop    bool
	FadeIn  time.Duration
}

// Gain is a left/right volume pair.
type Gain struct {
	Left, Right float64
}

// Backend is a recording scheduler.Backend. Channels stay busy until Stop
// or Finish is called on them.
//
// Set the exported fields before use; inspect the recorded calls after.
type Backend struct {
	// MaxChannels bounds Reserve. Zero means unlimited.
	MaxChannels int

	// ReserveError is returned by Reserve when set.
	ReserveError error

	// PlayError is returned by Play when set.
	PlayError error

	// PlayCalls records all successful Play invocations.
	PlayCalls []PlayCall

	// StopCalls records the channel of every Stop invocation.
	StopCalls []int

	// Volumes holds the last gain set on each channel.
	Volumes map[int]Gain

	reserved int
	busy     map[int]scheduler.Sound
}

// NewBackend returns a backend with no channels reserved yet.
func NewBackend() *Backend {
	return &Backend{
		Volumes: make(map[int]Gain),
		busy:    make(map[int]scheduler.Sound),
	}
}

// Preallocate marks n channels as owned by some other consumer, so the
// next Reserve starts after them.
func (b *Backend) Preallocate(n int) *Backend {
	b.reserved += n
	return b
}

func (b *Backend) Reserve(n int) (int, error) {
	if b.ReserveError != nil {
		return 0, b.ReserveError
	}
	if n < 1 || (b.MaxChannels > 0 && b.reserved+n > b.MaxChannels) {
		return 0, fmt.Errorf("%w: want %d, %d of %d in use", ErrNoChannels, n, b.reserved, b.MaxChannels)
	}

	start := b.reserved
	b.reserved += n
	return start, nil
}

func (b *Backend) Play(channel int, s scheduler.Sound, loop bool, fadeIn time.Duration) error {
	if b.PlayError != nil {
		return b.PlayError
	}
	b.busy[channel] = s
	b.PlayCalls = append(b.PlayCalls, PlayCall{Channel: channel, Sound: s, Loop: loop, FadeIn: fadeIn})
	return nil
}

func (b *Backend) Stop(channel int) {
	b.StopCalls = append(b.StopCalls, channel)
	delete(b.busy, channel)
}

func (b *Backend) Busy(channel int) bool {
	_, ok := b.busy[channel]
	return ok
}

func (b *Backend) SetVolume(channel int, left, right float64) {
	b.Volumes[channel] = Gain{Left: left, Right: right}
}

// Finish makes channel idle as if its sound ended on its own.
func (b *Backend) Finish(channel int) {
	delete(b.busy, channel)
}

// Occupy makes channel busy with s without going through the scheduler.
func (b *Backend) Occupy(channel int, s scheduler.Sound) {
	b.busy[channel] = s
}

// Playing returns the sound on channel, or nil when idle.
func (b *Backend) Playing(channel int) scheduler.Sound {
	return b.busy[channel]
}
