// SPDX-License-Identifier: EPL-2.0

package scheduler

import "time"

// Sound is an opaque handle to a decoded sound resource. The scheduler never
// owns it; it compares handles with == to find duplicates, so
// implementations should be pointer types.
type Sound interface {
	// Length is the playback length of one pass through the sound.
	Length() (time.Duration, error)
}

// Backend is the mixer the scheduler drives. Channel numbers are absolute
// backend channel numbers.
type Backend interface {
	// Reserve claims n channels that no other consumer owns and returns the
	// first channel number of the contiguous range.
	Reserve(n int) (start int, err error)

	// Play starts s on channel. loop repeats it until stopped; fadeIn ramps
	// the gain up from silence.
	Play(channel int, s Sound, loop bool, fadeIn time.Duration) error

	// Stop silences channel. Busy must report false once Stop returns.
	Stop(channel int)

	// Busy reports whether channel is still playing.
	Busy(channel int) bool

	// SetVolume sets the left and right gains of channel. Mono callers pass
	// the same value twice.
	SetVolume(channel int, left, right float64)
}
