// SPDX-License-Identifier: EPL-2.0

package scheduler

import "errors"

var (
	// ErrReserve is returned by New when the backend cannot provide the
	// requested channels.
	ErrReserve = errors.New("channel reservation failed")

	// ErrInvalidChannel indicates a channel number outside the reserved range.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrInvalidWidth indicates panning was requested without a positive
	// screen width.
	ErrInvalidWidth = errors.New("screen width must be positive")

	// ErrNoLength wraps a sound that could not report its playback length.
	ErrNoLength = errors.New("sound has no length")
)
