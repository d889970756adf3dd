// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrInvalidRate     = errors.New("mixer: sample rate must be positive")
	ErrInvalidChannels = errors.New("mixer: channel count must be positive")
	ErrNoChannels      = errors.New("mixer: not enough free channels")
	ErrInvalidChannel  = errors.New("mixer: no such channel")
	ErrUnsupported     = errors.New("mixer: sound is not decoded PCM")
	ErrRateMismatch    = errors.New("mixer: sound sample rate differs from the mixer")
)
