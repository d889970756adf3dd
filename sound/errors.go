// SPDX-License-Identifier: EPL-2.0

package sound

import "errors"

var (
	// ErrInvalidRate indicates a sample rate that is not positive.
	ErrInvalidRate = errors.New("sample rate must be positive")

	// ErrPartialFrame indicates interleaved stereo data with an odd length.
	ErrPartialFrame = errors.New("stereo samples must come in pairs")

	// ErrNotFound is returned by Bank lookups for unknown names.
	ErrNotFound = errors.New("sound not found")
)
