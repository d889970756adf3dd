// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrNoDevice          = errors.New("device: audio output not available in this build")
	ErrUnsupportedSource = errors.New("device: source must be stereo")
	ErrAlreadyOpen       = errors.New("device: output already open")
)
