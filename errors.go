// SPDX-License-Identifier: EPL-2.0

package sndpool

import "errors"

var (
	ErrUnknownSound = errors.New("sndpool: no sound configured under that name")
	ErrNilConfig    = errors.New("sndpool: config is nil")
)
