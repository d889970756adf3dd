// SPDX-License-Identifier: EPL-2.0

//go:build headless

package device

import (
	"log/slog"

	"github.com/ik5/sndpool/audio"
)

// Output is never created in headless builds.
type Output struct{}

// Open always fails with ErrNoDevice.
func Open(audio.Source, int, *slog.Logger) (*Output, error) {
	return nil, ErrNoDevice
}

func (o *Output) Err() error   { return nil }
func (o *Output) Close() error { return nil }
