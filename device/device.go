// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package device

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/sndpool/audio"
)

// Only one output context may exist per process.
var (
	openMu sync.Mutex
	opened bool
	shared *oto.Context
)

// Output streams a stereo Source to the default audio device.
type Output struct {
	player *oto.Player
	logger *slog.Logger
	once   sync.Once
}

// Open starts pulling src into the system audio device. bufferMS sets the
// device buffer; zero or less lets the driver choose. The context is
// created once and reused by later Opens after Close.
func Open(src audio.Source, bufferMS int, logger *slog.Logger) (*Output, error) {
	if src.Channels() != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedSource, src.Channels())
	}
	if logger == nil {
		logger = slog.Default()
	}

	openMu.Lock()
	defer openMu.Unlock()

	if opened {
		return nil, ErrAlreadyOpen
	}

	if shared == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   src.SampleRate(),
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
			BufferSize:   time.Duration(max(bufferMS, 0)) * time.Millisecond,
		})
		if err != nil {
			return nil, fmt.Errorf("device: %w", err)
		}
		<-ready
		shared = ctx
	}

	player := shared.NewPlayer(newPCMReader(src))
	player.Play()
	opened = true

	logger.Info("device: output started", "sample_rate", src.SampleRate(), "buffer_ms", bufferMS)
	return &Output{player: player, logger: logger}, nil
}

// Err reports the error that stopped playback, if any.
func (o *Output) Err() error { return o.player.Err() }

// Close stops playback. The source is not closed.
func (o *Output) Close() error {
	var err error
	o.once.Do(func() {
		o.player.Pause()
		err = o.player.Close()

		openMu.Lock()
		opened = false
		openMu.Unlock()

		o.logger.Info("device: output stopped")
	})
	return err
}
