// SPDX-License-Identifier: EPL-2.0

package sndpool

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"go.opentelemetry.io/otel/metric"

	"github.com/ik5/sndpool/audio"
	"github.com/ik5/sndpool/config"
	"github.com/ik5/sndpool/mixer"
	"github.com/ik5/sndpool/scheduler"
	"github.com/ik5/sndpool/sound"
)

// tickRate is how many times per second Render reconciles the scheduler.
const tickRate = 100

// System is a mixer, a scheduler reserving part of it and a bank of the
// configured sounds. Trigger, Tick and SetVolume must be called from one
// goroutine; the mixer may be read from another.
type System struct {
	cfg    *config.Config
	mixer  *mixer.Mixer
	sched  *scheduler.Scheduler
	bank   *sound.Bank
	logger *slog.Logger
	volume float64
}

// Option configures NewSystem.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	registry      *audio.Registry
	baseDir       string
}

// WithLogger sets the logger handed to every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMeterProvider sets where the scheduler records its counters.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithRegistry replaces the decoder registry. Defaults to NewRegistry().
func WithRegistry(reg *audio.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithBaseDir resolves relative sound paths against dir instead of the
// working directory.
func WithBaseDir(dir string) Option {
	return func(o *options) { o.baseDir = dir }
}

// NewSystem validates cfg, builds the mixer and scheduler and decodes every
// configured sound.
func NewSystem(ctx context.Context, cfg *config.Config, opts ...Option) (*System, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}

	mix, err := mixer.New(cfg.Mixer.SampleRate, cfg.Mixer.MaxChannels, mixer.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("sndpool: %w", err)
	}

	schedOpts := []scheduler.Option{scheduler.WithLogger(o.logger)}
	if cfg.Scheduler.ScreenWidth > 0 {
		schedOpts = append(schedOpts, scheduler.WithScreenWidth(cfg.Scheduler.ScreenWidth))
	}
	if o.meterProvider != nil {
		schedOpts = append(schedOpts, scheduler.WithMeterProvider(o.meterProvider))
	}
	sched, err := scheduler.New(mix, cfg.Scheduler.Channels, schedOpts...)
	if err != nil {
		return nil, fmt.Errorf("sndpool: %w", err)
	}

	bank := sound.NewBank(o.registry, cfg.Mixer.SampleRate, sound.WithBankLogger(o.logger))
	entries := make([]sound.Entry, 0, len(cfg.Sounds))
	for _, s := range cfg.Sounds {
		path := s.Path
		if o.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(o.baseDir, path)
		}
		entries = append(entries, sound.Entry{Name: s.Name, Path: path})
	}
	if err := bank.LoadAll(ctx, entries); err != nil {
		return nil, fmt.Errorf("sndpool: %w", err)
	}

	o.logger.Info("sndpool: ready",
		"sample_rate", cfg.Mixer.SampleRate,
		"channels", cfg.Scheduler.Channels,
		"sounds", bank.Len())

	return &System{
		cfg:    cfg,
		mixer:  mix,
		sched:  sched,
		bank:   bank,
		logger: o.logger,
		volume: cfg.Scheduler.Volume,
	}, nil
}

func (s *System) Config() *config.Config          { return s.cfg }
func (s *System) Mixer() *mixer.Mixer             { return s.mixer }
func (s *System) Scheduler() *scheduler.Scheduler { return s.sched }
func (s *System) Bank() *sound.Bank               { return s.bank }

// Trigger plays the sound configured under name with its configured
// options. A nil slot with a nil error means the request was dropped.
func (s *System) Trigger(name string) (*scheduler.Slot, error) {
	sc, ok := s.cfg.Sound(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	return s.trigger(sc, sc.PanX)
}

// TriggerAt plays name panned to horizontal position x, overriding any
// configured position.
func (s *System) TriggerAt(name string, x float64) (*scheduler.Slot, error) {
	sc, ok := s.cfg.Sound(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	return s.trigger(sc, &x)
}

func (s *System) trigger(sc config.SoundConfig, x *float64) (*scheduler.Slot, error) {
	snd, err := s.bank.Get(sc.Name)
	if err != nil {
		return nil, fmt.Errorf("sndpool: %w", err)
	}

	opts := []scheduler.PlayOption{
		scheduler.WithName(sc.Name),
		scheduler.WithOwner(sc.Owner),
		scheduler.WithPriority(sc.Priority),
		scheduler.WithVolume(sc.Gain() * s.volume),
		scheduler.WithFadeIn(sc.FadeIn()),
	}
	if sc.Loop {
		opts = append(opts, scheduler.Loop())
	}
	if x != nil {
		opts = append(opts, scheduler.WithPan(*x))
	}

	return s.sched.Play(snd, opts...)
}

// SetVolume changes the master volume. Channels already playing take it
// at once; later triggers scale their configured volume by it. Values
// outside [0, 1], NaN included, reset to 1.0 as in Scheduler.SetVolume.
func (s *System) SetVolume(v float64) {
	if !(v >= 0 && v <= 1) {
		v = 1
	}
	s.volume = v
	s.sched.SetVolume(v)
}

// Tick reconciles the scheduler with the mixer and returns how many
// channels finished since the last tick.
func (s *System) Tick() int { return s.sched.Reconcile() }

// Playing reports whether any scheduler channel is still busy.
func (s *System) Playing() bool {
	return len(s.sched.FreeChannels()) < s.sched.Reserved()
}

// Render pulls frames stereo frames from the mixer, ticking the scheduler
// every hundredth of a second of output.
func (s *System) Render(frames int) ([]float32, error) {
	out := make([]float32, frames*sound.Channels)
	block := max(s.cfg.Mixer.SampleRate/tickRate, 1) * sound.Channels

	for off := 0; off < len(out); off += block {
		end := min(off+block, len(out))
		if _, err := s.mixer.ReadSamples(out[off:end]); err != nil {
			return nil, fmt.Errorf("sndpool: render: %w", err)
		}
		s.Tick()
	}
	return out, nil
}

// Close stops every channel.
func (s *System) Close() error {
	s.sched.StopAll()
	return s.mixer.Close()
}
