// SPDX-License-Identifier: EPL-2.0

package scheduler

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a Scheduler during construction.
type Option func(*Scheduler)

// WithLogger sets the logger used for debug records and LogSlots.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithScreenWidth sets the reference width for WithPan. Panning fails with
// ErrInvalidWidth until a positive width is configured.
func WithScreenWidth(width float64) Option {
	return func(s *Scheduler) {
		s.width = width
	}
}

// WithMeterProvider records scheduler counters through mp instead of the
// global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Scheduler) {
		if mp != nil {
			s.meterProvider = mp
		}
	}
}

// PlayOption tunes a single Play request.
type PlayOption func(*playRequest)

type playRequest struct {
	loop     bool
	priority int
	volume   float64
	fadeIn   time.Duration
	pan      bool
	x        float64
	name     string
	owner    string
}

func newPlayRequest(opts []PlayOption) playRequest {
	req := playRequest{volume: 1.0}
	for _, o := range opts {
		o(&req)
	}

	req.priority = normalizePriority(req.priority)
	req.volume = normalizeVolume(req.volume)
	if req.fadeIn < 0 {
		req.fadeIn = 0
	}
	return req
}

// Loop repeats the sound until it is stopped.
func Loop() PlayOption {
	return func(r *playRequest) { r.loop = true }
}

// WithPriority sets the slot priority. Values other than 0, 1 and 2 fall
// back to PriorityLow.
func WithPriority(p int) PlayOption {
	return func(r *playRequest) { r.priority = p }
}

// WithVolume sets the channel gain. Values outside [0, 1] fall back to 1.0.
func WithVolume(v float64) PlayOption {
	return func(r *playRequest) { r.volume = v }
}

// WithFadeIn ramps the sound up from silence over d.
func WithFadeIn(d time.Duration) PlayOption {
	return func(r *playRequest) { r.fadeIn = d }
}

// WithPan plays the sound in stereo, split according to the horizontal
// position x against the configured screen width.
func WithPan(x float64) PlayOption {
	return func(r *playRequest) {
		r.pan = true
		r.x = x
	}
}

// WithName labels the slot.
func WithName(name string) PlayOption {
	return func(r *playRequest) { r.name = name }
}

// WithOwner tags the slot with a caller correlation id.
func WithOwner(id string) PlayOption {
	return func(r *playRequest) { r.owner = id }
}

// normalizeVolume keeps v when it is a valid gain and resets it to full
// volume otherwise. Out-of-range values are not clamped to the nearest bound.
func normalizeVolume(v float64) float64 {
	if !(v >= 0 && v <= 1) {
		return 1.0
	}
	return v
}
