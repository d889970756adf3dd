// SPDX-License-Identifier: EPL-2.0

package scheduler

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope of the scheduler counters.
const meterName = "github.com/ik5/sndpool/scheduler"

// Stop reasons recorded on the stops counter.
const (
	reasonPriority  = "priority"
	reasonDuplicate = "duplicate"
	reasonExcept    = "except"
	reasonAll       = "all"
	reasonName      = "name"
	reasonOwner     = "owner"
)

type metrics struct {
	// plays counts sounds started on a channel.
	plays metric.Int64Counter
	// drops counts requests that found their channel busy.
	drops metric.Int64Counter
	// stops counts channels stopped, by "reason".
	stops metric.Int64Counter
	// finished counts slots cleared by Reconcile.
	finished metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	meter := mp.Meter(meterName)

	var (
		m    metrics
		err  error
		errs []error
	)

	m.plays, err = meter.Int64Counter("sndpool.scheduler.plays",
		metric.WithDescription("Sounds started on a channel."))
	errs = append(errs, err)

	m.drops, err = meter.Int64Counter("sndpool.scheduler.drops",
		metric.WithDescription("Play requests dropped because the cursor channel was busy."))
	errs = append(errs, err)

	m.stops, err = meter.Int64Counter("sndpool.scheduler.stops",
		metric.WithDescription("Channels stopped by the scheduler."))
	errs = append(errs, err)

	m.finished, err = meter.Int64Counter("sndpool.scheduler.finished",
		metric.WithDescription("Slots cleared by reconciliation."))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *metrics) stopped(reason string) {
	m.stops.Add(context.Background(), 1, metric.WithAttributes(attribute.String("reason", reason)))
}
