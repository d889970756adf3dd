// SPDX-License-Identifier: EPL-2.0

package scheduler_test

import (
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ik5/sndpool/internal/audiotest"
	"github.com/ik5/sndpool/scheduler"
)

// counters collects every int64 sum into name -> reason -> value. Points
// without a reason attribute land under "".
func counters(t *testing.T, reader sdkmetric.Reader) map[string]map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(t.Context(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	out := make(map[string]map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			byReason := make(map[string]int64)
			for _, dp := range sum.DataPoints {
				reason, _ := dp.Attributes.Value(attribute.Key("reason"))
				byReason[reason.AsString()] += dp.Value
			}
			out[m.Name] = byReason
		}
	}
	return out
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(t.Context()) })

	s, backend := newScheduler(t, 2, scheduler.WithMeterProvider(mp))
	snd := audiotest.NewSound("x", time.Second)

	mustPlay(t, s, snd)
	mustPlay(t, s, snd, scheduler.WithName("keep"), scheduler.WithPriority(1))
	s.Play(snd) // busy: prunes channel 8

	backend.Finish(9)
	s.Reconcile()

	got := counters(t, reader)

	if v := got["sndpool.scheduler.plays"][""]; v != 2 {
		t.Errorf("plays = %d, want 2", v)
	}
	if v := got["sndpool.scheduler.drops"][""]; v != 1 {
		t.Errorf("drops = %d, want 1", v)
	}
	if v := got["sndpool.scheduler.stops"]["duplicate"]; v != 1 {
		t.Errorf("stops{reason=duplicate} = %d, want 1", v)
	}
	if v := got["sndpool.scheduler.finished"][""]; v != 2 {
		t.Errorf("finished = %d, want 2", v)
	}
}
