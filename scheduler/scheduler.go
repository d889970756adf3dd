// SPDX-License-Identifier: EPL-2.0

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Scheduler owns a reserved range of backend channels and assigns play
// requests to them round-robin. See the package documentation for the
// allocation policy.
type Scheduler struct {
	backend Backend

	count  int
	start  int // first reserved channel
	end    int // one past the last reserved channel
	cursor int // next channel to try, in [start, end)

	slots []*Slot // index-aligned with [start, end)

	width         float64
	now           func() time.Time
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	metrics       *metrics
}

// New reserves count channels on backend and returns a scheduler over them.
func New(backend Backend, count int, opts ...Option) (*Scheduler, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: need at least one channel, got %d", ErrReserve, count)
	}

	s := &Scheduler{
		backend:       backend,
		count:         count,
		now:           time.Now,
		logger:        slog.Default(),
		meterProvider: otel.GetMeterProvider(),
	}
	for _, o := range opts {
		o(s)
	}

	m, err := newMetrics(s.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("scheduler: metrics: %w", err)
	}
	s.metrics = m

	start, err := backend.Reserve(count)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReserve, err)
	}

	s.start = start
	s.end = start + count
	s.cursor = start
	s.slots = make([]*Slot, count)

	s.logger.Debug("scheduler: channels reserved", "start", s.start, "end", s.end)

	return s, nil
}

// Reserved is the number of channels owned by the scheduler.
func (s *Scheduler) Reserved() int { return s.count }

// Start is the first reserved channel number.
func (s *Scheduler) Start() int { return s.start }

// End is one past the last reserved channel number.
func (s *Scheduler) End() int { return s.end }

// Next is the channel the next Play call will try.
func (s *Scheduler) Next() int { return s.cursor }

// Play tries to start snd on the channel under the cursor.
//
// On success the returned slot describes the channel just filled. A nil
// slot with a nil error means nothing was played: either snd was nil or the
// channel was busy, in which case priority-0 duplicates of snd were stopped
// instead. The cursor advances in both cases.
//
// An error leaves the cursor and the backend untouched, except when the
// backend itself fails to start playback.
func (s *Scheduler) Play(snd Sound, opts ...PlayOption) (*Slot, error) {
	if absent(snd) {
		return nil, nil
	}

	req := newPlayRequest(opts)
	ch := s.cursor

	if s.backend.Busy(ch) {
		dups := s.FindBySound(snd)
		s.metrics.drops.Add(context.Background(), 1)
		s.logger.Debug("scheduler: channel busy, request dropped",
			"channel", ch, "name", req.name, "duplicates", len(dups))

		s.stopEvictable(dups, reasonDuplicate)
		s.reconcile()
		s.advance()
		return nil, nil
	}

	left, right := req.volume, req.volume
	if req.pan {
		l, r, err := Pan(req.x, s.width)
		if err != nil {
			return nil, fmt.Errorf("scheduler: pan: %w", err)
		}
		left, right = l*req.volume, r*req.volume
	}

	slot, err := newSlot(uuid.New(), snd, req.priority, req.name, ch, req.owner, s.now())
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	if err := s.backend.Play(ch, snd, req.loop, req.fadeIn); err != nil {
		return nil, fmt.Errorf("scheduler: play on channel %d: %w", ch, err)
	}
	s.backend.SetVolume(ch, left, right)

	s.slots[ch-s.start] = slot
	s.advance()

	s.metrics.plays.Add(context.Background(), 1)
	s.logger.Debug("scheduler: playing", "slot", slot, "loop", req.loop)

	return slot.clone(), nil
}

func (s *Scheduler) advance() {
	s.cursor++
	if s.cursor >= s.end {
		s.cursor = s.start
	}
}

// Reconcile clears the slots of channels the backend reports idle and
// returns how many were cleared. Call it once per tick.
func (s *Scheduler) Reconcile() int {
	return s.reconcile()
}

func (s *Scheduler) reconcile() int {
	cleared := 0
	for i, slot := range s.slots {
		if slot == nil {
			continue
		}
		if !s.backend.Busy(s.start + i) {
			s.slots[i] = nil
			cleared++
		}
	}

	if cleared > 0 {
		s.metrics.finished.Add(context.Background(), int64(cleared))
	}
	return cleared
}

// SetVolume applies v to every reserved channel at once. Values outside
// [0, 1] reset to 1.0. The value is not remembered: later Play calls use
// their own volume.
func (s *Scheduler) SetVolume(v float64) {
	v = normalizeVolume(v)
	for ch := s.start; ch < s.end; ch++ {
		s.backend.SetVolume(ch, v, v)
	}
}

// Stop stops the listed channels whose slot has priority 0. Protected
// slots are left playing. Channels outside the reserved range are skipped
// and reported as ErrInvalidChannel.
func (s *Scheduler) Stop(channels ...int) error {
	var errs []error
	valid := make([]int, 0, len(channels))
	for _, ch := range channels {
		if !s.owns(ch) {
			errs = append(errs, fmt.Errorf("%w: %d not in [%d, %d)", ErrInvalidChannel, ch, s.start, s.end))
			continue
		}
		valid = append(valid, ch)
	}

	s.stopEvictable(valid, reasonPriority)
	s.reconcile()

	return errors.Join(errs...)
}

func (s *Scheduler) stopEvictable(channels []int, reason string) {
	for _, ch := range channels {
		slot := s.slots[ch-s.start]
		if slot == nil || slot.Protected() {
			continue
		}
		s.stopChannel(ch, reason)
	}
}

// StopAllExcept stops every occupied channel whose owner id is not in
// owners, regardless of priority. Slots without an owner id are stopped
// too. An empty owners list does nothing.
func (s *Scheduler) StopAllExcept(owners ...string) {
	if len(owners) == 0 {
		return
	}

	keep := make(map[string]struct{}, len(owners))
	for _, id := range owners {
		keep[id] = struct{}{}
	}

	s.stopMatching(reasonExcept, func(slot *Slot) bool {
		_, ok := keep[slot.OwnerID]
		return !ok
	})
}

// StopAll stops every occupied channel regardless of priority.
func (s *Scheduler) StopAll() {
	s.stopMatching(reasonAll, func(*Slot) bool { return true })
}

// StopByName stops every channel whose slot carries name, regardless of
// priority.
func (s *Scheduler) StopByName(name string) {
	s.stopMatching(reasonName, func(slot *Slot) bool { return slot.Name == name })
}

// StopByOwner stops every channel whose slot carries the owner id,
// regardless of priority.
func (s *Scheduler) StopByOwner(id string) {
	s.stopMatching(reasonOwner, func(slot *Slot) bool { return slot.OwnerID == id })
}

func (s *Scheduler) stopMatching(reason string, match func(*Slot) bool) {
	for i, slot := range s.slots {
		if slot != nil && match(slot) {
			s.stopChannel(s.start+i, reason)
		}
	}
	s.reconcile()
}

func (s *Scheduler) stopChannel(ch int, reason string) {
	s.backend.Stop(ch)
	s.metrics.stopped(reason)
	s.logger.Debug("scheduler: channel stopped", "channel", ch, "reason", reason)
}

// FreeChannels lists the idle channels in ascending order.
func (s *Scheduler) FreeChannels() []int {
	free := make([]int, 0, s.count)
	for ch := s.start; ch < s.end; ch++ {
		if !s.backend.Busy(ch) {
			free = append(free, ch)
		}
	}
	return free
}

// Slots returns a copy of the slot table, index-aligned with the reserved
// range. Empty channels are nil.
func (s *Scheduler) Slots() []*Slot {
	out := make([]*Slot, len(s.slots))
	for i, slot := range s.slots {
		out[i] = slot.clone()
	}
	return out
}

// Slot returns the slot on channel, or nil when the channel is empty.
func (s *Scheduler) Slot(channel int) (*Slot, error) {
	if !s.owns(channel) {
		return nil, fmt.Errorf("%w: %d not in [%d, %d)", ErrInvalidChannel, channel, s.start, s.end)
	}
	return s.slots[channel-s.start].clone(), nil
}

// FindBySound lists the channels whose slot holds exactly snd.
func (s *Scheduler) FindBySound(snd Sound) []int {
	var out []int
	for _, slot := range s.slots {
		if slot != nil && slot.Sound == snd {
			out = append(out, slot.Channel)
		}
	}
	return out
}

// FindByOwner returns copies of the slots carrying the owner id.
func (s *Scheduler) FindByOwner(id string) []*Slot {
	var out []*Slot
	for _, slot := range s.slots {
		if slot != nil && slot.OwnerID == id {
			out = append(out, slot.clone())
		}
	}
	return out
}

// TimeRemaining reports how long the first slot with the owner id has left
// to play, or 0 when no slot matches. The value is derived from wall-clock
// time and can turn negative if reconciliation lags behind.
func (s *Scheduler) TimeRemaining(id string) time.Duration {
	for _, slot := range s.slots {
		if slot != nil && slot.OwnerID == id {
			return slot.Remaining(s.now())
		}
	}
	return 0
}

// LogSlots writes one Info record per occupied channel.
func (s *Scheduler) LogSlots(ctx context.Context) {
	now := s.now()
	for _, slot := range s.slots {
		if slot == nil {
			continue
		}
		s.logger.InfoContext(ctx, "scheduler: slot",
			"slot", slot,
			"remaining", slot.Remaining(now).Round(10*time.Millisecond))
	}
}

func (s *Scheduler) owns(ch int) bool {
	return ch >= s.start && ch < s.end
}

// absent treats both a nil interface and a typed nil pointer as no sound.
func absent(snd Sound) bool {
	if snd == nil {
		return true
	}
	v := reflect.ValueOf(snd)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
