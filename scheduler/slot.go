// SPDX-License-Identifier: EPL-2.0

package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	PriorityLow    = 0
	PriorityMedium = 1
	PriorityHigh   = 2
)

// Slot records one sound playing on one channel. Slots are values: the
// scheduler replaces them wholesale and hands out copies, never its own.
type Slot struct {
	// ID is assigned by the scheduler and unique per slot.
	ID uuid.UUID
	// Sound is the handle that was played. Compared by identity.
	Sound Sound
	// Priority is one of PriorityLow, PriorityMedium or PriorityHigh.
	Priority int
	// Name is an optional label; several slots may share it.
	Name string
	// OwnerID is the caller's correlation id, empty when unset.
	OwnerID string
	// Channel is the absolute backend channel hosting the sound.
	Channel int
	// Start is when playback started.
	Start time.Time
	// Duration is one pass of the sound, fixed when the slot is created.
	Duration time.Duration
}

func newSlot(id uuid.UUID, s Sound, priority int, name string, channel int, owner string, now time.Time) (*Slot, error) {
	length, err := s.Length()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoLength, err)
	}

	return &Slot{
		ID:       id,
		Sound:    s,
		Priority: normalizePriority(priority),
		Name:     name,
		OwnerID:  owner,
		Channel:  channel,
		Start:    now,
		Duration: length,
	}, nil
}

// Protected reports whether Stop leaves the slot alone.
func (s *Slot) Protected() bool { return s.Priority > PriorityLow }

// Remaining is the playback time left at now. It goes negative when a
// finished channel has not been reconciled yet, and does not account for
// looping.
func (s *Slot) Remaining(now time.Time) time.Duration {
	return s.Duration - now.Sub(s.Start)
}

// LogValue implements slog.LogValuer.
func (s *Slot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", s.Name),
		slog.String("id", s.ID.String()),
		slog.String("owner", s.OwnerID),
		slog.Int("priority", s.Priority),
		slog.Int("channel", s.Channel),
		slog.Duration("length", s.Duration),
	)
}

func (s *Slot) clone() *Slot {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// normalizePriority maps anything outside the known levels to PriorityLow.
func normalizePriority(p int) int {
	if p < PriorityLow || p > PriorityHigh {
		return PriorityLow
	}
	return p
}
