// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/sndpool/audio"
)

// Entry names a file to load into a Bank.
type Entry struct {
	Name string
	Path string
}

// Bank decodes sounds once and hands out the same *Sound for a name from
// then on. Handle identity matters: the scheduler finds duplicates by
// comparing handles. A Bank is safe for concurrent use.
type Bank struct {
	reg    *audio.Registry
	rate   int
	items  *cache.Cache
	logger *slog.Logger
	limit  int
}

// BankOption configures a Bank.
type BankOption func(*Bank)

// WithBankLogger sets the logger for load records.
func WithBankLogger(l *slog.Logger) BankOption {
	return func(b *Bank) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithConcurrency bounds how many files LoadAll decodes at once.
// Defaults to GOMAXPROCS.
func WithConcurrency(n int) BankOption {
	return func(b *Bank) {
		if n > 0 {
			b.limit = n
		}
	}
}

// NewBank returns an empty bank decoding through reg to rate.
func NewBank(reg *audio.Registry, rate int, opts ...BankOption) *Bank {
	b := &Bank{
		reg:    reg,
		rate:   rate,
		items:  cache.New(cache.NoExpiration, 0),
		logger: slog.Default(),
		limit:  runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Rate is the sample rate every sound in the bank is decoded to.
func (b *Bank) Rate() int { return b.rate }

// Get returns the sound stored under name.
func (b *Bank) Get(name string) (*Sound, error) {
	v, ok := b.items.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return v.(*Sound), nil
}

// Add stores s under its own name. When the name is taken the stored sound
// wins and is returned instead.
func (b *Bank) Add(s *Sound) *Sound {
	if err := b.items.Add(s.Name(), s, cache.NoExpiration); err != nil {
		if v, ok := b.items.Get(s.Name()); ok {
			return v.(*Sound)
		}
		// Removed between Add and Get.
		b.items.Set(s.Name(), s, cache.NoExpiration)
	}
	return s
}

// Load decodes the file at path under name, unless name is already loaded.
func (b *Bank) Load(name, path string) (*Sound, error) {
	if s, err := b.Get(name); err == nil {
		return s, nil
	}

	s, err := Open(b.reg, path, b.rate)
	if err != nil {
		return nil, err
	}
	s.name = name

	s = b.Add(s)
	b.logger.Debug("sound: loaded", "name", name, "path", path, "frames", s.Frames())
	return s, nil
}

// LoadAll loads every entry in parallel. The first failure cancels the
// entries not started yet and is returned.
func (b *Bank) LoadAll(ctx context.Context, entries []Entry) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.limit)

	for _, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := b.Load(e.Name, e.Path); err != nil {
				return fmt.Errorf("load %q: %w", e.Name, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Remove drops name from the bank. Sounds already playing are unaffected.
func (b *Bank) Remove(name string) {
	b.items.Delete(name)
}

// Names lists the loaded sounds in sorted order.
func (b *Bank) Names() []string {
	items := b.items.Items()
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len is the number of loaded sounds.
func (b *Bank) Len() int { return b.items.ItemCount() }
