// Package cache provides the bounded, exact-key caches used to memoize calls
// to external capabilities.
package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"maternal-companion-go/pkg/log"
)

// DefaultSize is the capacity of each cache when none is configured.
const DefaultSize = 50

// Store is a bounded string cache with least-recently-used eviction.
type Store interface {
	// Get returns the cached value and refreshes its recency.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value, evicting the least recently used entry when full.
	Set(ctx context.Context, key, value string) error
	// Len returns the number of cached entries.
	Len(ctx context.Context) (int, error)
}

// Memo memoizes a loader through a Store. Concurrent loads of the same key
// share one call; failed loads are not cached.
type Memo struct {
	name  string
	store Store
	group singleflight.Group
}

// NewMemo wraps store. name only labels log lines.
func NewMemo(name string, store Store) *Memo {
	return &Memo{name: name, store: store}
}

// Do returns the cached value for key, or calls load and caches its result.
// hit is true when the value came from the cache.
func (m *Memo) Do(ctx context.Context, key string, load func(ctx context.Context) (string, error)) (value string, hit bool, err error) {
	if v, ok, err := m.store.Get(ctx, key); err != nil {
		log.Warnw("cache read failed", "cache", m.name, "error", err)
	} else if ok {
		return v, true, nil
	}

	// the load outlives any single caller so one cancelled request cannot
	// fail the others waiting on the same key
	ch := m.group.DoChan(key, func() (interface{}, error) {
		loadCtx := context.WithoutCancel(ctx)
		loaded, err := load(loadCtx)
		if err != nil {
			return "", err
		}
		if err := m.store.Set(loadCtx, key, loaded); err != nil {
			log.Warnw("cache write failed", "cache", m.name, "error", err)
		}
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", false, res.Err
		}
		return res.Val.(string), false, nil
	}
}

func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", size)
	}
	return nil
}
