package sales

import (
	"context"
	"sync/atomic"
)

// Store tracks the current Dataset snapshot for long-lived consumers.
// Reload publishes a fresh snapshot with an atomic pointer swap; published
// snapshots are never mutated, so readers keep whatever snapshot they
// obtained for as long as they hold it. A failed reload leaves the previous
// snapshot in place.
type Store struct {
	cur atomic.Pointer[Dataset]
}

// Reload loads src and, on success, publishes the result as the current
// snapshot.
func (s *Store) Reload(ctx context.Context, src Source, opts *LoadOptions) (*Dataset, error) {
	ds, err := Load(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	s.cur.Store(ds)
	return ds, nil
}

// Current returns the live snapshot, or nil before the first Reload.
func (s *Store) Current() *Dataset {
	return s.cur.Load()
}
