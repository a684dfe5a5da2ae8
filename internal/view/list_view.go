// Package view holds the per-screen list state: the most recently fetched records,
// the screen's filter selection and the refresh lifecycle tying them to a loader.
package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/query"
)

// ErrClosed is returned by operations on a view that has been torn down.
var ErrClosed = errors.New("view closed")

// Loader fetches the full record array for a screen.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Remover deletes one record by id on the backend.
type Remover func(ctx context.Context, id string) error

// ListView owns one screen's records and filter state. Records are replaced wholesale
// on every fetch; a failed fetch leaves the view empty rather than stale.
type ListView[T any] struct {
	name   string
	schema *query.Schema[T]
	load   Loader[T]
	logger *zap.Logger

	mu        sync.RWMutex
	records   []T
	filter    *query.Filter
	fetchedAt time.Time
	closed    bool
	done      chan struct{}
}

// New constructs a ListView for the given schema and loader.
func New[T any](name string, schema *query.Schema[T], load Loader[T], logger *zap.Logger) *ListView[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListView[T]{
		name:   name,
		schema: schema,
		load:   load,
		logger: logger,
		filter: schema.NewFilter(),
		done:   make(chan struct{}),
	}
}

// Name returns the screen name used in logs.
func (v *ListView[T]) Name() string {
	return v.name
}

// Refresh fetches the record array and replaces the current one.
func (v *ListView[T]) Refresh(ctx context.Context) error {
	if v.isClosed() {
		return ErrClosed
	}
	records, err := v.load(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	if err != nil {
		v.records = nil
		v.fetchedAt = time.Time{}
		v.logger.Sugar().Warnw("list refresh failed", "view", v.name, "error", err)
		return err
	}
	v.records = records
	v.fetchedAt = time.Now().UTC()
	return nil
}

// Delete removes a record through remove and re-fetches on success.
func (v *ListView[T]) Delete(ctx context.Context, id string, remove Remover) error {
	if v.isClosed() {
		return ErrClosed
	}
	if err := remove(ctx, id); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

// Records returns a copy of the most recently fetched records.
func (v *ListView[T]) Records() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]T(nil), v.records...)
}

// FetchedAt returns when the current records were loaded. Zero when empty after failure.
func (v *ListView[T]) FetchedAt() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.fetchedAt
}

// SetFilter sets one filter field.
func (v *ListView[T]) SetFilter(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter.Set(name, value)
}

// ApplySelection sets several filter fields at once.
func (v *ListView[T]) ApplySelection(sel query.Selection) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter.Apply(sel)
}

// ClearFilter resets the filter state.
func (v *ListView[T]) ClearFilter() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Clear()
}

// Selection returns the active filter selection.
func (v *ListView[T]) Selection() query.Selection {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter.Selection()
}

// Visible returns the records that pass the current filter.
func (v *ListView[T]) Visible() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.schema.Apply(v.records, v.filter.Selection())
}

// Facets derives the option lists from the current records. Never cached.
func (v *ListView[T]) Facets() []query.Facet {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.schema.Facets(v.records)
}

// Poll refreshes the view every interval until ctx is cancelled or the view is closed.
// onTick, when set, receives the outcome of each refresh.
func (v *ListView[T]) Poll(ctx context.Context, interval time.Duration, onTick func(error)) {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-v.done:
			return
		case <-ticker.C:
			err := v.Refresh(ctx)
			if errors.Is(err, ErrClosed) {
				return
			}
			if onTick != nil {
				onTick(err)
			}
		}
	}
}

// Close tears the view down. Pollers stop and fetches still in flight are discarded.
func (v *ListView[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.records = nil
	close(v.done)
}

func (v *ListView[T]) isClosed() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.closed
}
