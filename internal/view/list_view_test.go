package view

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-attendance-gateway/internal/query"
)

type row struct {
	ID   string
	Room string
}

var rowSchema = query.NewSchema(
	query.Contains("room", "Rooms", query.Always(func(r row) string { return r.Room })),
)

type fakeBackend struct {
	mu      sync.Mutex
	rows    []row
	err     error
	calls   int
	deleted []string
}

func (f *fakeBackend) load(ctx context.Context) ([]row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]row(nil), f.rows...), nil
}

func (f *fakeBackend) remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestRefreshReplacesRecords(t *testing.T) {
	backend := &fakeBackend{rows: []row{{ID: "1", Room: "V209"}}}
	v := New("rooms", rowSchema, backend.load, nil)

	require.NoError(t, v.Refresh(context.Background()))
	assert.Len(t, v.Records(), 1)
	assert.False(t, v.FetchedAt().IsZero())

	backend.rows = []row{{ID: "2", Room: "V401"}, {ID: "3", Room: "V303"}}
	require.NoError(t, v.Refresh(context.Background()))
	assert.Equal(t, []row{{ID: "2", Room: "V401"}, {ID: "3", Room: "V303"}}, v.Records())
}

func TestRefreshFailureResetsToEmpty(t *testing.T) {
	backend := &fakeBackend{rows: []row{{ID: "1", Room: "V209"}}}
	v := New("rooms", rowSchema, backend.load, nil)
	require.NoError(t, v.Refresh(context.Background()))

	backend.err = errors.New("connection refused")
	err := v.Refresh(context.Background())
	require.Error(t, err)
	assert.Empty(t, v.Records())
	assert.True(t, v.FetchedAt().IsZero())
	assert.Len(t, v.Facets()[0].Options, 1)
}

func TestVisibleAppliesFilter(t *testing.T) {
	backend := &fakeBackend{rows: []row{{ID: "1", Room: "V209"}, {ID: "2", Room: "V401"}}}
	v := New("rooms", rowSchema, backend.load, nil)
	require.NoError(t, v.Refresh(context.Background()))

	require.NoError(t, v.SetFilter("room", "v4"))
	assert.Equal(t, []row{{ID: "2", Room: "V401"}}, v.Visible())

	v.ClearFilter()
	assert.Len(t, v.Visible(), 2)
	assert.Empty(t, v.Selection())

	assert.Error(t, v.SetFilter("colour", "blue"))
}

func TestDeleteRefetchesAndRecomputesFacets(t *testing.T) {
	backend := &fakeBackend{rows: []row{{ID: "1", Room: "V209"}, {ID: "2", Room: "V401"}}}
	v := New("rooms", rowSchema, backend.load, nil)
	require.NoError(t, v.Refresh(context.Background()))
	assert.Len(t, v.Facets()[0].Options, 3)

	require.NoError(t, v.Delete(context.Background(), "2", backend.remove))
	assert.Equal(t, []string{"2"}, backend.deleted)
	assert.Equal(t, 2, backend.callCount())
	assert.NotContains(t, v.Facets()[0].Options, query.Option{Label: "V401", Value: "V401"})
}

func TestDeleteFailureSkipsRefetch(t *testing.T) {
	backend := &fakeBackend{rows: []row{{ID: "1", Room: "V209"}}}
	v := New("rooms", rowSchema, backend.load, nil)
	require.NoError(t, v.Refresh(context.Background()))

	backend.err = errors.New("forbidden")
	require.Error(t, v.Delete(context.Background(), "1", backend.remove))
	assert.Equal(t, 1, backend.callCount())
}

func TestCloseDiscardsInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	load := func(ctx context.Context) ([]row, error) {
		close(started)
		<-release
		return []row{{ID: "late"}}, nil
	}
	v := New("rooms", rowSchema, load, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- v.Refresh(context.Background()) }()

	<-started
	v.Close()
	close(release)

	assert.ErrorIs(t, <-errCh, ErrClosed)
	assert.Empty(t, v.Records())
	assert.ErrorIs(t, v.Refresh(context.Background()), ErrClosed)
}

func TestPollRefreshesUntilCancelled(t *testing.T) {
	backend := &fakeBackend{rows: []row{{ID: "1"}}}
	v := New("rooms", rowSchema, backend.load, nil)

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan error, 16)
	done := make(chan struct{})
	go func() {
		v.Poll(ctx, 5*time.Millisecond, func(err error) { ticks <- err })
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case err := <-ticks:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("poll did not tick")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poll did not stop after cancel")
	}
	assert.GreaterOrEqual(t, backend.callCount(), 2)
}

func TestPollStopsOnClose(t *testing.T) {
	backend := &fakeBackend{}
	v := New("rooms", rowSchema, backend.load, nil)

	done := make(chan struct{})
	go func() {
		v.Poll(context.Background(), time.Hour, nil)
		close(done)
	}()
	v.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poll did not stop after close")
	}
}
