//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
	"shareit/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	entries map[int64]*queries.ItemBookingSummary
	getErr  error
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[int64]*queries.ItemBookingSummary{}}
}

func (c *memoryCache) Get(_ context.Context, itemID int64) (*queries.ItemBookingSummary, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[itemID], nil
}

func (c *memoryCache) Set(_ context.Context, s *queries.ItemBookingSummary) error {
	c.sets++
	c.entries[s.ItemID] = s
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, itemID int64) error {
	delete(c.entries, itemID)
	return nil
}

func view(id int64, status booking.Status, startOffset, endOffset time.Duration, bookerID int64) *queries.BookingView {
	return builder.NewBookingBuilder().
		WithID(id).
		WithStatus(status).
		WithStart(builder.BaseTime.Add(startOffset)).
		WithEnd(builder.BaseTime.Add(endOffset)).
		WithBookerID(bookerID).
		BuildView()
}

func TestItemSummary(t *testing.T) {
	ctx := context.Background()

	newSummaryQueries := func(store *stubStore, cache queries.SummaryCache) queries.SummaryQueries {
		return queries.NewSummaryQueries(store, cache, clock.NewMockClock(builder.BaseTime))
	}

	t.Run("next booking is the earliest future APPROVED booking", func(t *testing.T) {
		store := &stubStore{itemRows: []*queries.BookingView{
			view(1, booking.StatusApproved, 72*time.Hour, 96*time.Hour, 11),
			view(2, booking.StatusApproved, 24*time.Hour, 48*time.Hour, 12),
			view(3, booking.StatusWaiting, 12*time.Hour, 18*time.Hour, 13),
		}}

		s, err := newSummaryQueries(store, newMemoryCache()).ItemSummary(ctx, 100)
		require.NoError(t, err)

		want := &queries.ItemBookingSummary{
			ItemID:      100,
			NextBooking: &queries.ItemBookingRef{ID: 2, BookerID: 12},
		}
		assert.Empty(t, cmp.Diff(want, s))
	})

	t.Run("last booking ignores status", func(t *testing.T) {
		// A REJECTED booking that started earlier but ends later still wins the
		// last slot; only the next slot filters on APPROVED.
		store := &stubStore{itemRows: []*queries.BookingView{
			view(1, booking.StatusApproved, -96*time.Hour, -72*time.Hour, 11),
			view(2, booking.StatusRejected, -48*time.Hour, -12*time.Hour, 12),
		}}

		s, err := newSummaryQueries(store, newMemoryCache()).ItemSummary(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, s.LastBooking)
		assert.Equal(t, int64(2), s.LastBooking.ID)
		assert.Nil(t, s.NextBooking)
	})

	t.Run("in-progress booking counts as last, not next", func(t *testing.T) {
		store := &stubStore{itemRows: []*queries.BookingView{
			view(1, booking.StatusApproved, -time.Hour, time.Hour, 11),
		}}

		s, err := newSummaryQueries(store, newMemoryCache()).ItemSummary(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, s.LastBooking)
		assert.Equal(t, int64(1), s.LastBooking.ID)
		assert.Nil(t, s.NextBooking)
	})

	t.Run("no bookings yields empty summary", func(t *testing.T) {
		store := &stubStore{}

		s, err := newSummaryQueries(store, newMemoryCache()).ItemSummary(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, s.NextBooking)
		assert.Nil(t, s.LastBooking)
		assert.Equal(t, int64(100), s.ItemID)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		cache := newMemoryCache()
		cached := &queries.ItemBookingSummary{ItemID: 100}
		cache.entries[100] = cached

		store := &stubStore{itemRows: []*queries.BookingView{
			view(1, booking.StatusApproved, 24*time.Hour, 48*time.Hour, 11),
		}}

		s, err := newSummaryQueries(store, cache).ItemSummary(ctx, 100)
		require.NoError(t, err)
		assert.Same(t, cached, s)
		assert.Zero(t, cache.sets)
	})

	t.Run("cache failure falls back to the store", func(t *testing.T) {
		cache := newMemoryCache()
		cache.getErr = errs.New("redis down")

		store := &stubStore{itemRows: []*queries.BookingView{
			view(1, booking.StatusApproved, 24*time.Hour, 48*time.Hour, 11),
		}}

		s, err := newSummaryQueries(store, cache).ItemSummary(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, s.NextBooking)
	})

	t.Run("computed summary is written back", func(t *testing.T) {
		cache := newMemoryCache()
		store := &stubStore{}

		_, err := newSummaryQueries(store, cache).ItemSummary(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.sets)
	})
}

func TestHasFinishedApprovedBooking(t *testing.T) {
	ctx := context.Background()

	store := &stubStore{exists: true}
	q := queries.NewSummaryQueries(store, newMemoryCache(), clock.NewMockClock(builder.BaseTime))

	eligible, err := q.HasFinishedApprovedBooking(ctx, 10, 100)
	require.NoError(t, err)
	assert.True(t, eligible)
}
