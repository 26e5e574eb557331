package queries

import (
	"context"
	"log/slog"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/clock"
)

// ItemBookingRef exposes only the booking id and the booker's id; the full
// booking is never handed to the item side.
type ItemBookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type ItemBookingSummary struct {
	ItemID      int64           `json:"itemId"`
	NextBooking *ItemBookingRef `json:"nextBooking,omitempty"`
	LastBooking *ItemBookingRef `json:"lastBooking,omitempty"`
}

type SummaryQueries interface {
	// ItemSummary derives the next/last booking annotations shown to an item's
	// owner.
	ItemSummary(ctx context.Context, itemID int64) (*ItemBookingSummary, error)
	// HasFinishedApprovedBooking gates comment submission: true iff the user
	// holds an APPROVED booking on the item that ended before now.
	HasFinishedApprovedBooking(ctx context.Context, userID, itemID int64) (bool, error)
}

// SummaryCache is a read-through cache for item summaries. Get returns
// (nil, nil) on a miss; failures are treated as misses by the caller.
type SummaryCache interface {
	Get(ctx context.Context, itemID int64) (*ItemBookingSummary, error)
	Set(ctx context.Context, summary *ItemBookingSummary) error
	Invalidate(ctx context.Context, itemID int64) error
}

type summaryQueriesImpl struct {
	store BookingReadStore
	cache SummaryCache
	clock clock.Clock
}

func NewSummaryQueries(store BookingReadStore, cache SummaryCache, clk clock.Clock) SummaryQueries {
	return &summaryQueriesImpl{store: store, cache: cache, clock: clk}
}

func (q *summaryQueriesImpl) ItemSummary(ctx context.Context, itemID int64) (*ItemBookingSummary, error) {
	if q.cache != nil {
		cached, err := q.cache.Get(ctx, itemID)
		if err != nil {
			slog.Warn("summary cache read failed", "item_id", itemID, "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	bookings, err := q.store.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	summary := &ItemBookingSummary{ItemID: itemID}

	// nextBooking considers APPROVED bookings only; lastBooking deliberately
	// does not filter by status. The asymmetry is inherited behavior.
	var next, last *BookingView
	for _, b := range bookings {
		if b.Start.After(now) && b.Status == string(booking.StatusApproved) {
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		}
		if b.Start.Before(now) {
			if last == nil || b.End.After(last.End) {
				last = b
			}
		}
	}
	if next != nil {
		summary.NextBooking = &ItemBookingRef{ID: next.ID, BookerID: next.Booker.ID}
	}
	if last != nil {
		summary.LastBooking = &ItemBookingRef{ID: last.ID, BookerID: last.Booker.ID}
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, summary); err != nil {
			slog.Warn("summary cache write failed", "item_id", itemID, "error", err.Error())
		}
	}
	return summary, nil
}

func (q *summaryQueriesImpl) HasFinishedApprovedBooking(ctx context.Context, userID, itemID int64) (bool, error) {
	return q.store.ExistsFinishedApproved(ctx, userID, itemID, q.clock.Now())
}
