package queries

import (
	"context"
	"time"

	"shareit/internal/pkg/errs"
)

var (
	ErrUserNotFound                = errs.New("user not found")
	ErrBookingNotFound             = errs.New("booking not found")
	ErrBookingNotBelong            = errs.New("booking does not belong to user")
	ErrNoSuchStateForBookingSearch = errs.New("no such state for booking search")
)

// Read model (DTO for read side). ItemOwnerID is carried for authorization
// decisions only and never serialized.
type BookingView struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   string        `json:"status"`
	Booker   BookingBooker `json:"booker"`
	Item     BookingItem   `json:"item"`
	ItemOwnerID int64      `json:"-"`
}

type BookingBooker struct {
	ID int64 `json:"id"`
}

type BookingItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StateFilter selects which partition query a listing call runs. It is never
// persisted.
type StateFilter string

const (
	StateAll      StateFilter = "ALL"
	StateCurrent  StateFilter = "CURRENT"
	StatePast     StateFilter = "PAST"
	StateFuture   StateFilter = "FUTURE"
	StateWaiting  StateFilter = "WAITING"
	StateRejected StateFilter = "REJECTED"
)

func ParseStateFilter(s string) (StateFilter, error) {
	switch StateFilter(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return StateFilter(s), nil
	default:
		return "", ErrNoSuchStateForBookingSearch
	}
}

// Window is the page window handed to the read store. Offset is derived from
// the page-index arithmetic in pageWindow, not the raw `from` value.
type Window struct {
	Limit  int32
	Offset int32
}

// BookingReadStore is the six-partition query surface plus the lookups the
// projector and the comment eligibility check need. Every listing orders by
// start descending.
type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)

	FindAllForBooker(ctx context.Context, bookerID int64, w Window) ([]*BookingView, error)
	FindPastForBooker(ctx context.Context, bookerID int64, now time.Time, w Window) ([]*BookingView, error)
	FindFutureForBooker(ctx context.Context, bookerID int64, now time.Time, w Window) ([]*BookingView, error)
	FindCurrentForBooker(ctx context.Context, bookerID int64, now time.Time, w Window) ([]*BookingView, error)
	FindByStatusForBooker(ctx context.Context, bookerID int64, status string, w Window) ([]*BookingView, error)

	FindAllForOwner(ctx context.Context, ownerID int64, w Window) ([]*BookingView, error)
	FindPastForOwner(ctx context.Context, ownerID int64, now time.Time, w Window) ([]*BookingView, error)
	FindFutureForOwner(ctx context.Context, ownerID int64, now time.Time, w Window) ([]*BookingView, error)
	FindCurrentForOwner(ctx context.Context, ownerID int64, now time.Time, w Window) ([]*BookingView, error)
	FindByStatusForOwner(ctx context.Context, ownerID int64, status string, w Window) ([]*BookingView, error)

	FindByItem(ctx context.Context, itemID int64) ([]*BookingView, error)
	ExistsFinishedApproved(ctx context.Context, bookerID, itemID int64, asOf time.Time) (bool, error)
}

type UserReadStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
