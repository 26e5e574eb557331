//go:build unit

package builder

import (
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"
)

// BaseTime anchors every relative offset in tests so clock-sensitive logic is
// deterministic.
var BaseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	id        int64
	start     time.Time
	end       time.Time
	status    booking.Status
	bookerID  int64
	itemID    int64
	itemName  string
	ownerID   int64
	available bool
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		id:        1,
		start:     BaseTime.Add(24 * time.Hour),
		end:       BaseTime.Add(48 * time.Hour),
		status:    booking.StatusWaiting,
		bookerID:  10,
		itemID:    100,
		itemName:  "cordless drill",
		ownerID:   20,
		available: true,
	}
}

func (b *BookingBuilder) WithID(id int64) *BookingBuilder           { b.id = id; return b }
func (b *BookingBuilder) WithStart(t time.Time) *BookingBuilder     { b.start = t; return b }
func (b *BookingBuilder) WithEnd(t time.Time) *BookingBuilder       { b.end = t; return b }
func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.status = s
	return b
}
func (b *BookingBuilder) WithBookerID(id int64) *BookingBuilder { b.bookerID = id; return b }
func (b *BookingBuilder) WithItemID(id int64) *BookingBuilder   { b.itemID = id; return b }
func (b *BookingBuilder) WithOwnerID(id int64) *BookingBuilder  { b.ownerID = id; return b }
func (b *BookingBuilder) Unavailable() *BookingBuilder          { b.available = false; return b }

func (b *BookingBuilder) BuildItem() item.Item {
	return item.Item{
		ID:        b.itemID,
		Name:      b.itemName,
		Available: b.available,
		OwnerID:   b.ownerID,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.New(b.BuildItem(), b.bookerID, booking.NewPeriod(b.start, b.end))
}

func (b *BookingBuilder) BuildReconstructed() *booking.Booking {
	return booking.Reconstruct(b.id, booking.NewPeriod(b.start, b.end), b.status, b.bookerID, b.itemID)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:          b.id,
		Start:       b.start,
		End:         b.end,
		Status:      string(b.status),
		Booker:      queries.BookingBooker{ID: b.bookerID},
		Item:        queries.BookingItem{ID: b.itemID, Name: b.itemName},
		ItemOwnerID: b.ownerID,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:          b.id,
		Start:       b.start,
		End:         b.end,
		Status:      b.status,
		BookerID:    b.bookerID,
		ItemID:      b.itemID,
		ItemOwnerID: b.ownerID,
	}
}

func (b *BookingBuilder) BuildItemSnapshot() *shared.ItemSnapshot {
	return &shared.ItemSnapshot{
		ID:        b.itemID,
		Name:      b.itemName,
		Available: b.available,
		OwnerID:   b.ownerID,
	}
}
