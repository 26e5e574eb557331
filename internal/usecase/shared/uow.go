package shared

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on transient
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Reads() CommandReads
}

type CommandReads interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	ItemByID(ctx context.Context, id int64) (*ItemSnapshot, error)
	BookingByID(ctx context.Context, id int64) (*BookingSnapshot, error)
}

// Minimal snapshots for command read operations
type ItemSnapshot struct {
	ID        int64
	Name      string
	Available bool
	OwnerID   int64
}

type BookingSnapshot struct {
	ID          int64
	Start       time.Time
	End         time.Time
	Status      booking.Status
	BookerID    int64
	ItemID      int64
	ItemOwnerID int64
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (int64, error)
	// UpdateStatus transitions id from one status to another and reports whether
	// a row was actually updated. A false result means a concurrent decision won.
	UpdateStatus(ctx context.Context, id int64, from, to booking.Status) (bool, error)
}
