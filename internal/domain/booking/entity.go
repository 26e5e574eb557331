package booking

import (
	"shareit/internal/domain/item"
	"shareit/internal/pkg/errs"
)

var (
	ErrItemNotAvailable = errs.New("item is not available for booking")
	ErrOwnItem          = errs.New("owner cannot book their own item")
	ErrNotWaiting       = errs.New("booking is not waiting for approval")
)

type Booking struct {
	id       int64
	period   Period
	status   Status
	bookerID int64
	itemID   int64
}

// New creates a WAITING booking for the given item. The item snapshot is taken
// at creation time; availability is never re-checked at approval time.
func New(it item.Item, bookerID int64, period Period) (*Booking, error) {
	if !it.Available {
		return nil, ErrItemNotAvailable
	}
	if it.OwnerID == bookerID {
		return nil, ErrOwnItem
	}

	return &Booking{
		period:   period,
		status:   StatusWaiting,
		bookerID: bookerID,
		itemID:   it.ID,
	}, nil
}

func Reconstruct(id int64, period Period, status Status, bookerID, itemID int64) *Booking {
	return &Booking{
		id:       id,
		period:   period,
		status:   status,
		bookerID: bookerID,
		itemID:   itemID,
	}
}

// Decide applies the owner's verdict. Valid only from WAITING; both outcomes
// are terminal, so a second decision always fails.
func (b *Booking) Decide(approved bool) error {
	if b.status.IsTerminal() {
		return ErrNotWaiting
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

func (b *Booking) ID() int64       { return b.id }
func (b *Booking) Period() Period  { return b.period }
func (b *Booking) Status() Status  { return b.status }
func (b *Booking) BookerID() int64 { return b.bookerID }
func (b *Booking) ItemID() int64   { return b.itemID }
