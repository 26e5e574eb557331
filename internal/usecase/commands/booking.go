package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"
)

var (
	ErrUserNotFound            = errs.New("user not found")
	ErrItemNotFound            = errs.New("item not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrItemNotAvailable        = errs.New("item is not available")
	ErrOwnItemBooking          = errs.New("cannot book own item")
	ErrApproveNotAllowed       = errs.New("only the item owner can decide a booking")
	ErrBookingNotWaiting       = errs.New("booking is not waiting for approval")
	ErrInvalidPeriod           = errs.New("invalid booking period")
	ErrDataConflict            = errs.New("data conflict")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type BookingCommands interface {
	// Create opens a WAITING booking for the acting user on the given item.
	Create(ctx context.Context, actorID int64, in CreateBookingInput) (*queries.BookingView, error)
	// Approve applies the item owner's verdict on a WAITING booking.
	Approve(ctx context.Context, actorID, bookingID int64, approved bool) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	cache          queries.SummaryCache
	services       booking.Services
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	cache queries.SummaryCache,
	services booking.Services,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		cache:          cache,
		services:       services,
	}
}

func (u *bookingUseCaseImpl) Create(ctx context.Context, actorID int64, in CreateBookingInput) (*queries.BookingView, error) {
	period := booking.NewPeriod(in.Start, in.End)
	if vs := u.services.PeriodValidator(period, u.services.Clock.Now()); len(vs) > 0 {
		return nil, errs.Mark(errs.New(string(vs[0])), ErrInvalidPeriod)
	}

	var bookingID int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := u.requireUser(ctx, tx, actorID); err != nil {
			return err
		}

		snap, err := tx.Reads().ItemByID(ctx, in.ItemID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrItemNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity, err := booking.New(item.Item{
			ID:        snap.ID,
			Name:      snap.Name,
			Available: snap.Available,
			OwnerID:   snap.OwnerID,
		}, actorID, period)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrItemNotAvailable):
				return ErrItemNotAvailable
			case errors.Is(err, booking.ErrOwnItem):
				return ErrOwnItemBooking
			default:
				return err
			}
		}

		bookingID, err = tx.Bookings().Create(ctx, entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrDataConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidateSummary(ctx, in.ItemID)
	return u.readBack(ctx, bookingID)
}

func (u *bookingUseCaseImpl) Approve(ctx context.Context, actorID, bookingID int64, approved bool) (*queries.BookingView, error) {
	var itemID int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		itemID = snap.ItemID

		if snap.ItemOwnerID != actorID {
			return ErrApproveNotAllowed
		}

		entity := booking.Reconstruct(
			snap.ID,
			booking.NewPeriod(snap.Start, snap.End),
			snap.Status,
			snap.BookerID,
			snap.ItemID,
		)
		if err := entity.Decide(approved); err != nil {
			return errs.Mark(err, ErrBookingNotWaiting)
		}

		// The WAITING guard in the update makes concurrent decisions safe: the
		// loser sees no row updated.
		updated, err := tx.Bookings().UpdateStatus(ctx, bookingID, booking.StatusWaiting, entity.Status())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !updated {
			return ErrBookingNotWaiting
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidateSummary(ctx, itemID)
	return u.readBack(ctx, bookingID)
}

func (u *bookingUseCaseImpl) requireUser(ctx context.Context, tx shared.Tx, id int64) error {
	exists, err := tx.Reads().UserExists(ctx, id)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

// Read-after-write: the caller gets the read-model view, not the entity.
func (u *bookingUseCaseImpl) readBack(ctx context.Context, bookingID int64) (*queries.BookingView, error) {
	view, err := u.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingUseCaseImpl) invalidateSummary(ctx context.Context, itemID int64) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx, itemID); err != nil {
		slog.Warn("summary cache invalidation failed", "item_id", itemID, "error", err.Error())
	}
}
