package repository

import (
	"context"
	"errors"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrClassIntegrityViolation = "23"

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	const query = `
		INSERT INTO bookings (start_date, end_date, status, booker_id, item_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		b.Period().Start(),
		b.Period().End(),
		string(b.Status()),
		b.BookerID(),
		b.ItemID(),
	).Scan(&id)
	if err != nil {
		if isIntegrityViolation(err) {
			return 0, infra.WrapRepoErr("failed to create booking", err, infra.KindConflict)
		}
		return 0, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

// UpdateStatus carries the previous status in the WHERE clause so concurrent
// decisions serialize on the row: exactly one caller observes an update.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to booking.Status) (bool, error) {
	const query = `
		UPDATE bookings
		SET status = $1
		WHERE id = $2 AND status = $3`

	tag, err := r.db.Exec(ctx, query, string(to), id, string(from))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func isIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgErrClassIntegrityViolation
}
