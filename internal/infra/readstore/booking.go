package readstore

import (
	"context"
	"errors"
	"time"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

// selectBooking is the shared projection for every booking read. The item name
// and owner come from the join; the owner id feeds authorization, not output.
const selectBooking = `
	SELECT b.id, b.start_date, b.end_date, b.status, b.booker_id,
	       b.item_id, i.name, i.owner_id
	FROM bookings b
	JOIN items i ON i.id = b.item_id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, selectBooking+` WHERE b.id = $1`, id)
	view, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return view, nil
}

func (s *BookingReadStore) FindAllForBooker(ctx context.Context, bookerID int64, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE b.booker_id = $1
		ORDER BY b.start_date DESC
		LIMIT $2 OFFSET $3`,
		bookerID, w.Limit, w.Offset)
}

func (s *BookingReadStore) FindPastForBooker(ctx context.Context, bookerID int64, now time.Time, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE b.booker_id = $1 AND b.end_date < $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4`,
		bookerID, now, w.Limit, w.Offset)
}

func (s *BookingReadStore) FindFutureForBooker(ctx context.Context, bookerID int64, now time.Time, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE b.booker_id = $1 AND b.start_date > $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4`,
		bookerID, now, w.Limit, w.Offset)
}

// CURRENT uses strict inequalities on both ends; a booking starting or ending
// exactly at the probe instant is in neither CURRENT, PAST, nor FUTURE.
func (s *BookingReadStore) FindCurrentForBooker(ctx context.Context, bookerID int64, now time.Time, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE b.booker_id = $1 AND b.start_date < $2 AND b.end_date > $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4`,
		bookerID, now, w.Limit, w.Offset)
}

func (s *BookingReadStore) FindByStatusForBooker(ctx context.Context, bookerID int64, status string, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE b.booker_id = $1 AND b.status = $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4`,
		bookerID, status, w.Limit, w.Offset)
}

func (s *BookingReadStore) FindAllForOwner(ctx context.Context, ownerID int64, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE i.owner_id = $1
		ORDER BY b.start_date DESC
		LIMIT $2 OFFSET $3`,
		ownerID, w.Limit, w.Offset)
}

func (s *BookingReadStore) FindPastForOwner(ctx context.Context, ownerID int64, now time.Time, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE i.owner_id = $1 AND b.end_date < $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4`,
		ownerID, now, w.Limit, w.Offset)
}

func (s *BookingReadStore) FindFutureForOwner(ctx context.Context, ownerID int64, now time.Time, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE i.owner_id = $1 AND b.start_date > $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4`,
		ownerID, now, w.Limit, w.Offset)
}

func (s *BookingReadStore) FindCurrentForOwner(ctx context.Context, ownerID int64, now time.Time, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE i.owner_id = $1 AND b.start_date < $2 AND b.end_date > $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4`,
		ownerID, now, w.Limit, w.Offset)
}

func (s *BookingReadStore) FindByStatusForOwner(ctx context.Context, ownerID int64, status string, w queries.Window) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE i.owner_id = $1 AND b.status = $2
		ORDER BY b.start_date DESC
		LIMIT $3 OFFSET $4`,
		ownerID, status, w.Limit, w.Offset)
}

// FindByItem feeds the summary projector; it is unpaged on purpose since the
// projector scans every booking of the item.
func (s *BookingReadStore) FindByItem(ctx context.Context, itemID int64) ([]*queries.BookingView, error) {
	return s.list(ctx, selectBooking+`
		WHERE b.item_id = $1
		ORDER BY b.start_date DESC`,
		itemID)
}

func (s *BookingReadStore) ExistsFinishedApproved(ctx context.Context, bookerID, itemID int64, asOf time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE booker_id = $1 AND item_id = $2
			  AND status = 'APPROVED' AND end_date < $3
		)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, bookerID, itemID, asOf).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check finished bookings", err)
	}
	return exists, nil
}

func (s *BookingReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	views := []*queries.BookingView{}
	for rows.Next() {
		view, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return views, nil
}

func scanBooking(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID,
		&v.Start,
		&v.End,
		&v.Status,
		&v.Booker.ID,
		&v.Item.ID,
		&v.Item.Name,
		&v.ItemOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
