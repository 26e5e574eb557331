package readstore

import (
	"context"
	"errors"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

type ItemReadStore struct {
	db db.DBTX
}

func NewItemReadStore(dbtx db.DBTX) *ItemReadStore {
	return &ItemReadStore{db: dbtx}
}

func (s *ItemReadStore) FindByID(ctx context.Context, id int64) (*shared.ItemSnapshot, error) {
	const query = `
		SELECT id, name, is_available, owner_id
		FROM items
		WHERE id = $1`

	var snap shared.ItemSnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Name, &snap.Available, &snap.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item", err)
	}
	return &snap, nil
}
