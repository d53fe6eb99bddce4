package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/healthri/basket-api/internal/domain"
)

// ItemRepo defines the read operations against the item catalog.
// The basket core never writes catalog data.
type ItemRepo interface {
	// GetByID retrieves a single catalog item.
	// Returns domain.ErrNotFound if no item with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error)
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

// GetByID retrieves an item by primary key.
func (r *pgItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	const q = `SELECT id, title, description FROM items WHERE id = @id`

	var (
		item  domain.Item
		rawID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&rawID, &item.Title, &item.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", err)
	}
	item.ID = uuid.UUID(rawID.Bytes)
	return item, nil
}
