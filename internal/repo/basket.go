// Package repo contains all database access logic for the Basket API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/healthri/basket-api/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BasketRepo defines the persistence operations for Baskets and their
// item memberships. All reads are scoped by the owner's user ID so a
// basket can never be resolved across owners.
type BasketRepo interface {
	// GetBySlug retrieves one basket (with its items) by owner and slug.
	// Deleted baskets are still resolvable — restore needs to find them.
	// Returns domain.ErrNotFound if no such basket exists under that owner.
	GetBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (domain.Basket, error)

	// ListByOwner returns all of an owner's baskets (with items), every
	// status included, ordered by created_at ascending. Filtering deleted
	// baskets out of user-facing listings is a service-level decision.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Basket, error)

	// Create inserts a new basket row. Items are not written here; a new
	// basket always starts empty.
	Create(ctx context.Context, basket domain.Basket) error

	// Update overwrites the mutable fields of a basket row (name, slug,
	// status, timestamps). Returns domain.ErrNotFound if the row is gone.
	Update(ctx context.Context, basket domain.Basket) error

	// AddItem inserts one membership row.
	AddItem(ctx context.Context, item domain.BasketItem) error

	// RemoveItem deletes one membership row. Idempotent: removing a
	// non-member is not an error.
	RemoveItem(ctx context.Context, basketID, itemID uuid.UUID) error

	// ClearItems deletes all membership rows for a basket.
	ClearItems(ctx context.Context, basketID uuid.UUID) error
}

// pgBasketRepo is the Postgres implementation of BasketRepo.
type pgBasketRepo struct {
	db db
}

// NewBasketRepo constructs a BasketRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBasketRepo(db db) BasketRepo {
	return &pgBasketRepo{db: db}
}

// GetBySlug retrieves a basket by (owner, slug) and loads its items.
func (r *pgBasketRepo) GetBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (domain.Basket, error) {
	const q = `
		SELECT id, user_id, slug, name, is_default, status,
		       created_at, updated_at, archived_at, deleted_at
		FROM baskets
		WHERE user_id = @user_id AND slug = @slug`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": ownerID, "slug": slug})
	basket, err := scanBasket(row)
	if err != nil {
		return domain.Basket{}, fmt.Errorf("repo.BasketRepo.GetBySlug: %w", err)
	}

	items, err := r.listItems(ctx, basket.ID)
	if err != nil {
		return domain.Basket{}, fmt.Errorf("repo.BasketRepo.GetBySlug: %w", err)
	}
	basket.Items = items
	return basket, nil
}

// ListByOwner returns all baskets for an owner, items included.
func (r *pgBasketRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Basket, error) {
	const q = `
		SELECT id, user_id, slug, name, is_default, status,
		       created_at, updated_at, archived_at, deleted_at
		FROM baskets
		WHERE user_id = @user_id
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.BasketRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	baskets := []domain.Basket{}
	for rows.Next() {
		b, err := scanBasket(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BasketRepo.ListByOwner: scan: %w", err)
		}
		baskets = append(baskets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BasketRepo.ListByOwner: rows: %w", err)
	}

	for i := range baskets {
		items, err := r.listItems(ctx, baskets[i].ID)
		if err != nil {
			return nil, fmt.Errorf("repo.BasketRepo.ListByOwner: %w", err)
		}
		baskets[i].Items = items
	}
	return baskets, nil
}

// Create inserts a new basket row.
func (r *pgBasketRepo) Create(ctx context.Context, basket domain.Basket) error {
	const q = `
		INSERT INTO baskets (id, user_id, slug, name, is_default, status, created_at, updated_at)
		VALUES (@id, @user_id, @slug, @name, @is_default, @status, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"id":         basket.ID,
		"user_id":    basket.OwnerID,
		"slug":       basket.Slug,
		"name":       basket.Name,
		"is_default": basket.IsDefault,
		"status":     string(basket.Status),
		"created_at": basket.CreatedAt,
		"updated_at": basket.UpdatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.BasketRepo.Create: %w", err)
	}
	return nil
}

// Update overwrites the mutable basket fields.
func (r *pgBasketRepo) Update(ctx context.Context, basket domain.Basket) error {
	const q = `
		UPDATE baskets
		SET slug        = @slug,
		    name        = @name,
		    status      = @status,
		    updated_at  = @updated_at,
		    archived_at = @archived_at,
		    deleted_at  = @deleted_at
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":          basket.ID,
		"slug":        basket.Slug,
		"name":        basket.Name,
		"status":      string(basket.Status),
		"updated_at":  basket.UpdatedAt,
		"archived_at": basket.ArchivedAt, // nil becomes NULL
		"deleted_at":  basket.DeletedAt,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.BasketRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BasketRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

// AddItem inserts one membership row.
func (r *pgBasketRepo) AddItem(ctx context.Context, item domain.BasketItem) error {
	const q = `
		INSERT INTO basket_items (basket_id, item_id, source, added_at)
		VALUES (@basket_id, @item_id, @source, @added_at)`

	args := pgx.NamedArgs{
		"basket_id": item.BasketID,
		"item_id":   item.ItemID,
		"source":    string(item.Source),
		"added_at":  item.AddedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.BasketRepo.AddItem: %w", err)
	}
	return nil
}

// RemoveItem deletes one membership row. Zero rows affected is fine —
// the service layer treats removal of a non-member as success.
func (r *pgBasketRepo) RemoveItem(ctx context.Context, basketID, itemID uuid.UUID) error {
	const q = `DELETE FROM basket_items WHERE basket_id = @basket_id AND item_id = @item_id`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"basket_id": basketID, "item_id": itemID})
	if err != nil {
		return fmt.Errorf("repo.BasketRepo.RemoveItem: %w", err)
	}
	return nil
}

// ClearItems deletes all membership rows for a basket.
func (r *pgBasketRepo) ClearItems(ctx context.Context, basketID uuid.UUID) error {
	const q = `DELETE FROM basket_items WHERE basket_id = @basket_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"basket_id": basketID}); err != nil {
		return fmt.Errorf("repo.BasketRepo.ClearItems: %w", err)
	}
	return nil
}

// listItems loads the membership rows for one basket, oldest first.
func (r *pgBasketRepo) listItems(ctx context.Context, basketID uuid.UUID) ([]domain.BasketItem, error) {
	const q = `
		SELECT basket_id, item_id, source, added_at
		FROM basket_items
		WHERE basket_id = @basket_id
		ORDER BY added_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"basket_id": basketID})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []domain.BasketItem{}
	for rows.Next() {
		var (
			item     domain.BasketItem
			basketID pgtype.UUID
			itemID   pgtype.UUID
			source   string
		)
		if err := rows.Scan(&basketID, &itemID, &source, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("list items: scan: %w", err)
		}
		item.BasketID = uuid.UUID(basketID.Bytes)
		item.ItemID = uuid.UUID(itemID.Bytes)
		item.Source = domain.Source(source)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: rows: %w", err)
	}
	return items, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanBasket to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanBasket maps a single database row into a domain.Basket.
// It handles the UUID and nullable timestamp conversions. Items are not
// scanned here; callers load them separately.
func scanBasket(s scanner) (domain.Basket, error) {
	var (
		b          domain.Basket
		id         pgtype.UUID
		ownerID    pgtype.UUID
		status     string
		archivedAt pgtype.Timestamptz
		deletedAt  pgtype.Timestamptz
	)

	err := s.Scan(&id, &ownerID, &b.Slug, &b.Name, &b.IsDefault, &status,
		&b.CreatedAt, &b.UpdatedAt, &archivedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Basket{}, domain.ErrNotFound
		}
		return domain.Basket{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.OwnerID = uuid.UUID(ownerID.Bytes)
	b.Status = domain.BasketStatus(status)
	if archivedAt.Valid {
		at := archivedAt.Time
		b.ArchivedAt = &at
	}
	if deletedAt.Valid {
		dt := deletedAt.Time
		b.DeletedAt = &dt
	}
	return b, nil
}
