package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/healthri/basket-api/internal/domain"
)

// AuditRepo defines the persistence operations for the transaction log.
// The log is append-only: there is no update or delete.
type AuditRepo interface {
	// Record appends one entry. The entry's ID and Timestamp are assigned
	// by the database and not returned — callers fire and forget.
	Record(ctx context.Context, entry domain.AuditEntry) error

	// ListByBasket returns all entries for a basket, newest first.
	ListByBasket(ctx context.Context, userID, basketID uuid.UUID) ([]domain.AuditEntry, error)
}

// pgAuditRepo is the Postgres implementation of AuditRepo.
type pgAuditRepo struct {
	db db
}

// NewAuditRepo constructs an AuditRepo backed by the provided db connection.
func NewAuditRepo(db db) AuditRepo {
	return &pgAuditRepo{db: db}
}

// Record appends one immutable log entry with a server-assigned timestamp.
func (r *pgAuditRepo) Record(ctx context.Context, entry domain.AuditEntry) error {
	const q = `
		INSERT INTO transaction_log (user_id, basket_id, item_id, action, source)
		VALUES (@user_id, @basket_id, @item_id, @action, @source)`

	args := pgx.NamedArgs{
		"user_id":   entry.UserID,
		"basket_id": entry.BasketID,
		"item_id":   entry.ItemID, // nil becomes NULL for basket-level actions
		"action":    string(entry.Action),
		"source":    string(entry.Source),
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.AuditRepo.Record: %w", err)
	}
	return nil
}

// ListByBasket returns the log entries for one basket, newest first.
// The user_id filter keeps the log owner-scoped like every other read.
func (r *pgAuditRepo) ListByBasket(ctx context.Context, userID, basketID uuid.UUID) ([]domain.AuditEntry, error) {
	const q = `
		SELECT id, user_id, basket_id, item_id, action, source, created_at
		FROM transaction_log
		WHERE user_id = @user_id AND basket_id = @basket_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "basket_id": basketID})
	if err != nil {
		return nil, fmt.Errorf("repo.AuditRepo.ListByBasket: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var (
			e        domain.AuditEntry
			id       pgtype.UUID
			userID   pgtype.UUID
			basketID pgtype.UUID
			itemID   pgtype.UUID
			action   string
			source   string
		)
		if err := rows.Scan(&id, &userID, &basketID, &itemID, &action, &source, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("repo.AuditRepo.ListByBasket: scan: %w", err)
		}
		e.ID = uuid.UUID(id.Bytes)
		e.UserID = uuid.UUID(userID.Bytes)
		e.BasketID = uuid.UUID(basketID.Bytes)
		if itemID.Valid {
			iid := uuid.UUID(itemID.Bytes)
			e.ItemID = &iid
		}
		e.Action = domain.Action(action)
		e.Source = domain.Source(source)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AuditRepo.ListByBasket: rows: %w", err)
	}
	return entries, nil
}
