package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/healthri/basket-api/internal/domain"
	"github.com/healthri/basket-api/internal/repo"
)

// AuditEmitter translates orchestrator actions into immutable transaction
// log entries. Emission is best-effort: a failed write is logged at Warn
// and never rolls back the basket mutation that triggered it.
type AuditEmitter struct {
	audit repo.AuditRepo
	log   *slog.Logger
}

// NewAuditEmitter constructs an AuditEmitter backed by the provided AuditRepo.
func NewAuditEmitter(audit repo.AuditRepo, log *slog.Logger) *AuditEmitter {
	if log == nil {
		log = slog.Default()
	}
	return &AuditEmitter{audit: audit, log: log}
}

// Record appends one entry for a basket-level action (no item involved).
func (e *AuditEmitter) Record(ctx context.Context, userID, basketID uuid.UUID, action domain.Action, source domain.Source) {
	e.RecordItem(ctx, userID, basketID, nil, action, source)
}

// RecordItem appends one entry, optionally tagged with the item the action
// touched. The timestamp is assigned by the database at insert time.
func (e *AuditEmitter) RecordItem(ctx context.Context, userID, basketID uuid.UUID, itemID *uuid.UUID, action domain.Action, source domain.Source) {
	entry := domain.AuditEntry{
		UserID:   userID,
		BasketID: basketID,
		ItemID:   itemID,
		Action:   action,
		Source:   source,
	}
	if err := e.audit.Record(ctx, entry); err != nil {
		e.log.WarnContext(ctx, "audit entry dropped",
			"action", string(action),
			"basket_id", basketID.String(),
			"error", err,
		)
	}
}
