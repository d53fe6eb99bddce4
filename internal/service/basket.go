// Package service contains the business logic for the Basket API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthri/basket-api/internal/domain"
	"github.com/healthri/basket-api/internal/repo"
	"github.com/healthri/basket-api/internal/slug"
)

// BasketService orchestrates every basket use case: it loads the aggregate
// through the repo, applies the aggregate operation, persists the result,
// and emits exactly one audit entry per successful mutation.
//
// Each call is an independent load → mutate → persist unit of work with no
// in-process locking; concurrent writes to the same basket are last-write-wins.
type BasketService struct {
	baskets  repo.BasketRepo
	items    *ItemService
	auditLog repo.AuditRepo
	audit    *AuditEmitter
}

// NewBasketService constructs a BasketService backed by the provided
// collaborators. Catalog lookups go through ItemService; auditLog serves
// the read side of the transaction log; audit is the write-side emitter.
func NewBasketService(baskets repo.BasketRepo, items *ItemService, auditLog repo.AuditRepo, audit *AuditEmitter) *BasketService {
	return &BasketService{baskets: baskets, items: items, auditLog: auditLog, audit: audit}
}

// List returns the caller's baskets, excluding logically deleted ones.
// The exclusion is a business rule enforced here, not a storage filter —
// deleted baskets stay resolvable by slug so Restore can reach them.
func (s *BasketService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Basket, error) {
	all, err := s.baskets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.BasketService.List: %w", err)
	}

	baskets := []domain.Basket{}
	for _, b := range all {
		if b.Status != domain.StatusDeleted {
			baskets = append(baskets, b)
		}
	}
	return baskets, nil
}

// GetBySlug returns one of the caller's baskets by slug.
// Returns domain.ErrNotFound if the basket is absent or owned by someone else.
func (s *BasketService) GetBySlug(ctx context.Context, ownerID uuid.UUID, basketSlug string) (domain.Basket, error) {
	basket, err := s.baskets.GetBySlug(ctx, ownerID, basketSlug)
	if err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.GetBySlug: %w", err)
	}
	return basket, nil
}

// Create derives or validates a slug, resolves its uniqueness among the
// owner's baskets, and persists a new Active basket with an empty item set.
//
// A custom slug must already be in normalized form — it is validated, never
// silently corrected. A name-derived slug is auto-normalized; if nothing
// survives normalization the name cannot address a basket and the call
// fails with domain.ErrValidation.
func (s *BasketService) Create(ctx context.Context, ownerID uuid.UUID, name string, isDefault bool, customSlug string) (domain.Basket, error) {
	var candidate string
	if strings.TrimSpace(customSlug) != "" {
		if err := slug.ValidateCustom(customSlug); err != nil {
			return domain.Basket{}, fmt.Errorf("service.BasketService.Create: %w", err)
		}
		candidate = customSlug
	} else {
		candidate = slug.Normalize(name)
		if candidate == "" {
			return domain.Basket{}, fmt.Errorf("service.BasketService.Create: %w: basket name must contain at least one valid character for slug generation", domain.ErrValidation)
		}
	}

	finalSlug, err := slug.EnsureUnique(ctx, ownerID, candidate, uuid.Nil, s.baskets.GetBySlug)
	if err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.Create: %w", err)
	}

	basket := domain.NewBasket(ownerID, finalSlug, name, isDefault)
	if err := s.baskets.Create(ctx, basket); err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.Create: %w", err)
	}

	s.audit.Record(ctx, ownerID, basket.ID, domain.ActionCreateBasket, domain.SourceUserPage)
	return basket, nil
}

// Rename changes a basket's display name and regenerates its slug from the
// new name. If the basket being renamed already holds the derived slug it
// keeps it unchanged; otherwise -1, -2, ... suffixes resolve collisions.
// Note the side effect: renaming changes the basket's address.
func (s *BasketService) Rename(ctx context.Context, ownerID uuid.UUID, basketSlug, newName string) (domain.Basket, error) {
	basket, err := s.baskets.GetBySlug(ctx, ownerID, basketSlug)
	if err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.Rename: %w", err)
	}

	if strings.TrimSpace(newName) == "" {
		return domain.Basket{}, fmt.Errorf("service.BasketService.Rename: %w: name is required", domain.ErrValidation)
	}

	candidate := slug.Normalize(newName)
	if candidate == "" {
		return domain.Basket{}, fmt.Errorf("service.BasketService.Rename: %w: basket name must contain at least one valid character for slug generation", domain.ErrValidation)
	}

	newSlug, err := slug.EnsureUnique(ctx, ownerID, candidate, basket.ID, s.baskets.GetBySlug)
	if err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.Rename: %w", err)
	}

	basket.Rename(newName, newSlug)
	if err := s.baskets.Update(ctx, basket); err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.Rename: %w", err)
	}

	s.audit.Record(ctx, ownerID, basket.ID, domain.ActionRenameBasket, domain.SourceUserPage)
	return basket, nil
}

// Archive moves a basket to Archived from any state.
func (s *BasketService) Archive(ctx context.Context, ownerID uuid.UUID, basketSlug string) error {
	basket, err := s.baskets.GetBySlug(ctx, ownerID, basketSlug)
	if err != nil {
		return fmt.Errorf("service.BasketService.Archive: %w", err)
	}

	basket.Archive()
	if err := s.baskets.Update(ctx, basket); err != nil {
		return fmt.Errorf("service.BasketService.Archive: %w", err)
	}

	s.audit.Record(ctx, ownerID, basket.ID, domain.ActionArchiveBasket, domain.SourceUserPage)
	return nil
}

// Restore moves a basket back to Active from any state, including Deleted.
func (s *BasketService) Restore(ctx context.Context, ownerID uuid.UUID, basketSlug string) error {
	basket, err := s.baskets.GetBySlug(ctx, ownerID, basketSlug)
	if err != nil {
		return fmt.Errorf("service.BasketService.Restore: %w", err)
	}

	basket.Restore()
	if err := s.baskets.Update(ctx, basket); err != nil {
		return fmt.Errorf("service.BasketService.Restore: %w", err)
	}

	s.audit.Record(ctx, ownerID, basket.ID, domain.ActionRestoreBasket, domain.SourceUserPage)
	return nil
}

// Delete logically deletes a basket. Default baskets are undeletable
// infrastructure — the aggregate rejects the transition with
// domain.ErrConflict and nothing is persisted or audited.
func (s *BasketService) Delete(ctx context.Context, ownerID uuid.UUID, basketSlug string) error {
	basket, err := s.baskets.GetBySlug(ctx, ownerID, basketSlug)
	if err != nil {
		return fmt.Errorf("service.BasketService.Delete: %w", err)
	}

	if err := basket.Delete(); err != nil {
		return fmt.Errorf("service.BasketService.Delete: %w", err)
	}
	if err := s.baskets.Update(ctx, basket); err != nil {
		return fmt.Errorf("service.BasketService.Delete: %w", err)
	}

	s.audit.Record(ctx, ownerID, basket.ID, domain.ActionDeleteBasket, domain.SourceUserPage)
	return nil
}

// Clear empties a basket's item set unconditionally.
func (s *BasketService) Clear(ctx context.Context, ownerID uuid.UUID, basketSlug string) error {
	basket, err := s.baskets.GetBySlug(ctx, ownerID, basketSlug)
	if err != nil {
		return fmt.Errorf("service.BasketService.Clear: %w", err)
	}

	basket.ClearItems()
	if err := s.baskets.ClearItems(ctx, basket.ID); err != nil {
		return fmt.Errorf("service.BasketService.Clear: %w", err)
	}
	if err := s.baskets.Update(ctx, basket); err != nil {
		return fmt.Errorf("service.BasketService.Clear: %w", err)
	}

	s.audit.Record(ctx, ownerID, basket.ID, domain.ActionClearBasket, domain.SourceUserPage)
	return nil
}

// AddItem resolves the catalog item, adds a membership to the basket, and
// returns the updated basket. Duplicate membership is rejected with
// domain.ErrConflict; a missing catalog item with domain.ErrNotFound.
func (s *BasketService) AddItem(ctx context.Context, ownerID uuid.UUID, basketSlug string, itemID uuid.UUID, source domain.Source) (domain.Basket, error) {
	basket, err := s.baskets.GetBySlug(ctx, ownerID, basketSlug)
	if err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.AddItem: %w", err)
	}

	if basket.HasItem(itemID) {
		return domain.Basket{}, fmt.Errorf("service.BasketService.AddItem: %w: item already in basket", domain.ErrConflict)
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.AddItem: %w", err)
	}

	membership := domain.BasketItem{
		BasketID: basket.ID,
		ItemID:   item.ID,
		Source:   source,
		AddedAt:  time.Now().UTC(),
	}
	if err := basket.AddItem(membership); err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.AddItem: %w", err)
	}

	if err := s.baskets.AddItem(ctx, membership); err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.AddItem: %w", err)
	}
	if err := s.baskets.Update(ctx, basket); err != nil {
		return domain.Basket{}, fmt.Errorf("service.BasketService.AddItem: %w", err)
	}

	s.audit.RecordItem(ctx, ownerID, basket.ID, &membership.ItemID, domain.ActionAddItem, source)
	return basket, nil
}

// RemoveItem removes a membership from a basket. Removing an item that was
// never a member still succeeds — this is deliberately asymmetric with
// AddItem's strict duplicate rejection and callers must preserve it.
func (s *BasketService) RemoveItem(ctx context.Context, ownerID uuid.UUID, basketSlug string, itemID uuid.UUID, source domain.Source) error {
	basket, err := s.baskets.GetBySlug(ctx, ownerID, basketSlug)
	if err != nil {
		return fmt.Errorf("service.BasketService.RemoveItem: %w", err)
	}

	basket.RemoveItem(itemID)

	if err := s.baskets.RemoveItem(ctx, basket.ID, itemID); err != nil {
		return fmt.Errorf("service.BasketService.RemoveItem: %w", err)
	}
	if err := s.baskets.Update(ctx, basket); err != nil {
		return fmt.Errorf("service.BasketService.RemoveItem: %w", err)
	}

	s.audit.RecordItem(ctx, ownerID, basket.ID, &itemID, domain.ActionRemoveItem, source)
	return nil
}

// AuditTrail returns the transaction log for one of the caller's baskets,
// newest entry first. Works for deleted baskets too — the trail is the
// reason deletion is logical.
func (s *BasketService) AuditTrail(ctx context.Context, ownerID uuid.UUID, basketSlug string) ([]domain.AuditEntry, error) {
	basket, err := s.baskets.GetBySlug(ctx, ownerID, basketSlug)
	if err != nil {
		return nil, fmt.Errorf("service.BasketService.AuditTrail: %w", err)
	}

	entries, err := s.auditLog.ListByBasket(ctx, ownerID, basket.ID)
	if err != nil {
		return nil, fmt.Errorf("service.BasketService.AuditTrail: %w", err)
	}
	return entries, nil
}
