package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthri/basket-api/internal/domain"
	"github.com/healthri/basket-api/internal/repo"
)

// ItemService resolves catalog items by ID. It is a thin lookup layer —
// the basket core treats the catalog as an opaque external collaborator.
type ItemService struct {
	items repo.ItemRepo
}

// NewItemService constructs an ItemService backed by the provided ItemRepo.
func NewItemService(items repo.ItemRepo) *ItemService {
	return &ItemService{items: items}
}

// GetByID returns a single catalog item.
// Returns domain.ErrNotFound if no item with that ID exists.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.GetByID: %w", err)
	}
	return item, nil
}
