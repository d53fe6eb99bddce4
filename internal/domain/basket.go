// Package domain contains the core data types for the Basket API.
// The Basket aggregate owns its item memberships and enforces its own
// invariants; it performs no I/O. This package is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BasketStatus is the lifecycle state of a basket.
type BasketStatus string

const (
	StatusActive   BasketStatus = "active"
	StatusArchived BasketStatus = "archived"
	StatusDeleted  BasketStatus = "deleted"
)

// Basket is the aggregate root: a named, slug-addressed collection of
// catalog items owned by a single user. Deletion is logical — a deleted
// basket keeps its row for the audit trail and can be restored.
type Basket struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`
	// Slug is unique per owner and URL-safe (lowercase alphanumerics and
	// hyphens). It is regenerated on rename, so it is not a stable address.
	Slug       string       `json:"slug"`
	Name       string       `json:"name"`
	IsDefault  bool         `json:"is_default"`
	Status     BasketStatus `json:"status"`
	Items      []BasketItem `json:"items"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	ArchivedAt *time.Time   `json:"archived_at,omitempty"`
	DeletedAt  *time.Time   `json:"deleted_at,omitempty"`
}

// BasketItem is a membership record linking a catalog item to a basket.
// At most one membership per distinct item ID exists in a basket.
type BasketItem struct {
	BasketID uuid.UUID `json:"-"`
	ItemID   uuid.UUID `json:"item_id"`
	// Source records which surface added the item (user page, catalog page).
	Source  Source    `json:"source"`
	AddedAt time.Time `json:"added_at"`
}

// NewBasket constructs an Active basket with an empty item set.
// The caller is responsible for slug derivation and uniqueness.
func NewBasket(ownerID uuid.UUID, slug, name string, isDefault bool) Basket {
	now := time.Now().UTC()
	return Basket{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Slug:      slug,
		Name:      name,
		IsDefault: isDefault,
		Status:    StatusActive,
		Items:     []BasketItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Archive moves the basket to Archived from any state and stamps ArchivedAt.
func (b *Basket) Archive() {
	now := time.Now().UTC()
	b.Status = StatusArchived
	b.ArchivedAt = &now
	b.UpdatedAt = now
}

// Restore moves the basket back to Active from any state, clearing both
// ArchivedAt and DeletedAt. Every transition is reversible through Restore.
func (b *Basket) Restore() {
	b.Status = StatusActive
	b.ArchivedAt = nil
	b.DeletedAt = nil
	b.UpdatedAt = time.Now().UTC()
}

// Delete moves the basket to Deleted and stamps DeletedAt.
// Default baskets are structurally protected: the call is rejected with
// ErrConflict and the basket is left untouched.
func (b *Basket) Delete() error {
	if b.IsDefault {
		return fmt.Errorf("%w: default basket cannot be deleted", ErrConflict)
	}
	now := time.Now().UTC()
	b.Status = StatusDeleted
	b.DeletedAt = &now
	b.UpdatedAt = now
	return nil
}

// AddItem inserts a membership record. A second insert of the same item ID
// is rejected with ErrConflict — the aggregate enforces uniqueness itself,
// independent of any caller-side pre-check.
func (b *Basket) AddItem(item BasketItem) error {
	if b.HasItem(item.ItemID) {
		return fmt.Errorf("%w: item already in basket", ErrConflict)
	}
	b.Items = append(b.Items, item)
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveItem removes the membership for itemID if present and reports
// whether anything was removed. Removing a non-member is a silent no-op;
// whether that should surface as not-found is the caller's decision.
func (b *Basket) RemoveItem(itemID uuid.UUID) bool {
	for i, item := range b.Items {
		if item.ItemID == itemID {
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			b.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// ClearItems empties the item set unconditionally.
func (b *Basket) ClearItems() {
	b.Items = []BasketItem{}
	b.UpdatedAt = time.Now().UTC()
}

// HasItem reports whether itemID is already a member of the basket.
func (b *Basket) HasItem(itemID uuid.UUID) bool {
	for _, item := range b.Items {
		if item.ItemID == itemID {
			return true
		}
	}
	return false
}

// Rename replaces the display name and slug atomically. Slug uniqueness is
// resolved by the caller before this is invoked; the aggregate trusts it.
func (b *Basket) Rename(newName, newSlug string) {
	b.Name = newName
	b.Slug = newSlug
	b.UpdatedAt = time.Now().UTC()
}
