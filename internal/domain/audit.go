package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action tags an audit entry with the use case that produced it.
type Action string

const (
	ActionCreateBasket  Action = "CreateBasket"
	ActionRenameBasket  Action = "RenameBasket"
	ActionDeleteBasket  Action = "DeleteBasket"
	ActionArchiveBasket Action = "ArchiveBasket"
	ActionRestoreBasket Action = "RestoreBasket"
	ActionClearBasket   Action = "ClearBasket"
	ActionAddItem       Action = "AddItem"
	ActionRemoveItem    Action = "RemoveItem"
)

// Source identifies the surface a basket mutation originated from.
type Source string

const (
	SourceUserPage    Source = "user_page"
	SourceCatalogPage Source = "catalog_page"
)

// AuditEntry is one immutable record of a state-changing action.
// Entries are append-only: never updated or deleted once written.
// ItemID is nil for basket-level actions (create, rename, archive, ...).
type AuditEntry struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	BasketID  uuid.UUID  `json:"basket_id"`
	ItemID    *uuid.UUID `json:"item_id,omitempty"`
	Action    Action     `json:"action"`
	Source    Source     `json:"source"`
	Timestamp time.Time  `json:"timestamp"`
}
