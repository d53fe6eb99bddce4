package domain

import "github.com/google/uuid"

// Item is a catalog entry that can be placed into baskets.
// The basket core never mutates catalog data; items are resolved by ID
// before a membership is created.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}
