package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthri/basket-api/internal/domain"
)

func TestItemRepo_GetByID(t *testing.T) {
	_, items, _, tx := newTestRepos(t)
	itemID := mustSeedItem(t, tx)

	got, err := items.GetByID(context.Background(), itemID)

	require.NoError(t, err)
	assert.Equal(t, itemID, got.ID)
	assert.Equal(t, "Test Dataset", got.Title)
}

func TestItemRepo_GetByID_NotFound(t *testing.T) {
	_, items, _, _ := newTestRepos(t)

	_, err := items.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
