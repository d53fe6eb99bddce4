package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthri/basket-api/internal/domain"
)

func newBasket(t *testing.T) domain.Basket {
	t.Helper()
	return domain.NewBasket(uuid.New(), "my-basket", "My Basket", false)
}

func membership(itemID uuid.UUID) domain.BasketItem {
	return domain.BasketItem{ItemID: itemID, Source: domain.SourceCatalogPage, AddedAt: time.Now().UTC()}
}

// ---- construction ----------------------------------------------------------

func TestNewBasket(t *testing.T) {
	ownerID := uuid.New()
	b := domain.NewBasket(ownerID, "my-basket", "My Basket", true)

	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, ownerID, b.OwnerID)
	assert.Equal(t, domain.StatusActive, b.Status)
	assert.True(t, b.IsDefault)
	assert.Empty(t, b.Items)
	assert.Nil(t, b.ArchivedAt)
	assert.Nil(t, b.DeletedAt)
	assert.False(t, b.CreatedAt.IsZero())
}

// ---- state machine ---------------------------------------------------------

func TestBasket_Archive(t *testing.T) {
	b := newBasket(t)
	before := b.UpdatedAt

	b.Archive()

	assert.Equal(t, domain.StatusArchived, b.Status)
	require.NotNil(t, b.ArchivedAt)
	assert.False(t, b.UpdatedAt.Before(before))
}

func TestBasket_Archive_FromDeleted(t *testing.T) {
	// archive() works from any state — there is no terminal state.
	b := newBasket(t)
	require.NoError(t, b.Delete())

	b.Archive()

	assert.Equal(t, domain.StatusArchived, b.Status)
	assert.NotNil(t, b.ArchivedAt)
	// Delete's timestamp is untouched by Archive; only Restore clears it.
	assert.NotNil(t, b.DeletedAt)
}

func TestBasket_Restore_ClearsBothTimestamps(t *testing.T) {
	b := newBasket(t)
	b.Archive()
	require.NoError(t, b.Delete())

	b.Restore()

	assert.Equal(t, domain.StatusActive, b.Status)
	assert.Nil(t, b.ArchivedAt)
	assert.Nil(t, b.DeletedAt)
}

func TestBasket_Delete(t *testing.T) {
	b := newBasket(t)

	require.NoError(t, b.Delete())

	assert.Equal(t, domain.StatusDeleted, b.Status)
	assert.NotNil(t, b.DeletedAt)
}

func TestBasket_Delete_DefaultRejected(t *testing.T) {
	b := domain.NewBasket(uuid.New(), "favorites", "Favorites", true)

	err := b.Delete()

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, domain.StatusActive, b.Status, "status must be unchanged")
	assert.Nil(t, b.DeletedAt)
}

func TestBasket_Delete_DefaultRejectedFromArchived(t *testing.T) {
	b := domain.NewBasket(uuid.New(), "favorites", "Favorites", true)
	b.Archive()

	err := b.Delete()

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, domain.StatusArchived, b.Status, "status must be whatever it was")
}

// ---- item membership -------------------------------------------------------

func TestBasket_AddItem(t *testing.T) {
	b := newBasket(t)
	itemID := uuid.New()

	require.NoError(t, b.AddItem(membership(itemID)))

	assert.Len(t, b.Items, 1)
	assert.True(t, b.HasItem(itemID))
}

func TestBasket_AddItem_DuplicateRejected(t *testing.T) {
	b := newBasket(t)
	itemID := uuid.New()
	require.NoError(t, b.AddItem(membership(itemID)))

	err := b.AddItem(membership(itemID))

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, b.Items, 1, "item set size must stay 1")
}

func TestBasket_AddItem_NoDuplicatesAfterAnySequence(t *testing.T) {
	b := newBasket(t)
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	for i := 0; i < 3; i++ {
		for _, id := range ids {
			_ = b.AddItem(membership(id))
		}
	}

	assert.Len(t, b.Items, len(ids))
	seen := map[uuid.UUID]bool{}
	for _, item := range b.Items {
		assert.False(t, seen[item.ItemID], "duplicate item %s", item.ItemID)
		seen[item.ItemID] = true
	}
}

func TestBasket_RemoveItem(t *testing.T) {
	b := newBasket(t)
	itemID := uuid.New()
	require.NoError(t, b.AddItem(membership(itemID)))

	removed := b.RemoveItem(itemID)

	assert.True(t, removed)
	assert.Empty(t, b.Items)
}

func TestBasket_RemoveItem_NonMemberIsNoOp(t *testing.T) {
	b := newBasket(t)
	require.NoError(t, b.AddItem(membership(uuid.New())))

	// No-op both times; the set is unchanged.
	stranger := uuid.New()
	assert.False(t, b.RemoveItem(stranger))
	assert.False(t, b.RemoveItem(stranger))
	assert.Len(t, b.Items, 1)
}

func TestBasket_ClearItems_Idempotent(t *testing.T) {
	b := newBasket(t)
	require.NoError(t, b.AddItem(membership(uuid.New())))
	require.NoError(t, b.AddItem(membership(uuid.New())))

	b.ClearItems()
	assert.Empty(t, b.Items)

	b.ClearItems()
	assert.Empty(t, b.Items)
}

// ---- rename ----------------------------------------------------------------

func TestBasket_Rename(t *testing.T) {
	b := newBasket(t)

	b.Rename("New Name", "new-name")

	assert.Equal(t, "New Name", b.Name)
	assert.Equal(t, "new-name", b.Slug)
}
