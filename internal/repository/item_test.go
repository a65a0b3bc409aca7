package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"shoplist/internal/models"
	"shoplist/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(id, owner string, created time.Time) *models.ShoppingItem {
	return &models.ShoppingItem{
		ID:          id,
		UserID:      owner,
		Description: "item " + id,
		CategoryID:  "cat-4",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestItemRepository_OwnerScoping(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newItem("i-1", "alice", base)))
	require.NoError(t, repo.Create(ctx, newItem("i-2", "alice", base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, newItem("i-3", "bob", base)))

	items, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "i-2", items[0].ID, "newest first")
	assert.Equal(t, "i-1", items[1].ID)

	empty, err := repo.ListByOwner(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = repo.GetOwned(ctx, "bob", "i-1")
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))

	err = repo.UpdateOwned(ctx, "bob", "i-1", map[string]interface{}{"description": "hijacked"})
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))

	err = repo.DeleteOwned(ctx, "bob", "i-1")
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))

	still, err := repo.GetOwned(ctx, "alice", "i-1")
	require.NoError(t, err)
	assert.Equal(t, "item i-1", still.Description)
}

func TestItemRepository_UpdateAndDelete(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newItem("i-1", "alice", created)))

	later := created.Add(time.Hour)
	require.NoError(t, repo.UpdateOwned(ctx, "alice", "i-1", map[string]interface{}{
		"is_purchased": true,
		"updated_at":   later,
	}))

	got, err := repo.GetOwned(ctx, "alice", "i-1")
	require.NoError(t, err)
	assert.True(t, got.IsPurchased)
	assert.True(t, got.UpdatedAt.Equal(later))
	assert.True(t, got.CreatedAt.Equal(created))

	require.NoError(t, repo.DeleteOwned(ctx, "alice", "i-1"))
	_, err = repo.GetOwned(ctx, "alice", "i-1")
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	assert.Equal(t, models.CodeNotFound, models.CodeOf(repo.DeleteOwned(ctx, "alice", "i-1")))
}

func TestItemRepository_DeleteQueryShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewItemRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "shopping_items" WHERE user_id = $1 AND id = $2`)).
		WithArgs("alice", "i-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteOwned(context.Background(), "alice", "i-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
