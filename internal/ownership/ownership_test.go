package ownership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID     string `gorm:"primaryKey"`
	UserID *string
}

func strPtr(s string) *string { return &s }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))
	require.NoError(t, db.Create([]row{
		{ID: "global"},
		{ID: "alice-1", UserID: strPtr("alice")},
		{ID: "alice-2", UserID: strPtr("alice")},
		{ID: "bob-1", UserID: strPtr("bob")},
	}).Error)
	return db
}

func ids(t *testing.T, db *gorm.DB, f Filter) []string {
	t.Helper()
	var out []string
	require.NoError(t, db.Model(&row{}).Scopes(f.Scope).Order("id").Pluck("id", &out).Error)
	return out
}

func TestFilter_Scope(t *testing.T) {
	db := setupDB(t)

	assert.Equal(t, []string{"alice-1", "alice-2"}, ids(t, db, For("alice", false)))
	assert.Equal(t, []string{"alice-1", "alice-2", "global"}, ids(t, db, For("alice", true)))
	assert.Equal(t, []string{"bob-1", "global"}, ids(t, db, For("bob", true)))
	assert.Empty(t, ids(t, db, For("carol", false)))
	assert.Empty(t, ids(t, db, For("", true)))
}

func TestFilter_ScopeComposesWithOtherConditions(t *testing.T) {
	db := setupDB(t)

	var count int64
	require.NoError(t, db.Model(&row{}).Where("id = ?", "bob-1").Scopes(For("alice", true).Scope).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, db.Model(&row{}).Where("id = ?", "global").Scopes(For("alice", false).Scope).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFilter_Allows(t *testing.T) {
	assert.True(t, For("alice", false).Allows(strPtr("alice")))
	assert.False(t, For("alice", false).Allows(strPtr("bob")))
	assert.False(t, For("alice", false).Allows(nil))
	assert.True(t, For("alice", true).Allows(nil))
	assert.False(t, For("", true).Allows(nil))
}
