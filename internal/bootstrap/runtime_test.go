package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"shoplist/internal/config"
	"shoplist/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:            "test",
		Port:           "0",
		JWTSecret:      config.DefaultJWTSecret,
		DBDriver:       "sqlite",
		DBSQLitePath:   filepath.Join(t.TempDir(), "runtime.db"),
		DBSchemaMode:   "auto",
		DBMaxOpenConns: 1,
	}
}

func TestInitRuntime_SeedsCategories(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisURL = mr.Addr()

	db, rdb, err := InitRuntime(context.Background(), cfg, Options{SeedDefaultCategories: true})
	require.NoError(t, err)
	require.NotNil(t, rdb)
	t.Cleanup(func() {
		_ = rdb.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("user_id IS NULL").Count(&count).Error)
	assert.EqualValues(t, 8, count)
}

func TestInitRuntime_WithoutRedis(t *testing.T) {
	cfg := testConfig(t)

	db, rdb, err := InitRuntime(context.Background(), cfg, Options{})
	require.NoError(t, err)
	assert.Nil(t, rdb)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}
