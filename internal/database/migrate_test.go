package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrationFile(t *testing.T) {
	tests := []struct {
		file        string
		wantVersion int
		wantName    string
		wantErr     bool
	}{
		{"000002_create_categories.up.sql", 2, "create_categories", false},
		{"12_add_index.up.sql", 12, "add_index", false},
		{"abc_create_users.up.sql", 0, "", true},
		{"000000_zero.up.sql", 0, "", true},
		{"000004.up.sql", 0, "", true},
		{"000004_.up.sql", 0, "", true},
		{"000004_name.down.sql", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			version, name, err := parseMigrationFile(tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, version)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestLoadMigrations(t *testing.T) {
	pair := func(up, down string) fstest.MapFS {
		return fstest.MapFS{
			"m/" + up:   {Data: []byte("SELECT 1;")},
			"m/" + down: {Data: []byte("SELECT 2;")},
		}
	}

	t.Run("sorted by version", func(t *testing.T) {
		fsys := pair("000002_b.up.sql", "000002_b.down.sql")
		fsys["m/000001_a.up.sql"] = &fstest.MapFile{Data: []byte("SELECT 3;")}
		fsys["m/000001_a.down.sql"] = &fstest.MapFile{Data: []byte("SELECT 4;")}

		got, err := loadMigrations(fsys, "m")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "000001_a", got[0].String())
		assert.Equal(t, "SELECT 3;", got[0].UpScript)
		assert.Equal(t, "SELECT 2;", got[1].DownScript)
	})

	t.Run("malformed version is an error", func(t *testing.T) {
		_, err := loadMigrations(pair("x1_users.up.sql", "x1_users.down.sql"), "m")
		assert.ErrorContains(t, err, "invalid version")
	})

	t.Run("zero version is an error", func(t *testing.T) {
		_, err := loadMigrations(pair("000000_users.up.sql", "000000_users.down.sql"), "m")
		assert.ErrorContains(t, err, "must be positive")
	})

	t.Run("duplicate version is an error", func(t *testing.T) {
		fsys := pair("000001_users.up.sql", "000001_users.down.sql")
		fsys["m/1_items.up.sql"] = &fstest.MapFile{Data: []byte("SELECT 5;")}
		fsys["m/1_items.down.sql"] = &fstest.MapFile{Data: []byte("SELECT 6;")}

		_, err := loadMigrations(fsys, "m")
		assert.ErrorContains(t, err, "000001")
	})

	t.Run("missing down script is an error", func(t *testing.T) {
		fsys := fstest.MapFS{"m/000001_users.up.sql": {Data: []byte("SELECT 1;")}}
		_, err := loadMigrations(fsys, "m")
		assert.ErrorContains(t, err, "000001_users.down.sql")
	})
}

func TestEmbeddedMigrationsLoad(t *testing.T) {
	require.NoError(t, migrationsErr)
	assert.Equal(t, []int{1, 2, 3}, []int{migrations[0].Version, migrations[1].Version, migrations[2].Version})
}

func TestPendingMigrations(t *testing.T) {
	pending := pendingMigrations([]int{1, 3}, GetMigrations())
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Version)
	assert.Empty(t, pendingMigrations([]int{1, 2, 3}, GetMigrations()))
}
