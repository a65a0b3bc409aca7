package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"

	"shoplist/internal/middleware"
)

// Migration is one versioned pair of embedded SQL scripts for the shoplist
// schema (users, categories, shopping_items).
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationFS embed.FS

var (
	migrations []Migration
	// migrationsErr is reported by every operation that needs the migration set.
	migrationsErr error
)

func init() {
	migrations, migrationsErr = loadMigrations(migrationFS, migrationsDir)
	if migrationsErr != nil {
		middleware.Logger.Error("Embedded shoplist migrations are invalid",
			slog.String("error", migrationsErr.Error()))
	}
}

// parseMigrationFile splits "000002_create_categories.up.sql" into its
// version and name.
func parseMigrationFile(file string) (int, string, error) {
	base, ok := strings.CutSuffix(file, ".up.sql")
	if !ok {
		return 0, "", fmt.Errorf("migration %q: expected .up.sql suffix", file)
	}
	prefix, name, ok := strings.Cut(base, "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("migration %q: expected <version>_<name>.up.sql", file)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("migration %q: invalid version %q: %w", file, prefix, err)
	}
	if version <= 0 {
		return 0, "", fmt.Errorf("migration %q: version must be positive", file)
	}
	return version, name, nil
}

// loadMigrations reads every up/down pair in dir, sorted by version.
func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var (
		out  []Migration
		errs []error
		seen = make(map[int]string)
	)
	for _, entry := range entries {
		file := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(file, ".up.sql") {
			continue
		}

		version, name, err := parseMigrationFile(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, dup := seen[version]; dup {
			errs = append(errs, fmt.Errorf("migration version %06d is used by %q and %q", version, prev, file))
			continue
		}
		seen[version] = file

		up, err := fs.ReadFile(fsys, path.Join(dir, file))
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", file, err))
			continue
		}
		downFile := strings.TrimSuffix(file, ".up.sql") + ".down.sql"
		down, err := fs.ReadFile(fsys, path.Join(dir, downFile))
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", downFile, err))
			continue
		}

		out = append(out, Migration{
			Version:    version,
			Name:       name,
			UpScript:   string(up),
			DownScript: string(down),
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// GetMigrations returns the embedded migrations in version order.
func GetMigrations() []Migration {
	return migrations
}

// GetMigrationByVersion returns the migration with version, or nil.
func GetMigrationByVersion(version int) *Migration {
	for i := range migrations {
		if migrations[i].Version == version {
			return &migrations[i]
		}
	}
	return nil
}

func (m *Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}
