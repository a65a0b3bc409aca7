// Command migrate manages the shoplist database schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"shoplist/internal/config"
	"shoplist/internal/database"
)

const usageText = `usage: migrate <command> [args]

commands:
  up              apply pending SQL migrations (users, categories, shopping_items)
  auto            run GORM AutoMigrate for the shoplist models
  status          show schema mode and applied/pending migrations
  down <version>  roll back one applied migration`

func main() {
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usageText) }
	flag.Parse()

	if err := run(context.Background(), flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing command\n%s", usageText)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "up":
		if err := database.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("apply shoplist migrations: %w", err)
		}
		log.Println("shoplist schema is up to date")

	case "auto":
		cfg.DBSchemaMode = database.SchemaModeAuto
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return fmt.Errorf("auto-migrate shoplist models: %w", err)
		}
		log.Println("users, categories and shopping_items auto-migrated")

	case "status":
		status, err := database.GetSchemaStatus(ctx, db, cfg)
		if err != nil {
			return fmt.Errorf("read schema status: %w", err)
		}
		printStatus(cfg, status)

	case "down":
		if len(args) < 2 {
			return fmt.Errorf("down needs a version\n%s", usageText)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := database.RollbackMigration(ctx, db, version); err != nil {
			return fmt.Errorf("roll back migration %d: %w", version, err)
		}
		log.Printf("rolled back migration %06d", version)

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usageText)
	}

	return nil
}

func printStatus(cfg *config.Config, status *database.SchemaStatus) {
	fmt.Printf("database:  %s\n", cfg.DBDriver)
	fmt.Printf("env:       %s\n", status.Environment)
	fmt.Printf("mode:      %s (sql=%t auto=%t)\n", status.Mode, status.WillRunSQL, status.WillRunAutoMigrate)
	if !status.WillRunSQL {
		fmt.Println("sql migrations are not used in this mode")
		return
	}

	fmt.Printf("applied:   %d\n", len(status.AppliedVersions))
	for _, v := range status.AppliedVersions {
		name := "?"
		if m := database.GetMigrationByVersion(v); m != nil {
			name = m.Name
		}
		fmt.Printf("  [x] %06d_%s\n", v, name)
	}
	fmt.Printf("pending:   %d\n", len(status.PendingMigrations))
	for _, m := range status.PendingMigrations {
		fmt.Printf("  [ ] %s\n", m.String())
	}
}
