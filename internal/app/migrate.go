package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/tournament-engine/internal/config"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

// NewMigrator opens golang-migrate against the configured database and the first
// migrations directory found among dir, MIGRATIONS_DIR and the defaults.
func NewMigrator(cfg config.Config, dir string) (*migrate.Migrate, string, error) {
	dbURL := DatabaseURL(cfg)
	if dbURL == "" {
		return nil, "", errors.New("DB_URL is required")
	}

	resolved, err := resolveMigrationsDir(append([]string{dir, os.Getenv("MIGRATIONS_DIR")}, defaultMigrationDirs...))
	if err != nil {
		return nil, "", err
	}

	sourceURL := "file://" + filepath.ToSlash(resolved)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return nil, "", fmt.Errorf("create migrator: %w", err)
	}
	return m, sourceURL, nil
}

func resolveMigrationsDir(candidates []string) (string, error) {
	checked := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		checked = append(checked, candidate)

		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked %s)", strings.Join(checked, ", "))
}
