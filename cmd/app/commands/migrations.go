package commands

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/allisson/dispatcher/internal/database"
)

// RunMigrations applies the pending migrations for driver to db. The migration
// files are looked up under migrations/<driver> starting from the working
// directory.
func RunMigrations(db *sql.DB, logger *slog.Logger, driver string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	path, err := database.FindMigrationsPath(driver)
	if err != nil {
		return fmt.Errorf("failed to locate migrations: %w", err)
	}

	if err := database.Migrate(db, driver, path); err != nil {
		return err
	}

	logger.Info("migrations completed successfully", slog.String("path", path))
	return nil
}
