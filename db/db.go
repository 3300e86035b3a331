package db

import (
	"database/sql"
	"fmt"

	"github.com/555cider/admin-server/config"
	"github.com/555cider/admin-server/logger"

	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the SQLite database configured in AppConfig and verifies the
// connection. Foreign keys are enabled per connection.
func Connect() (*sql.DB, error) {
	path := config.AppConfig.Database.Path
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", path)

	logger.Log.WithField("path", path).Info("Attempting to open the database")

	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open database connection")
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = database.Ping(); err != nil {
		logger.Log.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Info("Database connection established successfully")
	return database, nil
}
