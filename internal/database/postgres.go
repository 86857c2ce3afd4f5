// Package database opens the storefront's PostgreSQL database.
// The harness only touches it to purge the data its scenarios generate.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/simplecom/storefront-e2e/internal/config"
	_ "github.com/lib/pq"
)

// Connect establishes a connection to the PostgreSQL database
func Connect(ctx context.Context, cfg *config.PostgresConfig) (*sql.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("postgres config is nil")
	}

	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A purge is a short, mostly serial job
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
