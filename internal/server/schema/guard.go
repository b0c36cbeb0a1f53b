// Package schema implements the startup schema guard: the check that the
// required tables exist before the service accepts traffic, and the
// idempotent bootstrap that creates them on first run.
package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/twinsight/dashboard-auth/internal/server/migrations"
)

// requiredTables are the tables that must exist before serving requests.
var requiredTables = []string{"users", "sessions"}

// Guard verifies and bootstraps the storage schema.
type Guard struct {
	db *sql.DB
}

// NewGuard creates a Guard over the given database handle.
func NewGuard(db *sql.DB) *Guard {
	return &Guard{db: db}
}

// CheckSchema reports whether all required tables are present. A query or
// connection failure is returned as an error and should abort startup;
// merely missing tables yield (false, nil).
func (g *Guard) CheckSchema(ctx context.Context) (bool, error) {

	query :=
		`SELECT COUNT(*) FROM information_schema.tables
		 WHERE table_schema = current_schema() AND table_name = ANY($1)
		 `

	var count int
	err := g.db.QueryRowContext(ctx, query, requiredTables).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error checking schema: %w", err)
	}

	return count == len(requiredTables), nil
}

// InitSchema creates the required tables by applying the embedded
// migrations. It is intended to be called only after CheckSchema reported
// false; behavior outside that precondition is not part of the contract,
// though goose's versioning keeps repeated calls from failing.
func (g *Guard) InitSchema(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, g.db, "."); err != nil {
		return fmt.Errorf("error initializing schema: %w", err)
	}

	return nil
}
