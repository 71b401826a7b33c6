package postgres

import (
	"context"
	"fmt"
)

// Migrate creates the service's tables if they do not exist yet.
// Monetary columns are DECIMAL; values travel as strings between Go and the
// database to avoid any float rounding.
func Migrate(ctx context.Context, db *DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			number TEXT NOT NULL UNIQUE,
			holder_name TEXT NOT NULL,
			currency TEXT NOT NULL,
			balance DECIMAL(20,4) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY,
			account_id UUID NOT NULL,
			type TEXT NOT NULL,
			amount DECIMAL(20,4) NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_timestamp
			ON transactions (account_id, timestamp DESC)`,
		`CREATE TABLE IF NOT EXISTS risk_limits (
			id UUID PRIMARY KEY,
			currency TEXT NOT NULL UNIQUE,
			max_debit_per_tx DECIMAL(20,4) NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
