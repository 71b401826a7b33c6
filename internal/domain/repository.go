package domain

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// FindByNumber retrieves an account by its external number.
	// Returns an error wrapping ErrAccountNotFound if no account exists.
	FindByNumber(ctx context.Context, number string) (*Account, error)

	// Save upserts an account by identity.
	Save(ctx context.Context, account *Account) error
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// Save persists a new transaction record.
	Save(ctx context.Context, tx *Transaction) error

	// FindByAccountOrderByTimestampDesc retrieves all transactions for an
	// account, most recent first.
	FindByAccountOrderByTimestampDesc(ctx context.Context, accountID uuid.UUID) ([]*Transaction, error)
}

// RiskLimitRepository defines the interface for risk limit configuration access
type RiskLimitRepository interface {
	// Save upserts a risk limit by currency.
	Save(ctx context.Context, limit *RiskLimit) error

	// FindAll retrieves every configured risk limit.
	FindAll(ctx context.Context) ([]*RiskLimit, error)
}
