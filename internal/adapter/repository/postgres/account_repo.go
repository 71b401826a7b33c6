package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bankx/transactions-service/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// FindByNumber retrieves an account by its external number
func (r *accountRepository) FindByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `
		SELECT id, number, holder_name, currency, balance
		FROM accounts
		WHERE number = $1
	`

	var account domain.Account
	var balanceStr string

	err := r.db.QueryRowContext(ctx, query, number).Scan(
		&account.ID,
		&account.Number,
		&account.HolderName,
		&account.Currency,
		&balanceStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", number, domain.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to find account by number: %w", err)
	}

	// Parse balance (DECIMAL)
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	return &account, nil
}

// Save upserts an account by identity
func (r *accountRepository) Save(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, number, holder_name, currency, balance)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET number = EXCLUDED.number,
		    holder_name = EXCLUDED.holder_name,
		    currency = EXCLUDED.currency,
		    balance = EXCLUDED.balance
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Number,
		account.HolderName,
		account.Currency,
		account.Balance.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}
