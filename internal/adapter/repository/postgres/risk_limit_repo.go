package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bankx/transactions-service/internal/domain"
)

// riskLimitRepository implements domain.RiskLimitRepository
type riskLimitRepository struct {
	db *DB
}

// NewRiskLimitRepository creates a new risk limit repository
func NewRiskLimitRepository(db *DB) domain.RiskLimitRepository {
	return &riskLimitRepository{db: db}
}

// Save upserts a risk limit by currency
func (r *riskLimitRepository) Save(ctx context.Context, limit *domain.RiskLimit) error {
	query := `
		INSERT INTO risk_limits (id, currency, max_debit_per_tx)
		VALUES ($1, $2, $3)
		ON CONFLICT (currency) DO UPDATE
		SET max_debit_per_tx = EXCLUDED.max_debit_per_tx
	`

	_, err := r.db.ExecContext(ctx, query,
		limit.ID,
		limit.Currency,
		limit.MaxDebitPerTx.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save risk limit: %w", err)
	}

	return nil
}

// FindAll retrieves every configured risk limit
func (r *riskLimitRepository) FindAll(ctx context.Context) ([]*domain.RiskLimit, error) {
	query := `
		SELECT id, currency, max_debit_per_tx
		FROM risk_limits
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list risk limits: %w", err)
	}
	defer rows.Close()

	limits := make([]*domain.RiskLimit, 0)
	for rows.Next() {
		var limit domain.RiskLimit
		var maxStr string

		if err := rows.Scan(&limit.ID, &limit.Currency, &maxStr); err != nil {
			return nil, fmt.Errorf("failed to scan risk limit: %w", err)
		}

		max, err := decimal.NewFromString(maxStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse max_debit_per_tx: %w", err)
		}
		limit.MaxDebitPerTx = max

		limits = append(limits, &limit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate risk limits: %w", err)
	}

	return limits, nil
}
