package risk

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bankx/transactions-service/internal/domain"
)

// Evaluator decides whether a transaction is allowed under the configured
// per-currency debit limits. The limit table is built once at startup and is
// read-only afterwards, so lookups are lock-free and never block.
type Evaluator struct {
	maxDebitPerTx map[string]decimal.Decimal
}

// NewEvaluator creates an Evaluator from a set of risk limits.
func NewEvaluator(limits []*domain.RiskLimit) *Evaluator {
	table := make(map[string]decimal.Decimal, len(limits))
	for _, limit := range limits {
		table[limit.Currency] = limit.MaxDebitPerTx
	}
	return &Evaluator{maxDebitPerTx: table}
}

// Load builds an Evaluator from every limit in the repository.
func Load(ctx context.Context, repo domain.RiskLimitRepository) (*Evaluator, error) {
	limits, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(limits), nil
}

// Allowed reports whether a transaction of the given type and amount is
// permitted in the given currency.
// Credits carry no risk limit and are always allowed. A debit in a currency
// with no configured limit is denied: a missing rule is treated as
// misconfiguration, not an open door.
func (e *Evaluator) Allowed(currency string, txType domain.TransactionType, amount decimal.Decimal) bool {
	if txType == domain.TypeCredit {
		return true
	}

	limit, ok := e.maxDebitPerTx[currency]
	if !ok {
		return false
	}

	return amount.LessThanOrEqual(limit)
}
