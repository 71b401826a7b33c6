package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiskLimit is the configured maximum amount for a single debit in a
// currency. Configuration data, loaded once at startup and read-only during
// normal operation.
type RiskLimit struct {
	ID            uuid.UUID
	Currency      string
	MaxDebitPerTx decimal.Decimal
}
