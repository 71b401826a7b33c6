package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TypeDebit  TransactionType = "DEBIT"
	TypeCredit TransactionType = "CREDIT"
)

// TransactionStatus represents the persisted outcome of a transaction
type TransactionStatus string

// StatusOK is the only status produced on the success path; there are no
// partial or pending states.
const StatusOK TransactionStatus = "OK"

// Transaction represents a committed monetary movement against an account.
// Immutable once created; AccountID is a weak reference by id, not ownership.
type Transaction struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Type      TransactionType
	Amount    decimal.Decimal // ABSOLUTE VALUE (Always Positive)
	Timestamp time.Time
	Status    TransactionStatus
}

// ParseTransactionType normalizes a raw type string to the fixed enumeration.
// Unrecognized values are rejected as ErrInvalidRequest.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(raw)) {
	case TypeDebit:
		return TypeDebit, nil
	case TypeCredit:
		return TypeCredit, nil
	default:
		return "", fmt.Errorf("unrecognized transaction type %q: %w", raw, ErrInvalidRequest)
	}
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return fmt.Errorf("transaction must reference an account: %w", ErrInvalidRequest)
	}

	if t.Type != TypeDebit && t.Type != TypeCredit {
		return fmt.Errorf("transaction type must be DEBIT or CREDIT: %w", ErrInvalidRequest)
	}

	// Amount is an absolute value; the sign is carried by the type.
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("transaction amount must be positive: %w", ErrInvalidRequest)
	}

	return nil
}
