package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a customer account in the domain layer.
// The external Number is the stable lookup key used by callers; the ID is
// the storage identity.
type Account struct {
	ID         uuid.UUID
	Number     string
	HolderName string
	Currency   string // "PEN" / "USD"
	Balance    decimal.Decimal
}

// Debit subtracts amount from the balance.
// Returns ErrInsufficientFunds if the balance does not cover the amount;
// a debit never drives the balance below zero.
func (a *Account) Debit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return fmt.Errorf("debit %s exceeds balance %s: %w", amount, a.Balance, ErrInsufficientFunds)
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Credit adds amount to the balance. Credits have no balance precondition.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}
