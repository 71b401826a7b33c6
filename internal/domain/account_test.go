package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDebit_SufficientBalance(t *testing.T) {
	acc := &Account{
		ID:       uuid.New(),
		Number:   "001-0001",
		Currency: "PEN",
		Balance:  decimal.RequireFromString("2000.00"),
	}

	err := acc.Debit(decimal.RequireFromString("100.00"))

	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("1900.00")),
		"expected 1900.00, got %s", acc.Balance)
}

func TestAccountDebit_ExactBalance(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(500)}

	err := acc.Debit(decimal.NewFromInt(500))

	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())
}

func TestAccountDebit_InsufficientFunds(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("1900.00")}

	err := acc.Debit(decimal.RequireFromString("2500.00"))

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	// Balance must be untouched on rejection.
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("1900.00")))
}

func TestAccountCredit_NoPrecondition(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(-100)}

	acc.Credit(decimal.NewFromInt(40))

	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(-60)))
}

func TestAccountDebitCredit_ExactDecimalArithmetic(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("0.30")}

	err := acc.Debit(decimal.RequireFromString("0.10"))
	require.NoError(t, err)
	acc.Credit(decimal.RequireFromString("0.01"))

	assert.Equal(t, "0.21", acc.Balance.String())
}
