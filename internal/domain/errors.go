package domain

import "errors"

// Business-rule failures surfaced to callers as distinct, recoverable
// outcomes. Wrap these with fmt.Errorf("...: %w", ...) and match with
// errors.Is; anything not matching one of the four is an infrastructure
// failure (store unavailable, etc.) and may be retried by the caller.
var (
	// ErrAccountNotFound indicates no account exists for the given number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrRiskRejected indicates the amount exceeds the configured
	// per-currency debit limit (or no limit is configured for the currency).
	ErrRiskRejected = errors.New("risk rejected")

	// ErrInsufficientFunds indicates a debit exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidRequest indicates a malformed request: unrecognized
	// transaction type or non-positive amount.
	ErrInvalidRequest = errors.New("invalid request")
)
