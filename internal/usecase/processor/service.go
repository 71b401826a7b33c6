package processor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankx/transactions-service/internal/domain"
)

// RiskEvaluator decides whether a transaction passes the configured
// per-currency limits.
type RiskEvaluator interface {
	Allowed(currency string, txType domain.TransactionType, amount decimal.Decimal) bool
}

// Publisher is the broadcast sink for committed transactions.
type Publisher interface {
	Publish(tx domain.Transaction)
	Subscribe() (<-chan domain.Transaction, func())
}

// PersistPool runs persistence work off the request goroutine. Do must block
// until the submitted task has completed.
type PersistPool interface {
	Do(ctx context.Context, task func() error) error
}

// CreateInput represents the input for creating a transaction
type CreateInput struct {
	AccountNumber string
	Type          string
	Amount        decimal.Decimal
}

// Service orchestrates the transaction-application workflow: account lookup,
// risk check, balance rule, balance mutation, persistence, notification.
type Service struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
	Risk            RiskEvaluator
	Hub             Publisher
	Persist         PersistPool

	logger *slog.Logger

	// Per-account-number locks serialize concurrent requests against the
	// same account so two debits cannot both read the pre-update balance.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new transaction processor instance
func NewService(
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	risk RiskEvaluator,
	hub Publisher,
	persist PersistPool,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		Risk:            risk,
		Hub:             hub,
		Persist:         persist,
		logger:          logger,
		locks:           make(map[string]*sync.Mutex),
	}
}

// Create applies a requested debit/credit to an account.
// Pipeline: resolve account -> normalize type -> risk check -> balance rule ->
// balance mutation -> persist account -> persist transaction -> publish.
// Any failure before the account persist leaves all external state unchanged.
// Publishing is best-effort and never fails the request.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Transaction, error) {
	txType, err := domain.ParseTransactionType(input.Type)
	if err != nil {
		return nil, err
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("amount must be positive: %w", domain.ErrInvalidRequest)
	}

	lock := s.accountLock(input.AccountNumber)
	lock.Lock()
	defer lock.Unlock()

	// 1. Resolve account
	account, err := s.AccountRepo.FindByNumber(ctx, input.AccountNumber)
	if err != nil {
		return nil, err
	}

	// 2. Risk check against the account's currency
	if !s.Risk.Allowed(account.Currency, txType, input.Amount) {
		return nil, fmt.Errorf("%s %s %s: %w", txType, input.Amount, account.Currency, domain.ErrRiskRejected)
	}

	// 3. Balance rule + exact-decimal mutation (in memory only so far)
	switch txType {
	case domain.TypeDebit:
		if err := account.Debit(input.Amount); err != nil {
			return nil, err
		}
	case domain.TypeCredit:
		account.Credit(input.Amount)
	}

	// 4. Persist the updated account, offloaded to the persist pool. The
	// write runs under a context detached from the caller so an abandoned
	// request cannot leave a dangling balance mutation.
	persistCtx := context.WithoutCancel(ctx)
	if err := s.Persist.Do(ctx, func() error {
		return s.AccountRepo.Save(persistCtx, account)
	}); err != nil {
		return nil, fmt.Errorf("persist account %s: %w", account.Number, err)
	}

	// 5. Persist the transaction record. No rollback of the account update
	// if this fails; the caller sees an infrastructure error.
	tx := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: account.ID,
		Type:      txType,
		Amount:    input.Amount,
		Timestamp: time.Now().UTC(),
		Status:    domain.StatusOK,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if err := s.TransactionRepo.Save(persistCtx, tx); err != nil {
		return nil, fmt.Errorf("persist transaction for account %s: %w", account.Number, err)
	}

	// 6. Notify live subscribers. Best-effort only.
	s.Hub.Publish(*tx)

	s.logger.Info("transaction applied",
		"account", account.Number,
		"type", string(txType),
		"amount", input.Amount.String(),
		"balance", account.Balance.String(),
	)
	return tx, nil
}

// ListByAccount returns all transactions for the account with the given
// number, most recent first. A finite, one-shot result.
func (s *Service) ListByAccount(ctx context.Context, accountNumber string) ([]*domain.Transaction, error) {
	account, err := s.AccountRepo.FindByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return s.TransactionRepo.FindByAccountOrderByTimestampDesc(ctx, account.ID)
}

// Subscribe returns a live feed of transactions committed after the call.
// The feed carries no history and is not restartable; the returned cancel
// function releases the subscription.
func (s *Service) Subscribe() (<-chan domain.Transaction, func()) {
	return s.Hub.Subscribe()
}

// accountLock returns the mutex owning the given account number, creating it
// on first use. Locks are never removed; the account set is small and stable.
func (s *Service) accountLock(number string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[number]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[number] = lock
	}
	return lock
}
