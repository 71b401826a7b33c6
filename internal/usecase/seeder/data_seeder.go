package seeder

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankx/transactions-service/internal/domain"
)

// DataSeeder ensures the baseline risk limits and demo accounts exist at
// startup. Seeding is idempotent: rows that already exist are left untouched,
// so operator edits survive restarts.
type DataSeeder struct {
	accountRepo   domain.AccountRepository
	riskLimitRepo domain.RiskLimitRepository
}

// NewDataSeeder creates a new DataSeeder instance
func NewDataSeeder(accountRepo domain.AccountRepository, riskLimitRepo domain.RiskLimitRepository) *DataSeeder {
	return &DataSeeder{
		accountRepo:   accountRepo,
		riskLimitRepo: riskLimitRepo,
	}
}

// Seed creates the missing risk limits and accounts.
func (s *DataSeeder) Seed(ctx context.Context) error {
	if err := s.seedRiskLimits(ctx); err != nil {
		return err
	}
	return s.seedAccounts(ctx)
}

func (s *DataSeeder) seedRiskLimits(ctx context.Context) error {
	defaults := []*domain.RiskLimit{
		{ID: uuid.New(), Currency: "PEN", MaxDebitPerTx: decimal.RequireFromString("1500")},
		{ID: uuid.New(), Currency: "USD", MaxDebitPerTx: decimal.RequireFromString("500")},
	}

	existing, err := s.riskLimitRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	configured := make(map[string]bool, len(existing))
	for _, limit := range existing {
		configured[limit.Currency] = true
	}

	for _, limit := range defaults {
		if configured[limit.Currency] {
			continue
		}
		if err := s.riskLimitRepo.Save(ctx, limit); err != nil {
			return err
		}
	}
	return nil
}

func (s *DataSeeder) seedAccounts(ctx context.Context) error {
	defaults := []*domain.Account{
		{
			ID:         uuid.New(),
			Number:     "001-0001",
			HolderName: "Ana Peru",
			Currency:   "PEN",
			Balance:    decimal.RequireFromString("2000"),
		},
		{
			ID:         uuid.New(),
			Number:     "001-0002",
			HolderName: "Luis Acuña",
			Currency:   "PEN",
			Balance:    decimal.RequireFromString("800"),
		},
	}

	for _, account := range defaults {
		_, err := s.accountRepo.FindByNumber(ctx, account.Number)
		if err == nil {
			// Account exists, no action needed.
			continue
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}
	}
	return nil
}
