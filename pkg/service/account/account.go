// Package account provides the account directory: creation with unique
// number generation and point lookups by id or number.
package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/repository"
)

// maxCreateAttempts bounds number-collision retries. A collision between
// uniform 26-digit numbers is astronomically unlikely, but the retry loop
// is required for correctness: the store's unique constraint is the only
// authority on uniqueness.
const maxCreateAttempts = 5

// Service is the account directory.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates an account directory Service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateAccount persists a new zero-balance account for the owner. The
// account number is generated fresh on every attempt and inserted under the
// store's unique constraint; a conflicting insert is retried with a new
// number rather than pre-checked, so two concurrent creations can never
// race into the same number.
func (s *Service) CreateAccount(ctx context.Context, ownerID uuid.UUID, name string) (*account.Account, error) {
	log := s.logger.With("op", "CreateAccount", "owner_id", ownerID)
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		var a *account.Account
		err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			a, err = account.New().WithOwnerID(ownerID).WithName(name).Build()
			if err != nil {
				return err
			}
			return accounts.Create(ctx, a)
		})
		if errors.Is(err, account.ErrAccountNumberTaken) {
			log.Warn("account number collision, retrying", "attempt", attempt)
			continue
		}
		if err != nil {
			log.Error("account creation failed", "error", err)
			return nil, err
		}
		log.Info("account created", "account_id", a.ID)
		return a, nil
	}
	return nil, account.ErrAccountNumberTaken
}

// ResolveByID looks up an account by id.
func (s *Service) ResolveByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.Get(ctx, id)
}

// ResolveByNumber looks up an account by its public number.
func (s *Service) ResolveByNumber(ctx context.Context, number string) (*account.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.GetByNumber(ctx, number)
}
