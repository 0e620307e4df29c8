package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/repository"
)

// GetBalance returns the current balance of the account, restricted to its
// owner. Non-owners get account-not-found.
func (s *Service) GetBalance(ctx context.Context, callerID, accountID uuid.UUID) (decimal.Decimal, error) {
	acct, err := s.resolveOwned(ctx, callerID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

// ListHistory returns the account's history entries ordered by transaction
// date descending, paginated, together with the total entry count. Scoped
// to the account owner; non-owners get account-not-found.
func (s *Service) ListHistory(ctx context.Context, callerID, accountID uuid.UUID, page repository.Page) ([]*account.HistoryEntry, int64, error) {
	if _, err := s.resolveOwned(ctx, callerID, accountID); err != nil {
		return nil, 0, err
	}
	history, err := s.uow.HistoryRepository()
	if err != nil {
		return nil, 0, err
	}
	return history.ListByAccount(ctx, accountID, page)
}

func (s *Service) resolveOwned(ctx context.Context, callerID, accountID uuid.UUID) (*account.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acct, err := accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acct.IsOwner(callerID) {
		return nil, account.ErrAccountNotFound
	}
	return acct, nil
}
