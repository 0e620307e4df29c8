// Package repository defines the persistence contracts consumed by the
// service layer. Implementations live under infra/repository.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/domain/user"
)

// Page selects a slice of an ordered result set.
type Page struct {
	Number int // 1-based page number
	Size   int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// AccountRepository defines account data access. The ForUpdate variants
// acquire a row-level lock and must run inside a UnitOfWork transaction so
// concurrent transfers against the same account serialize.
type AccountRepository interface {
	Create(ctx context.Context, a *account.Account) error
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByNumber(ctx context.Context, number string) (*account.Account, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// HistoryRepository defines history data access. Entries are append-only:
// there is deliberately no update or delete.
type HistoryRepository interface {
	Create(ctx context.Context, e *account.HistoryEntry) error
	// ListByAccount returns entries ordered by transaction date descending
	// along with the total entry count for the account.
	ListByAccount(ctx context.Context, accountID uuid.UUID, page Page) ([]*account.HistoryEntry, int64, error)
}

// UserRepository defines user data access.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// UnitOfWork provides a transaction boundary plus repository access bound to
// that transaction. Repositories obtained inside Do share one store
// transaction, so a balance update and its history insert either both
// persist or neither does.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	AccountRepository() (AccountRepository, error)
	HistoryRepository() (HistoryRepository, error)
	UserRepository() (UserRepository, error)
}
