package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openbank/ledger/pkg/repository"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do are bound to the open
// transaction, so every operation in the callback shares one store
// transaction.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UnitOfWork over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction. The UoW passed to fn hands out
// repositories bound to that transaction; the transaction commits when fn
// returns nil and rolls back otherwise.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// AccountRepository returns an account repository on the current session.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

// HistoryRepository returns a history repository on the current session.
func (u *UoW) HistoryRepository() (repository.HistoryRepository, error) {
	return NewHistoryRepository(u.session()), nil
}

// UserRepository returns a user repository on the current session.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return NewUserRepository(u.session()), nil
}
