package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/repository"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository on the given session.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := accountToModel(a)
	err := r.db.WithContext(ctx).Create(&m).Error
	return mapGormError(err, account.ErrAccountNotFound, account.ErrAccountNumberTaken)
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.first(ctx, r.db, "id = ?", id)
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	return r.first(ctx, r.db, "number = ?", number)
}

// GetForUpdate locks the account row for the remainder of the surrounding
// transaction, serializing concurrent transfers against the same account.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *accountRepository) GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error) {
	return r.first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), "number = ?", number)
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if res.Error != nil {
		return mapGormError(res.Error, account.ErrAccountNotFound, account.ErrAccountNumberTaken)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) first(ctx context.Context, db *gorm.DB, query string, arg any) (*account.Account, error) {
	var m Account
	if err := db.WithContext(ctx).First(&m, query, arg).Error; err != nil {
		return nil, mapGormError(err, account.ErrAccountNotFound, account.ErrAccountNumberTaken)
	}
	return accountToDomain(&m), nil
}
