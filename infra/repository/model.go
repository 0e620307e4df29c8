package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/domain/user"
)

// Account is the accounts table row.
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number    string          `gorm:"type:char(26);uniqueIndex;not null"`
	Name      string          `gorm:"size:64;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// HistoryEntry is the account_history table row. Rows are insert-only.
type HistoryEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            string          `gorm:"type:varchar(16);not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	BalanceAfter    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Description     string          `gorm:"size:128"`
	TransactionDate time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name for the HistoryEntry model.
func (HistoryEntry) TableName() string { return "account_history" }

// User is the users table row.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"uniqueIndex;not null;size:50"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

func accountToModel(a *account.Account) Account {
	return Account{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Number:    a.Number,
		Name:      a.Name,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

func accountToDomain(m *Account) *account.Account {
	return &account.Account{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Number:    m.Number,
		Name:      m.Name,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
	}
}

func entryToModel(e *account.HistoryEntry) HistoryEntry {
	return HistoryEntry{
		ID:              e.ID,
		AccountID:       e.AccountID,
		Type:            string(e.Type),
		Amount:          e.Amount,
		BalanceAfter:    e.BalanceAfter,
		Description:     e.Description,
		TransactionDate: e.TransactionDate,
	}
}

func entryToDomain(m *HistoryEntry) *account.HistoryEntry {
	return &account.HistoryEntry{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Type:            account.EntryType(m.Type),
		Amount:          m.Amount,
		BalanceAfter:    m.BalanceAfter,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
	}
}

func userToModel(u *user.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.HashedPassword,
		CreatedAt: u.CreatedAt,
	}
}

func userToDomain(m *User) *user.User {
	return &user.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		HashedPassword: m.Password,
		CreatedAt:      m.CreatedAt,
	}
}
