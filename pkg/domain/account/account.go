// Package account holds the ledger's account aggregate and the rules that
// decide whether a transfer may touch it. All balance mutations go through
// Credit and Debit so every movement produces a matching history entry.
package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account cannot be resolved by
	// id or number. It is also the error surfaced for ownership mismatches,
	// so non-owners cannot probe for account existence.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNotOwner is returned when a caller acts on an account they do not
	// own. Services mask it as ErrAccountNotFound before it leaves the core.
	ErrNotOwner = errors.New("not owner")

	// ErrTransferAmountMustBePositive is returned when a transfer amount is
	// zero or negative.
	ErrTransferAmountMustBePositive = errors.New("transfer amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// available balance, or the balance is already non-positive.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNumberTaken is returned when an account number collides with
	// an existing one on insert.
	ErrAccountNumberTaken = errors.New("account number already taken")

	// ErrAccountNameInvalid is returned when the account name is empty or
	// longer than MaxNameLength.
	ErrAccountNameInvalid = errors.New("account name must be 1-64 characters")

	// ErrInvalidAccountNumber is returned when an account number is not a
	// 26-digit numeric string.
	ErrInvalidAccountNumber = errors.New("account number must be 26 digits")
)

// MaxNameLength is the longest allowed account name.
const MaxNameLength = 64

// Account is the aggregate root of the ledger. The balance is a signed
// decimal and may go negative as persisted state; only the outgoing
// transfer path guards against overdrawing.
type Account struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Number    string
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// Builder assembles Account instances, both fresh ones and hydrations from
// the store.
type Builder struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	number    string
	name      string
	balance   decimal.Decimal
	createdAt time.Time
}

// New creates a Builder with a fresh id, a generated account number and a
// zero balance.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		number:    GenerateNumber(),
		balance:   decimal.Zero,
		createdAt: time.Now(),
	}
}

// WithID sets the account id. Used when hydrating from the store.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithOwnerID sets the owning user. Mandatory.
func (b *Builder) WithOwnerID(ownerID uuid.UUID) *Builder {
	b.ownerID = ownerID
	return b
}

// WithNumber overrides the generated account number. Used when hydrating
// from the store.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithName sets the account label.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithBalance sets the balance. Only for hydration and test setup.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp. Only for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build validates the invariants and returns the account.
func (b *Builder) Build() (*Account, error) {
	if b.ownerID == uuid.Nil {
		return nil, errors.New("ownerID is required")
	}
	if b.name == "" || len(b.name) > MaxNameLength {
		return nil, ErrAccountNameInvalid
	}
	if !ValidNumber(b.number) {
		return nil, ErrInvalidAccountNumber
	}
	return &Account{
		ID:        b.id,
		OwnerID:   b.ownerID,
		Number:    b.number,
		Name:      b.name,
		Balance:   b.balance,
		CreatedAt: b.createdAt,
	}, nil
}

// validateOwner checks the caller against the account owner.
func (a *Account) validateOwner(userID uuid.UUID) error {
	if a.OwnerID != userID {
		return ErrNotOwner
	}
	return nil
}

// IsOwner reports whether the given user owns this account.
func (a *Account) IsOwner(userID uuid.UUID) bool {
	return a.validateOwner(userID) == nil
}

// ValidateIncoming checks the invariants for an incoming transfer. Incoming
// transfers carry no ownership requirement: any authenticated caller may
// fund any account it can name.
func (a *Account) ValidateIncoming(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrTransferAmountMustBePositive
	}
	return nil
}

// ValidateOutgoing checks the invariants for an outgoing transfer, in fixed
// order: ownership, then funds sufficiency, then amount sign. A balance at
// or below zero is insufficient regardless of the requested amount, and the
// funds check deliberately outranks the sign check.
func (a *Account) ValidateOutgoing(userID uuid.UUID, amount decimal.Decimal) error {
	if err := a.validateOwner(userID); err != nil {
		return err
	}
	if a.Balance.Sign() <= 0 || amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	if !amount.IsPositive() {
		return ErrTransferAmountMustBePositive
	}
	return nil
}

// Credit adds amount to the balance and returns the matching history entry
// with the post-movement balance snapshot. Callers must have run
// ValidateIncoming first.
func (a *Account) Credit(amount decimal.Decimal, description string, at time.Time) *HistoryEntry {
	a.Balance = a.Balance.Add(amount)
	return a.newEntry(EntryIncoming, amount, description, at)
}

// Debit subtracts amount from the balance and returns the matching history
// entry. Callers must have run ValidateOutgoing first.
func (a *Account) Debit(amount decimal.Decimal, description string, at time.Time) *HistoryEntry {
	a.Balance = a.Balance.Sub(amount)
	return a.newEntry(EntryOutgoing, amount, description, at)
}

func (a *Account) newEntry(t EntryType, amount decimal.Decimal, description string, at time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:              uuid.New(),
		AccountID:       a.ID,
		Type:            t,
		Amount:          amount,
		BalanceAfter:    a.Balance,
		Description:     description,
		TransactionDate: at,
	}
}
