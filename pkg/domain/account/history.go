package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType tags the direction of a history entry.
type EntryType string

const (
	// EntryIncoming marks funds moving into the account.
	EntryIncoming EntryType = "incoming"
	// EntryOutgoing marks funds moving out of the account.
	EntryOutgoing EntryType = "outgoing"
)

// MaxDescriptionLength is the longest allowed entry description.
const MaxDescriptionLength = 128

// HistoryEntry is an immutable record of a single balance movement. Amount
// is always the positive magnitude; Type carries the sign. BalanceAfter is
// the account balance immediately after the movement was applied, so
// replaying entries in TransactionDate order reproduces the balance.
type HistoryEntry struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	Type            EntryType
	Amount          decimal.Decimal
	BalanceAfter    decimal.Decimal
	Description     string
	TransactionDate time.Time
}

// SignedAmount returns the entry's delta on the balance: positive for
// incoming, negative for outgoing.
func (e *HistoryEntry) SignedAmount() decimal.Decimal {
	if e.Type == EntryOutgoing {
		return e.Amount.Neg()
	}
	return e.Amount
}
