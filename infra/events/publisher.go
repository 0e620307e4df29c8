// Package events publishes applied-transfer notifications to downstream
// consumers. Publishing is best-effort: the ledger transaction has already
// committed by the time an event goes out.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferApplied describes one committed balance movement.
type TransferApplied struct {
	EntryID      uuid.UUID       `json:"entry_id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// Publisher emits TransferApplied events.
type Publisher interface {
	PublishTransferApplied(ctx context.Context, evt TransferApplied) error
	Close() error
}

// NopPublisher discards all events. Used when no brokers are configured.
type NopPublisher struct{}

// PublishTransferApplied implements Publisher.
func (NopPublisher) PublishTransferApplied(context.Context, TransferApplied) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }
