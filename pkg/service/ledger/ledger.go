// Package ledger implements the balance-mutation and history-recording
// protocol. Every transfer runs as one store transaction: resolve and lock
// the account row, validate, write the new balance, append the history
// entry. A rejected transfer touches neither balance nor history.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbank/ledger/infra/events"
	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/repository"
)

// Service is the ledger engine.
type Service struct {
	uow       repository.UnitOfWork
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a ledger Service. publisher may be a NopPublisher.
func NewService(uow repository.UnitOfWork, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		uow:       uow,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ApplyIncoming credits amount to the account identified by number. Any
// authenticated caller may fund any account it can name; there is no
// ownership requirement on this path. Checks run in fixed order:
// existence, then amount sign.
func (s *Service) ApplyIncoming(ctx context.Context, number string, amount decimal.Decimal, description string) error {
	log := s.logger.With("op", "ApplyIncoming", "number", maskNumber(number))
	var entry *account.HistoryEntry
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		history, err := uow.HistoryRepository()
		if err != nil {
			return err
		}
		acct, err := accounts.GetByNumberForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if err = acct.ValidateIncoming(amount); err != nil {
			return err
		}
		entry = acct.Credit(amount, description, s.now())
		if err = accounts.UpdateBalance(ctx, acct.ID, acct.Balance); err != nil {
			return err
		}
		return history.Create(ctx, entry)
	})
	if err != nil {
		log.Error("incoming transfer rejected", "error", err)
		return err
	}
	log.Info("incoming transfer applied", "entry_id", entry.ID)
	s.publish(ctx, entry)
	return nil
}

// ApplyOutgoing debits amount from the account identified by id on behalf
// of the calling user. Checks run in fixed order: existence, ownership,
// funds sufficiency, amount sign. An ownership mismatch is reported as
// account-not-found so account existence never leaks to non-owners.
func (s *Service) ApplyOutgoing(ctx context.Context, callerID, accountID uuid.UUID, amount decimal.Decimal, description string) error {
	log := s.logger.With("op", "ApplyOutgoing", "account_id", accountID, "caller_id", callerID)
	var entry *account.HistoryEntry
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		history, err := uow.HistoryRepository()
		if err != nil {
			return err
		}
		acct, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if err = acct.ValidateOutgoing(callerID, amount); err != nil {
			return err
		}
		entry = acct.Debit(amount, description, s.now())
		if err = accounts.UpdateBalance(ctx, acct.ID, acct.Balance); err != nil {
			return err
		}
		return history.Create(ctx, entry)
	})
	if err != nil {
		log.Error("outgoing transfer rejected", "error", err)
		return maskOwnership(err)
	}
	log.Info("outgoing transfer applied", "entry_id", entry.ID)
	s.publish(ctx, entry)
	return nil
}

// publish emits the applied entry after commit. Failures are logged, never
// surfaced: the transfer already happened.
func (s *Service) publish(ctx context.Context, entry *account.HistoryEntry) {
	evt := events.TransferApplied{
		EntryID:      entry.ID,
		AccountID:    entry.AccountID,
		Type:         string(entry.Type),
		Amount:       entry.Amount,
		BalanceAfter: entry.BalanceAfter,
		OccurredAt:   entry.TransactionDate,
	}
	if err := s.publisher.PublishTransferApplied(ctx, evt); err != nil {
		s.logger.Warn("transfer event publish failed", "entry_id", entry.ID, "error", err)
	}
}

// maskOwnership hides ownership mismatches behind account-not-found.
func maskOwnership(err error) error {
	if errors.Is(err, account.ErrNotOwner) {
		return account.ErrAccountNotFound
	}
	return err
}

// maskNumber keeps account numbers out of the logs.
func maskNumber(number string) string {
	if len(number) < 4 {
		return "****"
	}
	return "****" + number[len(number)-4:]
}
