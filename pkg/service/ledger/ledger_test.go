package ledger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbank/ledger/infra/events"
	"github.com/openbank/ledger/internal/fake"
	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/repository"
	"github.com/openbank/ledger/pkg/service/ledger"
)

func newService(store *fake.Store) *ledger.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ledger.NewService(store, events.NopPublisher{}, logger)
}

func seedAccount(t *testing.T, store *fake.Store, ownerID uuid.UUID, balance decimal.Decimal) *account.Account {
	t.Helper()
	a, err := account.New().
		WithOwnerID(ownerID).
		WithName("checking").
		WithBalance(balance).
		Build()
	require.NoError(t, err)
	store.SeedAccount(a)
	return a
}

func TestApplyIncoming(t *testing.T) {
	ctx := context.Background()

	t.Run("credits balance and records entry", func(t *testing.T) {
		store := fake.NewStore()
		svc := newService(store)
		a := seedAccount(t, store, uuid.New(), decimal.Zero)

		err := svc.ApplyIncoming(ctx, a.Number, decimal.NewFromFloat(20.54), "payroll")
		require.NoError(t, err)

		got := store.Account(a.ID)
		assert.True(t, got.Balance.Equal(decimal.NewFromFloat(20.54)))

		entries := store.Entries(a.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, account.EntryIncoming, entries[0].Type)
		assert.True(t, entries[0].Amount.Equal(decimal.NewFromFloat(20.54)))
		assert.True(t, entries[0].BalanceAfter.Equal(decimal.NewFromFloat(20.54)))
		assert.Equal(t, "payroll", entries[0].Description)
	})

	t.Run("unknown number", func(t *testing.T) {
		store := fake.NewStore()
		svc := newService(store)

		err := svc.ApplyIncoming(ctx, "00000000000000000000000000", decimal.NewFromInt(5), "")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})

	t.Run("non-positive amount leaves no trace", func(t *testing.T) {
		store := fake.NewStore()
		svc := newService(store)
		a := seedAccount(t, store, uuid.New(), decimal.NewFromInt(10))

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-3)} {
			err := svc.ApplyIncoming(ctx, a.Number, amount, "")
			assert.ErrorIs(t, err, account.ErrTransferAmountMustBePositive)
		}
		assert.True(t, store.Account(a.ID).Balance.Equal(decimal.NewFromInt(10)))
		assert.Empty(t, store.Entries(a.ID))
	})

	t.Run("no ownership requirement", func(t *testing.T) {
		// The caller identity never reaches the incoming path at all; any
		// authenticated caller can fund any account it can name.
		store := fake.NewStore()
		svc := newService(store)
		a := seedAccount(t, store, uuid.New(), decimal.Zero)

		require.NoError(t, svc.ApplyIncoming(ctx, a.Number, decimal.NewFromInt(1), ""))
	})
}

func TestApplyOutgoing(t *testing.T) {
	ctx := context.Background()

	t.Run("debits balance and records entry", func(t *testing.T) {
		store := fake.NewStore()
		svc := newService(store)
		owner := uuid.New()
		a := seedAccount(t, store, owner, decimal.NewFromFloat(50.00))

		err := svc.ApplyOutgoing(ctx, owner, a.ID, decimal.NewFromFloat(20.54), "rent")
		require.NoError(t, err)

		assert.True(t, store.Account(a.ID).Balance.Equal(decimal.NewFromFloat(29.46)))
		entries := store.Entries(a.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, account.EntryOutgoing, entries[0].Type)
		assert.True(t, entries[0].BalanceAfter.Equal(decimal.NewFromFloat(29.46)))
	})

	t.Run("whole balance drains to zero", func(t *testing.T) {
		store := fake.NewStore()
		svc := newService(store)
		owner := uuid.New()
		a := seedAccount(t, store, owner, decimal.NewFromFloat(20.54))

		err := svc.ApplyOutgoing(ctx, owner, a.ID, decimal.NewFromFloat(20.54), "")
		require.NoError(t, err)
		assert.True(t, store.Account(a.ID).Balance.IsZero())
	})

	t.Run("insufficient funds leaves no trace", func(t *testing.T) {
		store := fake.NewStore()
		svc := newService(store)
		owner := uuid.New()
		a := seedAccount(t, store, owner, decimal.NewFromInt(10))

		err := svc.ApplyOutgoing(ctx, owner, a.ID, decimal.NewFromFloat(10.01), "")
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.True(t, store.Account(a.ID).Balance.Equal(decimal.NewFromInt(10)))
		assert.Empty(t, store.Entries(a.ID))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		store := fake.NewStore()
		svc := newService(store)
		owner := uuid.New()
		a := seedAccount(t, store, owner, decimal.NewFromInt(10))

		err := svc.ApplyOutgoing(ctx, owner, a.ID, decimal.NewFromInt(-1), "")
		assert.ErrorIs(t, err, account.ErrTransferAmountMustBePositive)
	})

	t.Run("non-owner sees not-found", func(t *testing.T) {
		store := fake.NewStore()
		svc := newService(store)
		a := seedAccount(t, store, uuid.New(), decimal.NewFromInt(100))

		err := svc.ApplyOutgoing(ctx, uuid.New(), a.ID, decimal.NewFromInt(1), "")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
		assert.NotErrorIs(t, err, account.ErrNotOwner)
		assert.True(t, store.Account(a.ID).Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("unknown account", func(t *testing.T) {
		store := fake.NewStore()
		svc := newService(store)

		err := svc.ApplyOutgoing(ctx, uuid.New(), uuid.New(), decimal.NewFromInt(1), "")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()
	store := fake.NewStore()
	svc := newService(store)
	owner := uuid.New()
	a := seedAccount(t, store, owner, decimal.NewFromFloat(12.34))

	t.Run("owner", func(t *testing.T) {
		balance, err := svc.GetBalance(ctx, owner, a.ID)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromFloat(12.34)))
	})

	t.Run("non-owner sees not-found", func(t *testing.T) {
		_, err := svc.GetBalance(ctx, uuid.New(), a.ID)
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.GetBalance(ctx, owner, uuid.New())
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})
}

func TestListHistory(t *testing.T) {
	ctx := context.Background()
	store := fake.NewStore()
	svc := newService(store)
	owner := uuid.New()
	a := seedAccount(t, store, owner, decimal.NewFromInt(1000))
	other := seedAccount(t, store, owner, decimal.NewFromInt(1000))

	// Five movements against a, one against other; the other account's
	// entries must never bleed into a's history.
	require.NoError(t, svc.ApplyIncoming(ctx, a.Number, decimal.NewFromInt(1), "first"))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, svc.ApplyOutgoing(ctx, owner, a.ID, decimal.NewFromInt(2), "second"))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, svc.ApplyIncoming(ctx, a.Number, decimal.NewFromInt(3), "third"))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, svc.ApplyOutgoing(ctx, owner, a.ID, decimal.NewFromInt(4), "fourth"))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, svc.ApplyIncoming(ctx, a.Number, decimal.NewFromInt(5), "fifth"))
	require.NoError(t, svc.ApplyIncoming(ctx, other.Number, decimal.NewFromInt(99), "elsewhere"))

	t.Run("newest first with total", func(t *testing.T) {
		entries, total, err := svc.ListHistory(ctx, owner, a.ID, repository.Page{Number: 1, Size: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, entries, 5)
		for i, want := range []string{"fifth", "fourth", "third", "second", "first"} {
			assert.Equal(t, want, entries[i].Description)
		}
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].TransactionDate.After(entries[i-1].TransactionDate))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page1, total, err := svc.ListHistory(ctx, owner, a.ID, repository.Page{Number: 1, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, page1, 2)
		assert.Equal(t, "fifth", page1[0].Description)

		page3, total, err := svc.ListHistory(ctx, owner, a.ID, repository.Page{Number: 3, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, page3, 1)
		assert.Equal(t, "first", page3[0].Description)
	})

	t.Run("page past the end", func(t *testing.T) {
		entries, total, err := svc.ListHistory(ctx, owner, a.ID, repository.Page{Number: 9, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Empty(t, entries)
	})

	t.Run("non-owner sees not-found", func(t *testing.T) {
		_, _, err := svc.ListHistory(ctx, uuid.New(), a.ID, repository.Page{Number: 1, Size: 20})
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})
}
