package account_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbank/ledger/pkg/domain/account"
)

func newAccount(t *testing.T, balance decimal.Decimal) *account.Account {
	t.Helper()
	a, err := account.New().
		WithOwnerID(uuid.New()).
		WithName("checking").
		WithBalance(balance).
		Build()
	require.NoError(t, err)
	return a
}

func TestBuilder(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := account.New().WithOwnerID(uuid.New()).WithName("savings").Build()
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, a.ID)
		assert.True(t, account.ValidNumber(a.Number))
		assert.True(t, a.Balance.IsZero())
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := account.New().WithName("savings").Build()
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := account.New().WithOwnerID(uuid.New()).Build()
		assert.ErrorIs(t, err, account.ErrAccountNameInvalid)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := account.New().
			WithOwnerID(uuid.New()).
			WithName(strings.Repeat("x", account.MaxNameLength+1)).
			Build()
		assert.ErrorIs(t, err, account.ErrAccountNameInvalid)
	})

	t.Run("malformed number", func(t *testing.T) {
		_, err := account.New().
			WithOwnerID(uuid.New()).
			WithName("savings").
			WithNumber("not-a-number").
			Build()
		assert.ErrorIs(t, err, account.ErrInvalidAccountNumber)
	})
}

func TestValidateIncoming(t *testing.T) {
	a := newAccount(t, decimal.Zero)

	assert.NoError(t, a.ValidateIncoming(decimal.NewFromFloat(20.54)))
	assert.ErrorIs(t, a.ValidateIncoming(decimal.Zero), account.ErrTransferAmountMustBePositive)
	assert.ErrorIs(t, a.ValidateIncoming(decimal.NewFromInt(-5)), account.ErrTransferAmountMustBePositive)
}

func TestValidateOutgoing(t *testing.T) {
	owner := uuid.New()
	build := func(balance decimal.Decimal) *account.Account {
		a, err := account.New().WithOwnerID(owner).WithName("checking").WithBalance(balance).Build()
		require.NoError(t, err)
		return a
	}

	t.Run("ok", func(t *testing.T) {
		a := build(decimal.NewFromInt(100))
		assert.NoError(t, a.ValidateOutgoing(owner, decimal.NewFromFloat(99.99)))
	})

	t.Run("exact balance is allowed", func(t *testing.T) {
		a := build(decimal.NewFromFloat(20.54))
		assert.NoError(t, a.ValidateOutgoing(owner, decimal.NewFromFloat(20.54)))
	})

	t.Run("non-owner outranks everything", func(t *testing.T) {
		a := build(decimal.Zero)
		err := a.ValidateOutgoing(uuid.New(), decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, account.ErrNotOwner)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		a := build(decimal.NewFromInt(10))
		err := a.ValidateOutgoing(owner, decimal.NewFromFloat(10.01))
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	})

	t.Run("zero balance is insufficient before sign check", func(t *testing.T) {
		// A drained account rejects even a negative amount as insufficient.
		a := build(decimal.Zero)
		err := a.ValidateOutgoing(owner, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	})

	t.Run("negative amount with funds", func(t *testing.T) {
		a := build(decimal.NewFromInt(100))
		err := a.ValidateOutgoing(owner, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, account.ErrTransferAmountMustBePositive)
	})

	t.Run("zero amount with funds", func(t *testing.T) {
		a := build(decimal.NewFromInt(100))
		err := a.ValidateOutgoing(owner, decimal.Zero)
		assert.ErrorIs(t, err, account.ErrTransferAmountMustBePositive)
	})
}

func TestCreditDebitSnapshots(t *testing.T) {
	a := newAccount(t, decimal.Zero)
	at := time.Now()

	e1 := a.Credit(decimal.NewFromFloat(20.54), "payroll", at)
	assert.Equal(t, account.EntryIncoming, e1.Type)
	assert.True(t, e1.Amount.Equal(decimal.NewFromFloat(20.54)))
	assert.True(t, e1.BalanceAfter.Equal(decimal.NewFromFloat(20.54)))
	assert.Equal(t, a.ID, e1.AccountID)
	assert.Equal(t, "payroll", e1.Description)

	e2 := a.Debit(decimal.NewFromFloat(0.54), "coffee", at.Add(time.Second))
	assert.Equal(t, account.EntryOutgoing, e2.Type)
	assert.True(t, e2.Amount.Equal(decimal.NewFromFloat(0.54)))
	assert.True(t, e2.BalanceAfter.Equal(decimal.NewFromInt(20)))
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(20)))
}

func TestHistoryReplayReproducesBalance(t *testing.T) {
	a := newAccount(t, decimal.Zero)
	at := time.Now()

	entries := []*account.HistoryEntry{
		a.Credit(decimal.NewFromFloat(100.25), "", at),
		a.Debit(decimal.NewFromFloat(40.75), "", at.Add(time.Second)),
		a.Credit(decimal.NewFromInt(3), "", at.Add(2*time.Second)),
	}

	replayed := decimal.Zero
	for _, e := range entries {
		replayed = replayed.Add(e.SignedAmount())
		assert.True(t, e.BalanceAfter.Equal(replayed))
	}
	assert.True(t, a.Balance.Equal(replayed))
}

func TestSignedAmount(t *testing.T) {
	in := &account.HistoryEntry{Type: account.EntryIncoming, Amount: decimal.NewFromInt(7)}
	out := &account.HistoryEntry{Type: account.EntryOutgoing, Amount: decimal.NewFromInt(7)}
	assert.True(t, in.SignedAmount().Equal(decimal.NewFromInt(7)))
	assert.True(t, out.SignedAmount().Equal(decimal.NewFromInt(-7)))
}
