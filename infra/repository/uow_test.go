package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbank/ledger/pkg/repository"
)

func TestUoW_DoCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		require.NoError(t, err)
		return accounts.UpdateBalance(ctx, uuid.New(), decimal.NewFromInt(10))
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(ctx, func(repository.UnitOfWork) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_RepositoriesOutsideDoUseBaseSession(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	accounts, err := uow.AccountRepository()
	require.NoError(t, err)
	require.NotNil(t, accounts)

	history, err := uow.HistoryRepository()
	require.NoError(t, err)
	require.NotNil(t, history)

	users, err := uow.UserRepository()
	require.NoError(t, err)
	require.NotNil(t, users)

	assert.NoError(t, mock.ExpectationsWereMet())
}
