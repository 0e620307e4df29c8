package user_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbank/ledger/internal/fake"
	domain "github.com/openbank/ledger/pkg/domain/user"
	"github.com/openbank/ledger/pkg/service/user"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("registers with hashed password", func(t *testing.T) {
		store := fake.NewStore()
		svc := user.NewService(store, logger)

		u, err := svc.CreateUser(ctx, "alice", "alice@example.com", "s3cret!")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret!", u.HashedPassword)

		users, err := store.UserRepository()
		require.NoError(t, err)
		got, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.True(t, got.CheckPassword("s3cret!"))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		store := fake.NewStore()
		svc := user.NewService(store, logger)

		_, err := svc.CreateUser(ctx, "al", "alice@example.com", "s3cret!")
		assert.ErrorIs(t, err, domain.ErrInvalidUser)
	})
}
