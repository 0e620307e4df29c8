// Package user provides registration for account owners.
package user

import (
	"context"
	"log/slog"

	"github.com/openbank/ledger/pkg/domain/user"
	"github.com/openbank/ledger/pkg/repository"
)

// Service manages user records.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a user Service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateUser registers a new user with a hashed password.
func (s *Service) CreateUser(ctx context.Context, username, email, password string) (*user.User, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = user.New(username, email, password)
		if err != nil {
			return err
		}
		return users.Create(ctx, u)
	})
	if err != nil {
		s.logger.Error("user creation failed", "username", username, "error", err)
		return nil, err
	}
	s.logger.Info("user created", "user_id", u.ID)
	return u, nil
}
