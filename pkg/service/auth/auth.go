// Package auth issues and interprets the JWT caller identity attached to
// every request.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/openbank/ledger/pkg/config"
	"github.com/openbank/ledger/pkg/domain/user"
	"github.com/openbank/ledger/pkg/repository"
)

// dummyHash is compared against when the identity does not exist, so login
// timing does not reveal which identities are registered.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Service authenticates users and mints tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// NewService creates an auth Service.
func NewService(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login resolves the identity (username or email) and verifies the
// password. Failures are uniformly ErrUserUnauthorized.
func (s *Service) Login(ctx context.Context, identity, password string) (*user.User, error) {
	log := s.logger.With("op", "Login")
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}

	var u *user.User
	if user.IsEmail(identity) {
		u, err = users.GetByEmail(ctx, identity)
	} else {
		u, err = users.GetByUsername(ctx, identity)
	}
	if err != nil || u == nil {
		checkDummyHash(password)
		log.Warn("login failed: unknown identity")
		return nil, user.ErrUserUnauthorized
	}
	if !u.CheckPassword(password) {
		log.Warn("login failed: bad password", "user_id", u.ID)
		return nil, user.ErrUserUnauthorized
	}
	log.Info("login successful", "user_id", u.ID)
	return u, nil
}

// GenerateToken mints a signed HS256 token for the user.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["username"] = u.Username
	claims["email"] = u.Email
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID extracts the caller identity from a verified token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return id, nil
}

func checkDummyHash(password string) {
	fake := &user.User{HashedPassword: dummyHash}
	_ = fake.CheckPassword(password)
}
