package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbank/ledger/pkg/domain/user"
	"github.com/openbank/ledger/pkg/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository on the given session.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := userToModel(u)
	err := r.db.WithContext(ctx).Create(&m).Error
	return mapGormError(err, user.ErrUserUnauthorized, user.ErrInvalidUser)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) first(ctx context.Context, query string, arg any) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, query, arg).Error; err != nil {
		return nil, mapGormError(err, user.ErrUserUnauthorized, user.ErrInvalidUser)
	}
	return userToDomain(&m), nil
}
