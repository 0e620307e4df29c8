package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/repository"
)

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a history repository on the given session.
func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, e *account.HistoryEntry) error {
	m := entryToModel(e)
	return r.db.WithContext(ctx).Create(&m).Error
}

// ListByAccount orders by transaction date descending with the id as a
// deterministic tiebreak for same-second entries.
func (r *historyRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, page repository.Page) ([]*account.HistoryEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&HistoryEntry{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []HistoryEntry
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("transaction_date DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*account.HistoryEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, entryToDomain(&rows[i]))
	}
	return entries, total, nil
}
