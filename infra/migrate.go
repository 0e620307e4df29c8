package infra

import (
	"gorm.io/gorm"

	"github.com/openbank/ledger/infra/repository"
)

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&repository.User{},
		&repository.Account{},
		&repository.HistoryEntry{},
	)
}
