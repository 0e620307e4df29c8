package repository

import (
	"errors"

	"gorm.io/gorm"
)

// mapGormError converts GORM errors to domain errors so infrastructure
// concerns stay inside this layer. notFound and conflict are the domain
// errors to surface for the respective GORM failures.
func mapGormError(err, notFound, conflict error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict
	}
	return err
}
