package repository

import (
	"errors"

	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
	"gorm.io/gorm"
)

// translateError maps gorm sentinels onto the application error taxonomy.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrConflict
	default:
		return err
	}
}
