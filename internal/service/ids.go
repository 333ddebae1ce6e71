package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/internal/model"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
)

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidID, raw)
	}
	return id, nil
}

func parseIDList(raw []string) (model.IDList, error) {
	ids, err := model.ParseIDList(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidID, err)
	}
	return ids, nil
}
