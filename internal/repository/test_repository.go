package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(ctx context.Context, test *model.Test) error
	FindByPasscode(ctx context.Context, passcode string) (*model.Test, error)
	// RemoveQuestion drops questionID from every test's question list and
	// reports how many tests were touched.
	RemoveQuestion(ctx context.Context, questionID uuid.UUID) (int64, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	return translateError(r.db.WithContext(ctx).Create(test).Error)
}

func (r *testRepository) FindByPasscode(ctx context.Context, passcode string) (*model.Test, error) {
	var test model.Test
	if err := r.db.WithContext(ctx).First(&test, "passcode = ?", passcode).Error; err != nil {
		return nil, translateError(err)
	}
	return &test, nil
}

func (r *testRepository) RemoveQuestion(ctx context.Context, questionID uuid.UUID) (int64, error) {
	containment, err := json.Marshal([]string{questionID.String()})
	if err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).
		Model(&model.Test{}).
		Where("questions @> ?::jsonb", string(containment)).
		Update("questions", gorm.Expr("questions - ?::text", questionID.String()))
	return res.RowsAffected, res.Error
}
