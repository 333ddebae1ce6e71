package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/internal/model"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	FindAll(ctx context.Context) ([]model.Question, error)
	FindBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.Question, error)
	FindByTestTitle(ctx context.Context, title string) ([]model.Question, error)
	// Mutate loads the question, lets fn modify it and saves it, holding the row
	// for the duration. Returns ErrNotFound when the id is unknown.
	Mutate(ctx context.Context, id uuid.UUID, fn func(question *model.Question) error) (*model.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return translateError(r.db.WithContext(ctx).Create(question).Error)
}

func (r *questionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

func (r *questionRepository) FindAll(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.Question, error) {
	containment, err := json.Marshal([]string{subjectID.String()})
	if err != nil {
		return nil, err
	}
	var questions []model.Question
	err = r.db.WithContext(ctx).
		Where("subjects @> ?::jsonb", string(containment)).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByTestTitle(ctx context.Context, title string) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.WithContext(ctx).Where("test = ?", title).Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(question *model.Question) error) (*model.Question, error) {
	var updated model.Question
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&updated, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&updated); err != nil {
			return err
		}
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &updated, nil
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Question{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
