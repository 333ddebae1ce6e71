package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/internal/model"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	FindAll(ctx context.Context) ([]model.Subject, error)
	// FindByIDs returns the subjects in the order of ids. Unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	return translateError(r.db.WithContext(ctx).Create(subject).Error)
}

func (r *subjectRepository) FindAll(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Subject, error) {
	if len(ids) == 0 {
		return []model.Subject{}, nil
	}
	var found []model.Subject
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	return orderByIDs(found, ids), nil
}

func orderByIDs(subjects []model.Subject, ids []uuid.UUID) []model.Subject {
	byID := make(map[uuid.UUID]model.Subject, len(subjects))
	for _, s := range subjects {
		byID[s.ID] = s
	}
	ordered := make([]model.Subject, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
