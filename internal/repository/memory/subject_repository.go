package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/internal/model"
)

type SubjectRepository struct {
	clock func() time.Time

	mu    sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]model.Subject
}

func NewSubjectRepository() *SubjectRepository {
	return &SubjectRepository{
		clock: time.Now,
		items: make(map[uuid.UUID]model.Subject),
	}
}

func (r *SubjectRepository) Create(_ context.Context, subject *model.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subject.AssignID()
	subject.CreatedAt = r.clock()
	r.items[subject.ID] = *subject
	r.order = append(r.order, subject.ID)
	return nil
}

func (r *SubjectRepository) FindAll(_ context.Context) ([]model.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Subject, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *SubjectRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Subject, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.items[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}
