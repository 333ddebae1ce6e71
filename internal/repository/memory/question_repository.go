package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/internal/model"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
)

// QuestionRepository keeps questions in process memory, in insertion order.
type QuestionRepository struct {
	clock func() time.Time

	mu    sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]model.Question
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{
		clock: time.Now,
		items: make(map[uuid.UUID]model.Question),
	}
}

func (r *QuestionRepository) Create(_ context.Context, question *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	question.AssignID()
	if _, exists := r.items[question.ID]; exists {
		return apperrors.ErrConflict
	}
	now := r.clock()
	question.CreatedAt = now
	question.UpdatedAt = now
	r.items[question.ID] = cloneQuestion(*question)
	r.order = append(r.order, question.ID)
	return nil
}

func (r *QuestionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneQuestion(q)
	return &out, nil
}

func (r *QuestionRepository) FindAll(_ context.Context) ([]model.Question, error) {
	return r.filter(func(model.Question) bool { return true }), nil
}

func (r *QuestionRepository) FindBySubject(_ context.Context, subjectID uuid.UUID) ([]model.Question, error) {
	return r.filter(func(q model.Question) bool { return q.SubjectIDs.Contains(subjectID) }), nil
}

func (r *QuestionRepository) FindByTestTitle(_ context.Context, title string) ([]model.Question, error) {
	return r.filter(func(q model.Question) bool { return q.TestTitle == title }), nil
}

func (r *QuestionRepository) Mutate(_ context.Context, id uuid.UUID, fn func(question *model.Question) error) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	working := cloneQuestion(current)
	if err := fn(&working); err != nil {
		return nil, err
	}
	working.ID = id
	working.UpdatedAt = r.clock()
	r.items[id] = cloneQuestion(working)
	return &working, nil
}

func (r *QuestionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *QuestionRepository) filter(keep func(model.Question) bool) []model.Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Question, 0, len(r.order))
	for _, id := range r.order {
		q := r.items[id]
		if keep(q) {
			out = append(out, cloneQuestion(q))
		}
	}
	return out
}

func cloneQuestion(q model.Question) model.Question {
	q.Alternatives = append(model.Alternatives{}, q.Alternatives...)
	q.SubjectIDs = append(model.IDList{}, q.SubjectIDs...)
	return q
}
