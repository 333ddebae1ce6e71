package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/internal/model"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
)

// TestRepository mirrors the postgres unique index on passcode.
type TestRepository struct {
	clock func() time.Time

	mu         sync.RWMutex
	items      map[uuid.UUID]model.Test
	byPasscode map[string]uuid.UUID
}

func NewTestRepository() *TestRepository {
	return &TestRepository{
		clock:      time.Now,
		items:      make(map[uuid.UUID]model.Test),
		byPasscode: make(map[string]uuid.UUID),
	}
}

func (r *TestRepository) Create(_ context.Context, test *model.Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byPasscode[test.Passcode]; taken {
		return apperrors.ErrConflict
	}
	test.AssignID()
	if test.QuestionIDs == nil {
		test.QuestionIDs = model.IDList{}
	}
	now := r.clock()
	test.CreatedAt = now
	test.UpdatedAt = now
	r.items[test.ID] = cloneTest(*test)
	r.byPasscode[test.Passcode] = test.ID
	return nil
}

func (r *TestRepository) FindByPasscode(_ context.Context, passcode string) (*model.Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPasscode[passcode]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneTest(r.items[id])
	return &out, nil
}

func (r *TestRepository) RemoveQuestion(_ context.Context, questionID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var touched int64
	for id, t := range r.items {
		if !t.QuestionIDs.Contains(questionID) {
			continue
		}
		t.QuestionIDs = t.QuestionIDs.Without(questionID)
		t.UpdatedAt = r.clock()
		r.items[id] = t
		touched++
	}
	return touched, nil
}

func cloneTest(t model.Test) model.Test {
	t.QuestionIDs = append(model.IDList{}, t.QuestionIDs...)
	return t
}
