package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/config"
	"github.com/lshigami/quizbank/internal/dto"
	"github.com/lshigami/quizbank/internal/model"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
	"github.com/lshigami/quizbank/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionFixture struct {
	questions *memory.QuestionRepository
	subjects  *memory.SubjectRepository
	tests     *memory.TestRepository
	svc       QuestionService
}

func newQuestionFixture(upsert bool) questionFixture {
	cfg := &config.Config{Quiz: config.Quiz{UpsertOnUpdate: upsert}}
	f := questionFixture{
		questions: memory.NewQuestionRepository(),
		subjects:  memory.NewSubjectRepository(),
		tests:     memory.NewTestRepository(),
	}
	f.svc = NewQuestionService(f.questions, f.subjects, f.tests, cfg)
	return f
}

func strPtr(s string) *string { return &s }

func sampleCreateRequest() dto.CreateQuestionRequest {
	return dto.CreateQuestionRequest{
		Description: "What is 2 + 2?",
		Alternatives: []dto.AlternativeRequest{
			{Text: "3"},
			{Text: "4", IsCorrect: true},
		},
	}
}

func TestQuestionService_CreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(true)

	created, err := f.svc.CreateQuestion(ctx, sampleCreateRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotNil(t, created.SubjectIDs)

	got, err := f.svc.GetQuestion(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "What is 2 + 2?", got.Description)
	assert.Equal(t, model.Alternatives{{Text: "3"}, {Text: "4", IsCorrect: true}}, got.Alternatives)
	assert.Empty(t, got.Subjects)
}

func TestQuestionService_GetPopulatesSubjects(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(true)
	math := &model.Subject{Name: "Math"}
	require.NoError(t, f.subjects.Create(ctx, math))

	req := sampleCreateRequest()
	req.Subjects = []string{math.ID.String()}
	created, err := f.svc.CreateQuestion(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, model.IDList{math.ID}, created.SubjectIDs)

	got, err := f.svc.GetQuestion(ctx, created.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Subjects, 1)
	assert.Equal(t, "Math", got.Subjects[0].Name)
	assert.Equal(t, math.ID, got.Subjects[0].ID)

	list, err := f.svc.GetAllQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.IDList{math.ID}, list[0].SubjectIDs, "list keeps references unresolved")
}

func TestQuestionService_GetErrors(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(true)

	_, err := f.svc.GetQuestion(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.svc.GetQuestion(ctx, "not-an-id")
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestQuestionService_PartialUpdateKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(true)
	subjectID := uuid.New()

	req := sampleCreateRequest()
	req.Subjects = []string{subjectID.String()}
	created, err := f.svc.CreateQuestion(ctx, req)
	require.NoError(t, err)

	updated, createdNew, err := f.svc.UpsertQuestion(ctx, created.ID.String(), dto.UpdateQuestionRequest{
		Description: strPtr("X"),
	})
	require.NoError(t, err)
	assert.False(t, createdNew)
	assert.Equal(t, "X", updated.Description)
	assert.Equal(t, created.Alternatives, updated.Alternatives)
	assert.Equal(t, model.IDList{subjectID}, updated.SubjectIDs)
}

func TestQuestionService_UpdateReplacesPresentFields(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(true)
	created, err := f.svc.CreateQuestion(ctx, sampleCreateRequest())
	require.NoError(t, err)
	newSubject := uuid.New()

	updated, _, err := f.svc.UpsertQuestion(ctx, created.ID.String(), dto.UpdateQuestionRequest{
		Alternatives: []dto.AlternativeRequest{{Text: "four", IsCorrect: true}},
		Subjects:     []string{newSubject.String()},
		Test:         strPtr("Arithmetic"),
	})
	require.NoError(t, err)
	assert.Equal(t, "What is 2 + 2?", updated.Description)
	assert.Equal(t, model.Alternatives{{Text: "four", IsCorrect: true}}, updated.Alternatives)
	assert.Equal(t, model.IDList{newSubject}, updated.SubjectIDs)
	assert.Equal(t, "Arithmetic", updated.TestTitle)
}

func TestQuestionService_UpsertCreatesUnderPathID(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(true)
	id := uuid.New()

	resp, created, err := f.svc.UpsertQuestion(ctx, id.String(), dto.UpdateQuestionRequest{
		Description: strPtr("fresh"),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, id, resp.ID)
	assert.NotNil(t, resp.Alternatives)

	stored, err := f.questions.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "fresh", stored.Description)
}

func TestQuestionService_UpsertDisabled(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(false)

	_, _, err := f.svc.UpsertQuestion(ctx, uuid.NewString(), dto.UpdateQuestionRequest{Description: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionService_UpsertRejectsBadSubjectIDs(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(true)

	_, _, err := f.svc.UpsertQuestion(ctx, uuid.NewString(), dto.UpdateQuestionRequest{Subjects: []string{"nope"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestQuestionService_DeleteCleansTestReferences(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(true)
	created, err := f.svc.CreateQuestion(ctx, sampleCreateRequest())
	require.NoError(t, err)
	require.NoError(t, f.tests.Create(ctx, &model.Test{Title: "Arithmetic", Passcode: "ABC123", QuestionIDs: model.IDList{created.ID}}))

	require.NoError(t, f.svc.DeleteQuestion(ctx, created.ID.String()))
	assert.ErrorIs(t, f.svc.DeleteQuestion(ctx, created.ID.String()), apperrors.ErrNotFound)

	test, err := f.tests.FindByPasscode(ctx, "ABC123")
	require.NoError(t, err)
	assert.Empty(t, test.QuestionIDs)
}

func TestQuestionService_GetQuestionsBySubject(t *testing.T) {
	ctx := context.Background()
	f := newQuestionFixture(true)
	subjectID := uuid.New()

	req := sampleCreateRequest()
	req.Subjects = []string{subjectID.String()}
	_, err := f.svc.CreateQuestion(ctx, req)
	require.NoError(t, err)
	_, err = f.svc.CreateQuestion(ctx, sampleCreateRequest())
	require.NoError(t, err)

	matched, err := f.svc.GetQuestionsBySubject(ctx, subjectID.String())
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	empty, err := f.svc.GetQuestionsBySubject(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

// racingQuestionRepository lets another writer create the question right after the
// first Mutate reports it missing.
type racingQuestionRepository struct {
	*memory.QuestionRepository
	winner  model.Question
	mutates int
}

func (r *racingQuestionRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(*model.Question) error) (*model.Question, error) {
	r.mutates++
	q, err := r.QuestionRepository.Mutate(ctx, id, fn)
	if r.mutates == 1 && errors.Is(err, apperrors.ErrNotFound) {
		winner := r.winner
		if createErr := r.QuestionRepository.Create(ctx, &winner); createErr != nil {
			return nil, createErr
		}
	}
	return q, err
}

func TestQuestionService_UpsertLosingRaceUpdatesWinner(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := &racingQuestionRepository{
		QuestionRepository: memory.NewQuestionRepository(),
		winner: model.Question{
			ID:           id,
			Description:  "from the other writer",
			Alternatives: model.Alternatives{{Text: "kept", IsCorrect: true}},
			SubjectIDs:   model.IDList{},
		},
	}
	cfg := &config.Config{Quiz: config.Quiz{UpsertOnUpdate: true}}
	svc := NewQuestionService(repo, memory.NewSubjectRepository(), memory.NewTestRepository(), cfg)

	resp, created, err := svc.UpsertQuestion(ctx, id.String(), dto.UpdateQuestionRequest{Description: strPtr("mine")})
	require.NoError(t, err)
	assert.False(t, created, "losing create must be reported as an update")
	assert.Equal(t, 2, repo.mutates)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "mine", resp.Description)
	assert.Equal(t, model.Alternatives{{Text: "kept", IsCorrect: true}}, resp.Alternatives)

	stored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "mine", stored.Description)
}
