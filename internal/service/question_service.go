package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/quizbank/config"
	"github.com/lshigami/quizbank/internal/dto"
	"github.com/lshigami/quizbank/internal/model"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
	"github.com/lshigami/quizbank/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	GetAllQuestions(ctx context.Context) ([]dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionDetailResponse, error)
	GetQuestionsBySubject(ctx context.Context, subjectID string) ([]dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	// UpsertQuestion applies a partial update. When the id is unknown and upserts are
	// enabled it creates the question under that id and reports created=true.
	UpsertQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (resp *dto.QuestionResponse, created bool, err error)
	DeleteQuestion(ctx context.Context, id string) error
}

type questionService struct {
	repo           repository.QuestionRepository
	subjectRepo    repository.SubjectRepository
	testRepo       repository.TestRepository
	upsertOnUpdate bool
}

func NewQuestionService(repo repository.QuestionRepository, subjectRepo repository.SubjectRepository, testRepo repository.TestRepository, cfg *config.Config) QuestionService {
	return &questionService{
		repo:           repo,
		subjectRepo:    subjectRepo,
		testRepo:       testRepo,
		upsertOnUpdate: cfg.Quiz.UpsertOnUpdate,
	}
}

func (s *questionService) GetAllQuestions(ctx context.Context) ([]dto.QuestionResponse, error) {
	questions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	return toQuestionResponses(questions)
}

func (s *questionService) GetQuestion(ctx context.Context, id string) (*dto.QuestionDetailResponse, error) {
	questionID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	question, err := s.repo.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	subjects, err := s.subjectRepo.FindByIDs(ctx, question.SubjectIDs)
	if err != nil {
		return nil, fmt.Errorf("error populating subjects for question %s: %w", questionID, err)
	}

	var resp dto.QuestionDetailResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	if resp.Alternatives == nil {
		resp.Alternatives = model.Alternatives{}
	}
	resp.Subjects, err = toSubjectResponses(subjects)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *questionService) GetQuestionsBySubject(ctx context.Context, subjectID string) ([]dto.QuestionResponse, error) {
	id, err := parseID(subjectID)
	if err != nil {
		return nil, err
	}
	questions, err := s.repo.FindBySubject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions for subject %s: %w", id, err)
	}
	return toQuestionResponses(questions)
}

func (s *questionService) CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	subjectIDs, err := parseIDList(req.Subjects)
	if err != nil {
		return nil, err
	}
	question := model.Question{
		Description:  req.Description,
		Alternatives: toAlternatives(req.Alternatives),
		SubjectIDs:   subjectIDs,
		TestTitle:    req.Test,
	}
	if err := s.repo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Msg("Failed to create question in service")
		return nil, fmt.Errorf("error creating question: %w", err)
	}
	return toQuestionResponse(&question)
}

func (s *questionService) UpsertQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, bool, error) {
	questionID, err := parseID(id)
	if err != nil {
		return nil, false, err
	}
	var subjectIDs model.IDList
	if req.Subjects != nil {
		if subjectIDs, err = parseIDList(req.Subjects); err != nil {
			return nil, false, err
		}
	}

	apply := func(q *model.Question) error {
		if req.Description != nil {
			q.Description = *req.Description
		}
		if req.Alternatives != nil {
			q.Alternatives = toAlternatives(req.Alternatives)
		}
		if req.Subjects != nil {
			q.SubjectIDs = subjectIDs
		}
		if req.Test != nil {
			q.TestTitle = *req.Test
		}
		return nil
	}

	updated, err := s.repo.Mutate(ctx, questionID, apply)
	if err == nil {
		resp, err := toQuestionResponse(updated)
		return resp, false, err
	}
	if !errors.Is(err, apperrors.ErrNotFound) || !s.upsertOnUpdate {
		return nil, false, err
	}

	question := model.Question{ID: questionID, Alternatives: model.Alternatives{}, SubjectIDs: model.IDList{}}
	_ = apply(&question)
	err = s.repo.Create(ctx, &question)
	if errors.Is(err, apperrors.ErrConflict) {
		// Lost a race with a concurrent upsert of the same id; update the winner instead.
		log.Warn().Str("questionID", questionID.String()).Msg("Concurrent upsert detected, retrying as update")
		updated, err = s.repo.Mutate(ctx, questionID, apply)
		if err != nil {
			return nil, false, err
		}
		resp, err := toQuestionResponse(updated)
		return resp, false, err
	}
	if err != nil {
		log.Error().Err(err).Str("questionID", questionID.String()).Msg("Failed to upsert question")
		return nil, false, fmt.Errorf("error creating question: %w", err)
	}
	resp, err := toQuestionResponse(&question)
	return resp, true, err
}

func (s *questionService) DeleteQuestion(ctx context.Context, id string) error {
	questionID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, questionID); err != nil {
		return err
	}

	touched, err := s.testRepo.RemoveQuestion(ctx, questionID)
	if err != nil {
		log.Error().Err(err).Str("questionID", questionID.String()).Msg("Question deleted but test references were not cleaned")
		return nil
	}
	if touched > 0 {
		log.Info().Str("questionID", questionID.String()).Int64("tests", touched).Msg("Removed deleted question from tests")
	}
	return nil
}

func toAlternatives(reqs []dto.AlternativeRequest) model.Alternatives {
	alts := make(model.Alternatives, 0, len(reqs))
	for _, r := range reqs {
		alts = append(alts, model.Alternative{Text: r.Text, IsCorrect: r.IsCorrect})
	}
	return alts
}

func toQuestionResponse(q *model.Question) (*dto.QuestionResponse, error) {
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, q); err != nil {
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	if resp.Alternatives == nil {
		resp.Alternatives = model.Alternatives{}
	}
	if resp.SubjectIDs == nil {
		resp.SubjectIDs = model.IDList{}
	}
	return &resp, nil
}

func toQuestionResponses(questions []model.Question) ([]dto.QuestionResponse, error) {
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		r, err := toQuestionResponse(&questions[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *r)
	}
	return resp, nil
}
