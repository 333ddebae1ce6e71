package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/quizbank/internal/dto"
	"github.com/lshigami/quizbank/internal/model"
	"github.com/lshigami/quizbank/internal/repository"
	"github.com/rs/zerolog/log"
)

type TestService interface {
	CreateTest(ctx context.Context, req dto.CreateTestRequest) (*dto.TestResponse, error)
	// GetTestByPasscode returns the test and the ids of the questions linked to it.
	// Questions are linked through their "test" field, which holds the test's title.
	GetTestByPasscode(ctx context.Context, passcode string) (*dto.TestLookupResponse, error)
}

type testService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
}

func NewTestService(testRepo repository.TestRepository, questionRepo repository.QuestionRepository) TestService {
	return &testService{testRepo: testRepo, questionRepo: questionRepo}
}

func (s *testService) CreateTest(ctx context.Context, req dto.CreateTestRequest) (*dto.TestResponse, error) {
	test := model.Test{
		Title:       req.Title,
		Description: req.Description,
		Passcode:    req.Passcode,
		QuestionIDs: model.IDList{},
	}
	if err := s.testRepo.Create(ctx, &test); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}
	return toTestResponse(&test)
}

func (s *testService) GetTestByPasscode(ctx context.Context, passcode string) (*dto.TestLookupResponse, error) {
	test, err := s.testRepo.FindByPasscode(ctx, passcode)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindByTestTitle(ctx, test.Title)
	if err != nil {
		log.Error().Err(err).Str("title", test.Title).Msg("Failed to load questions for test")
		return nil, fmt.Errorf("error fetching questions for test: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}

	testResp, err := toTestResponse(test)
	if err != nil {
		return nil, err
	}
	return &dto.TestLookupResponse{Test: *testResp, QuestionIDs: ids}, nil
}

func toTestResponse(test *model.Test) (*dto.TestResponse, error) {
	var resp dto.TestResponse
	if err := copier.Copy(&resp, test); err != nil {
		return nil, fmt.Errorf("error preparing test response: %w", err)
	}
	if resp.QuestionIDs == nil {
		resp.QuestionIDs = model.IDList{}
	}
	return &resp, nil
}
