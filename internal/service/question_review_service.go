package service

import (
	"context"
	"fmt"

	"github.com/lshigami/quizbank/internal/dto"
	"github.com/lshigami/quizbank/internal/model"
	"github.com/lshigami/quizbank/internal/repository"
)

type QuestionReviewService interface {
	ReviewQuestion(ctx context.Context, id string) (*dto.QuestionReviewResponse, error)
}

type questionReviewService struct {
	repo repository.QuestionRepository
	llm  GeminiLLMService
}

func NewQuestionReviewService(repo repository.QuestionRepository, llm GeminiLLMService) QuestionReviewService {
	return &questionReviewService{repo: repo, llm: llm}
}

func (s *questionReviewService) ReviewQuestion(ctx context.Context, id string) (*dto.QuestionReviewResponse, error) {
	questionID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	question, err := s.repo.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuestionReviewResponse{
		QuestionID:       question.ID,
		AlternativeCount: len(question.Alternatives),
		CorrectCount:     question.Alternatives.CorrectCount(),
		Issues:           structuralIssues(question),
	}
	if s.llm == nil || !s.llm.Available() {
		return resp, nil
	}

	verdict, feedback, err := s.llm.ReviewQuestion(ctx, question)
	if err != nil {
		return nil, err
	}
	resp.AIAvailable = true
	resp.AIVerdict = verdict
	resp.AIFeedback = feedback
	return resp, nil
}

// structuralIssues lists problems detectable without a model. They are reported, never enforced.
func structuralIssues(q *model.Question) []string {
	issues := []string{}
	if q.Description == "" {
		issues = append(issues, "question has no description")
	}
	switch n := len(q.Alternatives); {
	case n == 0:
		issues = append(issues, "question has no alternatives")
	case n == 1:
		issues = append(issues, "question has a single alternative")
	}
	switch correct := q.Alternatives.CorrectCount(); {
	case correct == 0 && len(q.Alternatives) > 0:
		issues = append(issues, "no alternative is marked correct")
	case correct > 1:
		issues = append(issues, fmt.Sprintf("%d alternatives are marked correct", correct))
	}
	seen := make(map[string]bool, len(q.Alternatives))
	for _, alt := range q.Alternatives {
		if alt.Text == "" {
			continue
		}
		if seen[alt.Text] {
			issues = append(issues, fmt.Sprintf("duplicate alternative %q", alt.Text))
		}
		seen[alt.Text] = true
	}
	return issues
}
