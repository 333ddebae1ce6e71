package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/quizbank/internal/dto"
	"github.com/lshigami/quizbank/internal/model"
	"github.com/lshigami/quizbank/internal/repository"
	"github.com/rs/zerolog/log"
)

type SubjectService interface {
	CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetAllSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
}

type subjectService struct {
	repo repository.SubjectRepository
}

func NewSubjectService(repo repository.SubjectRepository) SubjectService {
	return &subjectService{repo: repo}
}

func (s *subjectService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subject := model.Subject{Name: req.Name}
	if err := s.repo.Create(ctx, &subject); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create subject")
		return nil, fmt.Errorf("error creating subject: %w", err)
	}
	var resp dto.SubjectResponse
	if err := copier.Copy(&resp, &subject); err != nil {
		return nil, fmt.Errorf("error preparing subject response: %w", err)
	}
	return &resp, nil
}

func (s *subjectService) GetAllSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching subjects: %w", err)
	}
	return toSubjectResponses(subjects)
}

func toSubjectResponses(subjects []model.Subject) ([]dto.SubjectResponse, error) {
	resp := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		var r dto.SubjectResponse
		if err := copier.Copy(&r, &subjects[i]); err != nil {
			return nil, fmt.Errorf("error preparing subject response: %w", err)
		}
		resp = append(resp, r)
	}
	return resp, nil
}
