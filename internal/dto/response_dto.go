package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/internal/model"
)

// QuestionResponse is a question with its subject references left unresolved.
type QuestionResponse struct {
	ID           uuid.UUID          `json:"id"`
	Description  string             `json:"description"`
	Alternatives model.Alternatives `json:"alternatives"`
	SubjectIDs   model.IDList       `json:"subjects"`
	TestTitle    string             `json:"test,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// QuestionDetailResponse is a question with its subjects populated.
type QuestionDetailResponse struct {
	ID           uuid.UUID          `json:"id"`
	Description  string             `json:"description"`
	Alternatives model.Alternatives `json:"alternatives"`
	Subjects     []SubjectResponse  `json:"subjects"`
	TestTitle    string             `json:"test,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type SubjectResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type TestResponse struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Passcode    string       `json:"passcode"`
	QuestionIDs model.IDList `json:"questions"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TestLookupResponse is returned by GET /tests/:passcode.
type TestLookupResponse struct {
	Test        TestResponse `json:"test"`
	QuestionIDs []uuid.UUID  `json:"questionIds"`
}

// QuestionReviewResponse reports structural findings and, when available, the AI verdict.
type QuestionReviewResponse struct {
	QuestionID       uuid.UUID `json:"questionId"`
	AlternativeCount int       `json:"alternativeCount"`
	CorrectCount     int       `json:"correctCount"`
	Issues           []string  `json:"issues"`
	AIAvailable      bool      `json:"aiAvailable"`
	AIVerdict        string    `json:"aiVerdict,omitempty"`
	AIFeedback       string    `json:"aiFeedback,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
