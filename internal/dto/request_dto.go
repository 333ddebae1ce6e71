package dto

type AlternativeRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

// CreateQuestionRequest is the body of POST /questions.
type CreateQuestionRequest struct {
	Description  string               `json:"description"`
	Alternatives []AlternativeRequest `json:"alternatives" binding:"omitempty,dive"`
	Test         string               `json:"test"`
	Subjects     []string             `json:"subjects" binding:"omitempty,dive,uuid"`
}

// UpdateQuestionRequest is the body of PUT /questions/:id. A nil field is left untouched.
type UpdateQuestionRequest struct {
	Description  *string              `json:"description"`
	Alternatives []AlternativeRequest `json:"alternatives" binding:"omitempty,dive"`
	Subjects     []string             `json:"subjects" binding:"omitempty,dive,uuid"`
	Test         *string              `json:"test"`
}

type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateTestRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Passcode    string `json:"passcode" binding:"required"`
}
