package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizbank/internal/dto"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
	"github.com/rs/zerolog/log"
)

// GetAllQuestionsHandler godoc
// @Summary List questions
// @Description Retrieve every question. Subject references are returned as ids.
// @Tags questions
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [get]
func (ctrl *Controller) GetAllQuestionsHandler(c *gin.Context) {
	questions, err := ctrl.questionSvc.GetAllQuestions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get all questions")
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuestionHandler godoc
// @Summary Get a question by ID
// @Description Retrieve a question with its subjects resolved to full records
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionDetailResponse
// @Failure 404 {object} object "Empty object"
// @Failure 500 {object} dto.ErrorResponse "Malformed ID or internal server error"
// @Router /questions/{id} [get]
func (ctrl *Controller) GetQuestionHandler(c *gin.Context) {
	question, err := ctrl.questionSvc.GetQuestion(c.Request.Context(), c.Param("id"))
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to get question")
		return
	}
	c.JSON(http.StatusOK, question)
}

// CreateQuestionHandler godoc
// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [post]
func (ctrl *Controller) CreateQuestionHandler(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if !bindJSON(c, &req, "CreateQuestionRequest") {
		return
	}

	question, err := ctrl.questionSvc.CreateQuestion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create question")
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestionHandler godoc
// @Summary Update or create a question
// @Description Overwrites only the fields present in the body. An unknown ID creates the question under that ID when upserts are enabled.
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param question body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.QuestionResponse "Updated"
// @Success 201 {object} dto.QuestionResponse "Created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Question not found and upserts disabled"
// @Failure 500 {object} dto.ErrorResponse "Malformed ID or internal server error"
// @Router /questions/{id} [put]
func (ctrl *Controller) UpdateQuestionHandler(c *gin.Context) {
	var req dto.UpdateQuestionRequest
	if !bindJSON(c, &req, "UpdateQuestionRequest") {
		return
	}

	question, created, err := ctrl.questionSvc.UpsertQuestion(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update question")
		return
	}
	if created {
		log.Info().Str("questionID", question.ID.String()).Msg("Question created through upsert")
		c.JSON(http.StatusCreated, question)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestionHandler godoc
// @Summary Delete a question
// @Description Removes the question and drops its ID from every test that lists it
// @Tags questions
// @Param id path string true "Question ID"
// @Success 204 "No Content"
// @Failure 404 "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Malformed ID or internal server error"
// @Router /questions/{id} [delete]
func (ctrl *Controller) DeleteQuestionHandler(c *gin.Context) {
	err := ctrl.questionSvc.DeleteQuestion(c.Request.Context(), c.Param("id"))
	if errors.Is(err, apperrors.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		respondError(c, err, "Failed to delete question")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetQuestionsBySubjectHandler godoc
// @Summary List questions of a subject
// @Tags questions
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 500 {object} dto.ErrorResponse "Malformed ID or internal server error"
// @Router /question/subject/{id} [get]
func (ctrl *Controller) GetQuestionsBySubjectHandler(c *gin.Context) {
	questions, err := ctrl.questionSvc.GetQuestionsBySubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get questions by subject")
		return
	}
	c.JSON(http.StatusOK, questions)
}

// ReviewQuestionHandler godoc
// @Summary Review a question
// @Description Runs structural checks and, when Gemini is configured, asks the model for a verdict
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionReviewResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 502 {object} dto.ErrorResponse "AI review failed"
// @Failure 500 {object} dto.ErrorResponse "Malformed ID or internal server error"
// @Router /questions/{id}/review [post]
func (ctrl *Controller) ReviewQuestionHandler(c *gin.Context) {
	review, err := ctrl.reviewSvc.ReviewQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to review question")
		return
	}
	c.JSON(http.StatusOK, review)
}
