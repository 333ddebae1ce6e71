package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizbank/internal/dto"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
	"github.com/lshigami/quizbank/internal/service"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	questionSvc service.QuestionService
	subjectSvc  service.SubjectService
	testSvc     service.TestService
	reviewSvc   service.QuestionReviewService
}

func NewController(qSvc service.QuestionService, sSvc service.SubjectService, tSvc service.TestService, rSvc service.QuestionReviewService) *Controller {
	return &Controller{
		questionSvc: qSvc,
		subjectSvc:  sSvc,
		testSvc:     tSvc,
		reviewSvc:   rSvc,
	}
}

// RegisterRoutes mounts the API under /api/v1. passcodeMiddleware runs in front of the
// passcode lookup only.
func (ctrl *Controller) RegisterRoutes(router *gin.Engine, passcodeMiddleware ...gin.HandlerFunc) {
	router.GET("/healthz", ctrl.HealthHandler)

	apiV1 := router.Group("/api/v1")
	{
		questions := apiV1.Group("/questions")
		questions.GET("", ctrl.GetAllQuestionsHandler)
		questions.POST("", ctrl.CreateQuestionHandler)
		questions.GET("/:id", ctrl.GetQuestionHandler)
		questions.PUT("/:id", ctrl.UpdateQuestionHandler) // upsert
		questions.DELETE("/:id", ctrl.DeleteQuestionHandler)
		questions.POST("/:id/review", ctrl.ReviewQuestionHandler)

		apiV1.GET("/question/subject/:id", ctrl.GetQuestionsBySubjectHandler)

		subjects := apiV1.Group("/subject")
		subjects.POST("", ctrl.CreateSubjectHandler)
		subjects.GET("", ctrl.GetAllSubjectsHandler)

		tests := apiV1.Group("/tests")
		tests.POST("", ctrl.CreateTestHandler)
		lookup := append(append([]gin.HandlerFunc{}, passcodeMiddleware...), ctrl.GetTestByPasscodeHandler)
		tests.GET("/:passcode", lookup...)
	}
}

// HealthHandler answers the liveness check. It is mounted at the root, outside /api/v1.
func (ctrl *Controller) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// statusFor maps service errors onto HTTP statuses. Malformed identifiers stay a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrAIUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes {error} with the mapped status.
func respondError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	event := log.Error()
	if status < http.StatusInternalServerError {
		event = log.Warn()
	}
	event.Err(err).Str("path", c.FullPath()).Int("status", status).Msg(msg)
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func bindJSON(c *gin.Context, req any, name string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Msgf("Failed to bind %s", name)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}
