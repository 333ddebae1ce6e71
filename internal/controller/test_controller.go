package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizbank/internal/dto"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
	"github.com/rs/zerolog/log"
)

// CreateTestHandler godoc
// @Summary Create a test
// @Description Creates a passcode-gated test with an empty question list
// @Tags tests
// @Accept json
// @Produce json
// @Param test body dto.CreateTestRequest true "Test data"
// @Success 201 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "Passcode already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [post]
func (ctrl *Controller) CreateTestHandler(c *gin.Context) {
	var req dto.CreateTestRequest
	if !bindJSON(c, &req, "CreateTestRequest") {
		return
	}

	test, err := ctrl.testSvc.CreateTest(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create test")
		return
	}
	c.JSON(http.StatusCreated, test)
}

// GetTestByPasscodeHandler godoc
// @Summary Get a test by passcode
// @Description Returns the test and the IDs of the questions whose test field matches its title
// @Tags tests
// @Produce json
// @Param passcode path string true "Test passcode"
// @Success 200 {object} dto.TestLookupResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 429 {object} object "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{passcode} [get]
func (ctrl *Controller) GetTestByPasscodeHandler(c *gin.Context) {
	test, err := ctrl.testSvc.GetTestByPasscode(c.Request.Context(), c.Param("passcode"))
	if errors.Is(err, apperrors.ErrNotFound) {
		log.Warn().Str("client_ip", c.ClientIP()).Msg("Test lookup with unknown passcode")
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "test not found"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to get test by passcode")
		return
	}
	c.JSON(http.StatusOK, test)
}
