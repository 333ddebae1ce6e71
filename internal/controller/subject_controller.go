package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizbank/internal/dto"
)

// CreateSubjectHandler godoc
// @Summary Create a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param subject body dto.CreateSubjectRequest true "Subject data"
// @Success 201 {object} dto.SubjectResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subject [post]
func (ctrl *Controller) CreateSubjectHandler(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(c, &req, "CreateSubjectRequest") {
		return
	}

	subject, err := ctrl.subjectSvc.CreateSubject(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create subject")
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// GetAllSubjectsHandler godoc
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Success 200 {array} dto.SubjectResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subject [get]
func (ctrl *Controller) GetAllSubjectsHandler(c *gin.Context) {
	subjects, err := ctrl.subjectSvc.GetAllSubjects(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get all subjects")
		return
	}
	c.JSON(http.StatusOK, subjects)
}
