package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/response"
)

// RequestTransition godoc
// @Summary      Transition a project's status
// @Description  Moves the project to a new status along the lifecycle graph.
// @Description  The context must carry the target's required fields, e.g. loss_reason
// @Description  for "perdido" or overdue_days for "inadimplente". All validations run
// @Description  before any write; on rejection nothing changes.
// @Tags         transitions
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.TransitionRequest true "Transition payload"
// @Success      200 {object} response.SuccessResponse{data=dto.TransitionResponse}
// @Failure      400 {object} response.ErrorResponse "Malformed request or context values"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      409 {object} response.ErrorResponse "Illegal transition"
// @Failure      422 {object} response.ErrorResponse "Missing required context fields"
// @Router       /projects/{projectId}/transitions [post]
func (h *ProjectHandler) RequestTransition(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.lifecycleService.RequestTransition(c.Request.Context(), projectID, actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetAllowedTransitions godoc
// @Summary      List legal next statuses
// @Description  Returns the statuses reachable from the project's current status,
// @Description  each with its badge config and required context fields
// @Tags         transitions
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.AllowedTransitionsResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{projectId}/transitions [get]
func (h *ProjectHandler) GetAllowedTransitions(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	result, err := h.lifecycleService.GetAllowedTransitions(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
