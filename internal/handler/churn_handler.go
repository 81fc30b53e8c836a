package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/response"
	"partner-portal-api/internal/service"
)

// ChurnHandler handles partner churn endpoints
type ChurnHandler struct {
	churnService service.ChurnService
}

// NewChurnHandler creates a new instance of ChurnHandler
func NewChurnHandler(churnService service.ChurnService) *ChurnHandler {
	return &ChurnHandler{churnService: churnService}
}

// ProcessChurn godoc
// @Summary      Process a partner agency churn
// @Description  Records the churn event, redistributes the agency's projects to the
// @Description  remaining active agencies and deactivates the agency, atomically.
// @Description  affectedProjectIds must list exactly the projects the agency owns.
// @Tags         churns
// @Accept       json
// @Produce      json
// @Param        request body dto.ProcessChurnRequest true "Churn payload"
// @Success      201 {object} response.SuccessResponse{data=dto.ProcessChurnResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "Agency not found"
// @Failure      409 {object} response.ErrorResponse "Ownership mismatch or no redistribution target"
// @Router       /churns [post]
func (h *ChurnHandler) ProcessChurn(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var req dto.ProcessChurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.churnService.ProcessChurn(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// GetChurnEvent godoc
// @Summary      Get a churn event
// @Tags         churns
// @Produce      json
// @Param        churnEventId path string true "Churn event ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ChurnEventResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /churns/{churnEventId} [get]
func (h *ChurnHandler) GetChurnEvent(c *gin.Context) {
	churnEventID, err := uuid.Parse(c.Param("churnEventId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid churn event ID")
		return
	}

	event, err := h.churnService.GetChurnEvent(c.Request.Context(), churnEventID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, event)
}

// ListChurnEvents godoc
// @Summary      List churn events
// @Tags         churns
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.ChurnEventResponse}
// @Router       /churns [get]
func (h *ChurnHandler) ListChurnEvents(c *gin.Context) {
	events, err := h.churnService.ListChurnEvents(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, events)
}

// MarkClientNotified godoc
// @Summary      Mark a redistributed client as notified
// @Description  Flags one redistribution entry of a churn event as communicated
// @Description  to the client. Calling it again is a no-op.
// @Tags         churns
// @Produce      json
// @Param        churnEventId path string true "Churn event ID (UUID)"
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.RedistributionResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /churns/{churnEventId}/projects/{projectId}/notified [post]
func (h *ChurnHandler) MarkClientNotified(c *gin.Context) {
	churnEventID, err := uuid.Parse(c.Param("churnEventId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid churn event ID")
		return
	}
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	entry, err := h.churnService.MarkClientNotified(c.Request.Context(), churnEventID, projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entry)
}
