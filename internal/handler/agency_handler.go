package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/response"
	"partner-portal-api/internal/service"
)

// AgencyHandler handles partner agency endpoints
type AgencyHandler struct {
	agencyService service.AgencyService
}

// NewAgencyHandler creates a new instance of AgencyHandler
func NewAgencyHandler(agencyService service.AgencyService) *AgencyHandler {
	return &AgencyHandler{agencyService: agencyService}
}

// CreateAgency godoc
// @Summary      Sign on a partner agency
// @Tags         agencies
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateAgencyRequest true "Agency payload"
// @Success      201 {object} response.SuccessResponse{data=dto.AgencyResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /agencies [post]
func (h *AgencyHandler) CreateAgency(c *gin.Context) {
	var req dto.CreateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	agency, err := h.agencyService.CreateAgency(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, agency)
}

// GetAgency godoc
// @Summary      Get a partner agency
// @Tags         agencies
// @Produce      json
// @Param        agencyId path string true "Agency ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.AgencyResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /agencies/{agencyId} [get]
func (h *AgencyHandler) GetAgency(c *gin.Context) {
	agencyID, err := uuid.Parse(c.Param("agencyId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid agency ID")
		return
	}

	agency, err := h.agencyService.GetAgency(c.Request.Context(), agencyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, agency)
}

// ListAgencies godoc
// @Summary      List partner agencies
// @Description  Returns the full roster, churned agencies included
// @Tags         agencies
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.AgencyResponse}
// @Router       /agencies [get]
func (h *AgencyHandler) ListAgencies(c *gin.Context) {
	agencies, err := h.agencyService.ListAgencies(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, agencies)
}

// UpdateRating godoc
// @Summary      Update an agency's satisfaction rating
// @Tags         agencies
// @Accept       json
// @Produce      json
// @Param        agencyId path string true "Agency ID (UUID)"
// @Param        request body dto.UpdateAgencyRatingRequest true "Rating payload"
// @Success      200 {object} response.SuccessResponse{data=dto.AgencyResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /agencies/{agencyId}/rating [put]
func (h *AgencyHandler) UpdateRating(c *gin.Context) {
	agencyID, err := uuid.Parse(c.Param("agencyId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid agency ID")
		return
	}

	var req dto.UpdateAgencyRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	agency, err := h.agencyService.UpdateRating(c.Request.Context(), agencyID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, agency)
}

// GetAgencyProjects godoc
// @Summary      List an agency's projects
// @Tags         agencies
// @Produce      json
// @Param        agencyId path string true "Agency ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ProjectResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /agencies/{agencyId}/projects [get]
func (h *AgencyHandler) GetAgencyProjects(c *gin.Context) {
	agencyID, err := uuid.Parse(c.Param("agencyId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid agency ID")
		return
	}

	projects, err := h.agencyService.GetAgencyProjects(c.Request.Context(), agencyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, projects)
}
