package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/response"
	"partner-portal-api/internal/service"
)

// ProjectHandler handles premium project endpoints
type ProjectHandler struct {
	projectService   service.ProjectService
	lifecycleService service.LifecycleService
}

// NewProjectHandler creates a new instance of ProjectHandler
func NewProjectHandler(projectService service.ProjectService, lifecycleService service.LifecycleService) *ProjectHandler {
	return &ProjectHandler{
		projectService:   projectService,
		lifecycleService: lifecycleService,
	}
}

// CreateProject godoc
// @Summary      Register a premium project
// @Description  Creates a premium project in the initial status "elaborado" and seeds its audit history
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProjectRequest true "Project payload"
// @Success      201 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "Partner agency not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, project)
}

// GetProject godoc
// @Summary      Get a premium project
// @Description  Returns one project with its full audit history
// @Tags         projects
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectDetailResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{projectId} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, project)
}

// ListProjects godoc
// @Summary      List premium projects
// @Description  Lists projects, optionally filtered by status and/or partner agency
// @Tags         projects
// @Produce      json
// @Param        status query string false "Status filter"
// @Param        agencyId query string false "Partner agency filter (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ProjectResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	filters := &dto.ProjectFilters{}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ProjectStatus(statusStr)
		if !status.IsValid() {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Unknown status filter")
			return
		}
		filters.Status = &status
	}
	if agencyIDStr := c.Query("agencyId"); agencyIDStr != "" {
		agencyID, err := uuid.Parse(agencyIDStr)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid agency ID")
			return
		}
		filters.AgencyID = &agencyID
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, projects)
}

// GetPortfolioSummary godoc
// @Summary      Portfolio rollup per status
// @Tags         projects
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.PortfolioSummaryResponse}
// @Router       /projects/summary [get]
func (h *ProjectHandler) GetPortfolioSummary(c *gin.Context) {
	summary, err := h.projectService.GetPortfolioSummary(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, summary)
}
