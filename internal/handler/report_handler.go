package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/response"
	"partner-portal-api/internal/service"
)

// ReportHandler handles project report archive endpoints
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new instance of ReportHandler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateUploadURL godoc
// @Summary      Get a presigned upload URL for a report file
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.ReportUploadURLRequest true "File metadata"
// @Success      200 {object} response.SuccessResponse{data=dto.ReportUploadURLResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{projectId}/reports/upload-url [post]
func (h *ReportHandler) GenerateUploadURL(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	var req dto.ReportUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.reportService.GenerateUploadURL(c.Request.Context(), projectID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// CreateReport godoc
// @Summary      Register an uploaded report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.CreateReportRequest true "Report metadata"
// @Success      201 {object} response.SuccessResponse{data=dto.ReportResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{projectId}/reports [post]
func (h *ReportHandler) CreateReport(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), projectID, actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, report)
}

// ListReports godoc
// @Summary      List a project's reports
// @Tags         reports
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ReportResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{projectId}/reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	reports, err := h.reportService.ListReports(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, reports)
}

// DeleteReport godoc
// @Summary      Delete a report
// @Tags         reports
// @Produce      json
// @Param        reportId path string true "Report ID (UUID)"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /reports/{reportId} [delete]
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("reportId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid report ID")
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), reportID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
