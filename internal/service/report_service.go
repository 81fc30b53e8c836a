package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/repository"
	"partner-portal-api/internal/response"
)

// S3Client is the slice of the storage client the report service needs
type S3Client interface {
	GeneratePresignedURL(ctx context.Context, projectID, fileName, contentType string) (string, string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

// ReportService defines the interface for the project report archive
type ReportService interface {
	GenerateUploadURL(ctx context.Context, projectID uuid.UUID, req *dto.ReportUploadURLRequest) (*dto.ReportUploadURLResponse, error)
	CreateReport(ctx context.Context, projectID uuid.UUID, actor domain.Actor, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	ListReports(ctx context.Context, projectID uuid.UUID) ([]*dto.ReportResponse, error)
	DeleteReport(ctx context.Context, reportID uuid.UUID) error
}

// reportServiceImpl is the implementation of ReportService
type reportServiceImpl struct {
	reportRepo  repository.ReportRepository
	projectRepo repository.ProjectRepository
	s3Client    S3Client
	logger      *zap.Logger
}

// NewReportService creates a new instance of ReportService
func NewReportService(
	reportRepo repository.ReportRepository,
	projectRepo repository.ProjectRepository,
	s3Client S3Client,
	logger *zap.Logger,
) ReportService {
	return &reportServiceImpl{
		reportRepo:  reportRepo,
		projectRepo: projectRepo,
		s3Client:    s3Client,
		logger:      logger,
	}
}

// GenerateUploadURL hands out a presigned PUT URL for a report file
func (s *reportServiceImpl) GenerateUploadURL(ctx context.Context, projectID uuid.UUID, req *dto.ReportUploadURLRequest) (*dto.ReportUploadURLResponse, error) {
	if err := s.verifyProject(ctx, projectID); err != nil {
		return nil, err
	}

	uploadURL, fileKey, err := s.s3Client.GeneratePresignedURL(ctx, projectID.String(), req.FileName, req.ContentType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate upload URL", err.Error())
	}

	return &dto.ReportUploadURLResponse{
		UploadURL: uploadURL,
		FileKey:   fileKey,
	}, nil
}

// CreateReport registers an uploaded report file against a project
func (s *reportServiceImpl) CreateReport(ctx context.Context, projectID uuid.UUID, actor domain.Actor, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if err := s.verifyProject(ctx, projectID); err != nil {
		return nil, err
	}

	report := &domain.ProjectReport{
		ProjectID:   projectID,
		Title:       req.Title,
		FileKey:     req.FileKey,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
		UploadedBy:  actor.ID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create report", err.Error())
	}

	resp := s.toReportResponse(report)
	return &resp, nil
}

// ListReports returns a project's archived reports, newest first
func (s *reportServiceImpl) ListReports(ctx context.Context, projectID uuid.UUID) ([]*dto.ReportResponse, error) {
	if err := s.verifyProject(ctx, projectID); err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list reports", err.Error())
	}
	responses := make([]*dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		resp := s.toReportResponse(report)
		responses = append(responses, &resp)
	}
	return responses, nil
}

// DeleteReport removes a report record and its file
func (s *reportServiceImpl) DeleteReport(ctx context.Context, reportID uuid.UUID) error {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Report not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load report", err.Error())
	}

	if err := s.reportRepo.Delete(ctx, reportID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete report", err.Error())
	}

	// The record is gone either way; a stale S3 object is tolerable.
	if err := s.s3Client.DeleteFile(ctx, report.FileKey); err != nil {
		s.logger.Warn("failed to delete report file from storage",
			zap.String("report_id", reportID.String()),
			zap.String("file_key", report.FileKey),
			zap.Error(err))
	}
	return nil
}

func (s *reportServiceImpl) verifyProject(ctx context.Context, projectID uuid.UUID) error {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to verify project", err.Error())
	}
	return nil
}

func (s *reportServiceImpl) toReportResponse(report *domain.ProjectReport) dto.ReportResponse {
	return dto.ReportResponse{
		ID:          report.ID,
		ProjectID:   report.ProjectID,
		Title:       report.Title,
		FileURL:     s.s3Client.GetFileURL(report.FileKey),
		ContentType: report.ContentType,
		FileSize:    report.FileSize,
		UploadedBy:  report.UploadedBy,
		CreatedAt:   report.CreatedAt,
	}
}
