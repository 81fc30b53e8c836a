package service

import (
	"context"

	"github.com/google/uuid"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/repository"
)

// MockProjectRepository is a mock implementation of repository.ProjectRepository
type MockProjectRepository struct {
	CreateFunc              func(ctx context.Context, project *domain.PremiumProject) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error)
	FindByIDWithHistoryFunc func(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error)
	FindAllFunc             func(ctx context.Context, filters repository.ProjectFilters) ([]*domain.PremiumProject, error)
	FindByAgencyIDFunc      func(ctx context.Context, agencyID uuid.UUID) ([]*domain.PremiumProject, error)
	UpdateFunc              func(ctx context.Context, project *domain.PremiumProject) error
	CommitTransitionFunc    func(ctx context.Context, project *domain.PremiumProject, from domain.ProjectStatus, entry *domain.ProjectHistory) error
	SummarizeByStatusFunc   func(ctx context.Context) ([]repository.StatusAggregate, error)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.PremiumProject) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindByIDWithHistory(ctx context.Context, id uuid.UUID) (*domain.PremiumProject, error) {
	if m.FindByIDWithHistoryFunc != nil {
		return m.FindByIDWithHistoryFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filters repository.ProjectFilters) ([]*domain.PremiumProject, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filters)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindByAgencyID(ctx context.Context, agencyID uuid.UUID) ([]*domain.PremiumProject, error) {
	if m.FindByAgencyIDFunc != nil {
		return m.FindByAgencyIDFunc(ctx, agencyID)
	}
	return nil, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.PremiumProject) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) CommitTransition(ctx context.Context, project *domain.PremiumProject, from domain.ProjectStatus, entry *domain.ProjectHistory) error {
	if m.CommitTransitionFunc != nil {
		return m.CommitTransitionFunc(ctx, project, from, entry)
	}
	return nil
}

func (m *MockProjectRepository) SummarizeByStatus(ctx context.Context) ([]repository.StatusAggregate, error) {
	if m.SummarizeByStatusFunc != nil {
		return m.SummarizeByStatusFunc(ctx)
	}
	return nil, nil
}

// MockAgencyRepository is a mock implementation of repository.AgencyRepository
type MockAgencyRepository struct {
	CreateFunc           func(ctx context.Context, agency *domain.PartnerAgency) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.PartnerAgency, error)
	FindAllFunc          func(ctx context.Context) ([]*domain.PartnerAgency, error)
	FindActiveExceptFunc func(ctx context.Context, excludeID uuid.UUID) ([]*domain.PartnerAgency, error)
	UpdateFunc           func(ctx context.Context, agency *domain.PartnerAgency) error
	UpdateRatingFunc     func(ctx context.Context, id uuid.UUID, rating float64) error
	CountActiveFunc      func(ctx context.Context) (int64, error)
}

func (m *MockAgencyRepository) Create(ctx context.Context, agency *domain.PartnerAgency) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, agency)
	}
	return nil
}

func (m *MockAgencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.PartnerAgency, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAgencyRepository) FindAll(ctx context.Context) ([]*domain.PartnerAgency, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockAgencyRepository) FindActiveExcept(ctx context.Context, excludeID uuid.UUID) ([]*domain.PartnerAgency, error) {
	if m.FindActiveExceptFunc != nil {
		return m.FindActiveExceptFunc(ctx, excludeID)
	}
	return nil, nil
}

func (m *MockAgencyRepository) Update(ctx context.Context, agency *domain.PartnerAgency) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, agency)
	}
	return nil
}

func (m *MockAgencyRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	if m.UpdateRatingFunc != nil {
		return m.UpdateRatingFunc(ctx, id, rating)
	}
	return nil
}

func (m *MockAgencyRepository) CountActive(ctx context.Context) (int64, error) {
	if m.CountActiveFunc != nil {
		return m.CountActiveFunc(ctx)
	}
	return 0, nil
}

// MockHistoryRepository is a mock implementation of repository.HistoryRepository
type MockHistoryRepository struct {
	CreateFunc          func(ctx context.Context, entry *domain.ProjectHistory) error
	FindByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectHistory, error)
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *domain.ProjectHistory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *MockHistoryRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectHistory, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

// MockChurnRepository is a mock implementation of repository.ChurnRepository
type MockChurnRepository struct {
	CommitChurnFunc        func(ctx context.Context, event *domain.ChurnEvent, reassignments []repository.ProjectReassignment) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.ChurnEvent, error)
	FindAllFunc            func(ctx context.Context) ([]*domain.ChurnEvent, error)
	MarkClientNotifiedFunc func(ctx context.Context, churnEventID, projectID uuid.UUID) (*domain.ProjectRedistribution, error)
	FindUnnotifiedFunc     func(ctx context.Context, limit int) ([]*domain.ProjectRedistribution, error)
}

func (m *MockChurnRepository) CommitChurn(ctx context.Context, event *domain.ChurnEvent, reassignments []repository.ProjectReassignment) error {
	if m.CommitChurnFunc != nil {
		return m.CommitChurnFunc(ctx, event, reassignments)
	}
	return nil
}

func (m *MockChurnRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChurnEvent, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockChurnRepository) FindAll(ctx context.Context) ([]*domain.ChurnEvent, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockChurnRepository) MarkClientNotified(ctx context.Context, churnEventID, projectID uuid.UUID) (*domain.ProjectRedistribution, error) {
	if m.MarkClientNotifiedFunc != nil {
		return m.MarkClientNotifiedFunc(ctx, churnEventID, projectID)
	}
	return nil, nil
}

func (m *MockChurnRepository) FindUnnotified(ctx context.Context, limit int) ([]*domain.ProjectRedistribution, error) {
	if m.FindUnnotifiedFunc != nil {
		return m.FindUnnotifiedFunc(ctx, limit)
	}
	return nil, nil
}

// MockReportRepository is a mock implementation of repository.ReportRepository
type MockReportRepository struct {
	CreateFunc          func(ctx context.Context, report *domain.ProjectReport) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.ProjectReport, error)
	FindByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectReport, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
}

func (m *MockReportRepository) Create(ctx context.Context, report *domain.ProjectReport) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report)
	}
	return nil
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProjectReport, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReportRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectReport, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockS3Client is a mock implementation of S3Client
type MockS3Client struct {
	GeneratePresignedURLFunc func(ctx context.Context, projectID, fileName, contentType string) (string, string, error)
	DeleteFileFunc           func(ctx context.Context, key string) error
	GetFileURLFunc           func(key string) string
}

func (m *MockS3Client) GeneratePresignedURL(ctx context.Context, projectID, fileName, contentType string) (string, string, error) {
	if m.GeneratePresignedURLFunc != nil {
		return m.GeneratePresignedURLFunc(ctx, projectID, fileName, contentType)
	}
	return "https://example.com/upload", "reports/key", nil
}

func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	return nil
}

func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	return "https://example.com/" + key
}
