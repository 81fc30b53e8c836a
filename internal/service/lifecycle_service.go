package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/dto"
	"partner-portal-api/internal/metrics"
	"partner-portal-api/internal/repository"
	"partner-portal-api/internal/response"
)

// LifecycleService defines the interface for project status transitions
type LifecycleService interface {
	RequestTransition(ctx context.Context, projectID uuid.UUID, actor domain.Actor, req *dto.TransitionRequest) (*dto.TransitionResponse, error)
	GetAllowedTransitions(ctx context.Context, projectID uuid.UUID) (*dto.AllowedTransitionsResponse, error)
}

// lifecycleServiceImpl is the implementation of LifecycleService
type lifecycleServiceImpl struct {
	projectRepo repository.ProjectRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewLifecycleService creates a new instance of LifecycleService
func NewLifecycleService(projectRepo repository.ProjectRepository, m *metrics.Metrics, logger *zap.Logger) LifecycleService {
	return &lifecycleServiceImpl{
		projectRepo: projectRepo,
		metrics:     m,
		logger:      logger,
	}
}

// RequestTransition validates and commits a status transition. All
// validations run before any write; a rejected transition leaves the
// project and its history untouched.
func (s *lifecycleServiceImpl) RequestTransition(ctx context.Context, projectID uuid.UUID, actor domain.Actor, req *dto.TransitionRequest) (*dto.TransitionResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
	}

	from := project.Status
	target := req.TargetStatus

	if !target.IsValid() {
		s.rejectTransition("unknown_status")
		return nil, response.NewAppError(response.ErrCodeValidation,
			"Unknown target status", string(target))
	}

	if from.IsTerminal() {
		s.rejectTransition("terminal_status")
		return nil, response.NewAppError(response.ErrCodeInvalidTransition,
			fmt.Sprintf("Status %s is terminal and admits no transitions", from), "")
	}

	if !domain.CanTransition(from, target) {
		s.rejectTransition("illegal_transition")
		return nil, response.NewAppError(response.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot transition from %s to %s", from, target),
			"Allowed: "+joinStatuses(domain.AllowedTransitions(from)))
	}

	if missing := domain.MissingContextFields(target, req.Context); len(missing) > 0 {
		s.rejectTransition("missing_fields")
		return nil, response.NewAppError(response.ErrCodeMissingRequiredFields,
			fmt.Sprintf("Transition to %s requires context fields", target),
			strings.Join(missing, ", "))
	}

	if err := s.validateContextValues(target, req.Context); err != nil {
		s.rejectTransition("invalid_context")
		return nil, err
	}

	// start_date becomes the project's own start date once it goes active
	if target == domain.StatusAtivo {
		startDate, err := parseContextDate(req.Context["start_date"])
		if err != nil {
			s.rejectTransition("invalid_context")
			return nil, response.NewAppError(response.ErrCodeValidation,
				"start_date must be an ISO date", req.Context["start_date"])
		}
		project.StartDate = &startDate
	}

	metadata, err := transitionMetadata(from, target, req)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode transition metadata", err.Error())
	}

	entry := &domain.ProjectHistory{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		Action:      domain.ActionStatusChange,
		Description: fmt.Sprintf("Status changed from %s to %s", from, target),
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		ActorRole:   actor.Role,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}

	project.Status = target
	if err := s.projectRepo.CommitTransition(ctx, project, from, entry); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			s.rejectTransition("status_conflict")
			return nil, response.NewAppError(response.ErrCodeInvalidTransition,
				"Project status changed concurrently, reload and retry", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to commit transition", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTransition(string(from), string(target))
	}
	s.logger.Info("project status transition committed",
		zap.String("project_id", project.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
		zap.String("actor_id", actor.ID.String()))

	return &dto.TransitionResponse{
		Project:      toProjectResponse(project),
		HistoryEntry: toHistoryResponse(entry),
	}, nil
}

// GetAllowedTransitions lists the statuses directly reachable from the
// project's current status together with their required context fields.
func (s *lifecycleServiceImpl) GetAllowedTransitions(ctx context.Context, projectID uuid.UUID) (*dto.AllowedTransitionsResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
	}

	allowed := domain.AllowedTransitions(project.Status)
	options := make([]dto.TransitionOption, 0, len(allowed))
	for _, status := range allowed {
		config := domain.StatusConfigs[status]
		required := domain.RequiredContextFields[status]
		fields := make([]string, len(required))
		copy(fields, required)
		options = append(options, dto.TransitionOption{
			Status:         status,
			Label:          config.Label,
			Color:          config.Color,
			Icon:           config.Icon,
			RequiredFields: fields,
		})
	}

	return &dto.AllowedTransitionsResponse{
		CurrentStatus: project.Status,
		Terminal:      project.Status.IsTerminal(),
		Options:       options,
	}, nil
}

// validateContextValues checks value formats beyond mere presence.
func (s *lifecycleServiceImpl) validateContextValues(target domain.ProjectStatus, context map[string]string) error {
	switch target {
	case domain.StatusPerdido:
		if !domain.LossReasons[context["loss_reason"]] {
			return response.NewAppError(response.ErrCodeValidation,
				"loss_reason must be one of price, timeline, competitor, budget, scope, other",
				context["loss_reason"])
		}
	case domain.StatusInadimplente:
		days, err := strconv.Atoi(context["overdue_days"])
		if err != nil || days <= 0 {
			return response.NewAppError(response.ErrCodeValidation,
				"overdue_days must be a positive integer", context["overdue_days"])
		}
	case domain.StatusAguardandoPagamento:
		if _, err := parseContextDate(context["payment_due_date"]); err != nil {
			return response.NewAppError(response.ErrCodeValidation,
				"payment_due_date must be an ISO date", context["payment_due_date"])
		}
	case domain.StatusConcluido:
		if _, err := parseContextDate(context["completion_date"]); err != nil {
			return response.NewAppError(response.ErrCodeValidation,
				"completion_date must be an ISO date", context["completion_date"])
		}
	}
	return nil
}

func (s *lifecycleServiceImpl) rejectTransition(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementTransitionRejected(reason)
	}
}

// transitionMetadata folds the from/to pair, the supplied context and
// the optional notes into the history entry's metadata document.
func transitionMetadata(from, to domain.ProjectStatus, req *dto.TransitionRequest) ([]byte, error) {
	metadata := map[string]interface{}{
		"from_status": string(from),
		"to_status":   string(to),
	}
	for key, value := range req.Context {
		metadata[key] = value
	}
	if req.Notes != "" {
		metadata["notes"] = req.Notes
	}
	return json.Marshal(metadata)
}

// parseContextDate accepts either a bare date or a full RFC 3339 timestamp.
func parseContextDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}

func joinStatuses(statuses []domain.ProjectStatus) string {
	parts := make([]string, len(statuses))
	for i, status := range statuses {
		parts[i] = string(status)
	}
	return strings.Join(parts, ", ")
}
