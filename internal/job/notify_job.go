package job

import (
	"context"

	"go.uber.org/zap"

	"partner-portal-api/internal/client"
	"partner-portal-api/internal/metrics"
	"partner-portal-api/internal/repository"
)

// dispatchBatchSize caps how many pending notifications one run picks up.
const dispatchBatchSize = 100

// NotifyJob dispatches client notifications for redistributed projects.
// Entries stay unnotified until the notification service accepts them,
// so failed sends are retried on the next scheduled run.
type NotifyJob struct {
	churnRepo          repository.ChurnRepository
	projectRepo        repository.ProjectRepository
	notificationClient client.NotificationClient
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

// NewNotifyJob creates a new NotifyJob instance
func NewNotifyJob(
	churnRepo repository.ChurnRepository,
	projectRepo repository.ProjectRepository,
	notificationClient client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) *NotifyJob {
	return &NotifyJob{
		churnRepo:          churnRepo,
		projectRepo:        projectRepo,
		notificationClient: notificationClient,
		metrics:            m,
		logger:             logger,
	}
}

// Run executes one dispatch pass over pending redistribution notifications
func (j *NotifyJob) Run() {
	ctx := context.Background()

	pending, err := j.churnRepo.FindUnnotified(ctx, dispatchBatchSize)
	if err != nil {
		j.logger.Error("Failed to load pending client notifications",
			zap.Error(err),
		)
		return
	}

	if len(pending) == 0 {
		return
	}

	j.logger.Info("Dispatching client notifications for redistributed projects",
		zap.Int("count", len(pending)),
	)

	successCount := 0
	failCount := 0

	for _, entry := range pending {
		event := client.NotificationEvent{
			Type:         client.NotificationProjectReassigned,
			ChurnEventID: entry.ChurnEventID,
			ProjectID:    entry.ProjectID,
			FromAgencyID: entry.FromAgencyID,
			ToAgencyID:   entry.ToAgencyID,
			Metadata: map[string]interface{}{
				"reason": entry.Reason,
			},
		}

		// Project details are best effort. The notification still goes
		// out when the lookup fails.
		if project, err := j.projectRepo.FindByID(ctx, entry.ProjectID); err == nil {
			event.ProjectName = project.Title
			event.ClientName = project.ClientName
		} else {
			j.logger.Warn("Failed to load project for notification",
				zap.String("project_id", entry.ProjectID.String()),
				zap.Error(err),
			)
		}

		if err := j.notificationClient.SendNotification(ctx, event); err != nil {
			j.logger.Error("Failed to dispatch client notification",
				zap.String("churn_event_id", entry.ChurnEventID.String()),
				zap.String("project_id", entry.ProjectID.String()),
				zap.Error(err),
			)
			failCount++
			continue
		}

		if _, err := j.churnRepo.MarkClientNotified(ctx, entry.ChurnEventID, entry.ProjectID); err != nil {
			j.logger.Error("Failed to mark redistribution as notified",
				zap.String("churn_event_id", entry.ChurnEventID.String()),
				zap.String("project_id", entry.ProjectID.String()),
				zap.Error(err),
			)
			failCount++
			continue
		}

		if j.metrics != nil {
			j.metrics.IncrementClientNotification()
		}
		successCount++
	}

	j.logger.Info("Notification dispatch completed",
		zap.Int("total_pending", len(pending)),
		zap.Int("success", successCount),
		zap.Int("failed", failCount),
	)
}
