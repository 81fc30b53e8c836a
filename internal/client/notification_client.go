package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"partner-portal-api/internal/metrics"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationProjectReassigned NotificationType = "PROJECT_REASSIGNED"
	NotificationAgencyChurned     NotificationType = "AGENCY_CHURNED"
)

// NotificationEvent represents a client notification to be sent
type NotificationEvent struct {
	Type         NotificationType       `json:"type"`
	ChurnEventID uuid.UUID              `json:"churnEventId"`
	ProjectID    uuid.UUID              `json:"projectId"`
	ProjectName  string                 `json:"projectName,omitempty"`
	ClientName   string                 `json:"clientName,omitempty"`
	FromAgencyID uuid.UUID              `json:"fromAgencyId"`
	ToAgencyID   uuid.UUID              `json:"toAgencyId"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt   string                 `json:"occurredAt,omitempty"`
}

// NotificationClient defines the interface for notification service communication
type NotificationClient interface {
	// SendNotification sends a single client notification. A non-2xx
	// response is an error so callers can retry on the next dispatch run.
	SendNotification(ctx context.Context, event NotificationEvent) error
}

// notificationClient implements NotificationClient interface
type notificationClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotificationClient creates a new Notification API client
func NewNotificationClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotificationClient {
	return &notificationClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
		logger:  logger,
		metrics: m,
	}
}

// SendNotification sends a single notification to the notification service
func (c *notificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	url := fmt.Sprintf("%s/api/internal/notifications", c.baseURL)

	// Set occurred time if not provided
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	jsonBody, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("Failed to marshal notification event",
			zap.Error(err),
			zap.String("type", string(event.Type)),
		)
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		c.logger.Error("Failed to create notification request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, "POST", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to send notification",
			zap.Error(err),
			zap.String("type", string(event.Type)),
			zap.String("project_id", event.ProjectID.String()),
			zap.Duration("duration", duration),
		)
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("Notification sent successfully",
			zap.String("type", string(event.Type)),
			zap.String("project_id", event.ProjectID.String()),
			zap.Duration("duration", duration),
		)
		return nil
	}

	c.logger.Warn("Notification service returned non-success status",
		zap.Int("status_code", resp.StatusCode),
		zap.String("type", string(event.Type)),
		zap.Duration("duration", duration),
	)

	return fmt.Errorf("notification service returned status %d", resp.StatusCode)
}

// NoOpNotificationClient is a no-op implementation for when notifications are disabled
type NoOpNotificationClient struct{}

func NewNoOpNotificationClient() NotificationClient {
	return &NoOpNotificationClient{}
}

func (c *NoOpNotificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	return nil
}
