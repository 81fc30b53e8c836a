package dto

import (
	"time"

	"github.com/google/uuid"

	"partner-portal-api/internal/domain"
)

// TransitionRequest represents a request to move a project to a new status
// @Description Context carries the per-target required fields, e.g. loss_reason
// @Description for "perdido" or overdue_days for "inadimplente". Notes are always optional.
type TransitionRequest struct {
	TargetStatus domain.ProjectStatus `json:"targetStatus" binding:"required" example:"em_negociacao"`
	Context      map[string]string    `json:"context"`
	Notes        string               `json:"notes,omitempty" example:"Client asked to fast-track the proposal"`
}

// HistoryResponse represents one project audit history entry
type HistoryResponse struct {
	ID          uuid.UUID              `json:"historyId"`
	ProjectID   uuid.UUID              `json:"projectId"`
	Action      string                 `json:"action"`
	Description string                 `json:"description"`
	ActorID     uuid.UUID              `json:"actorId"`
	ActorName   string                 `json:"actorName"`
	ActorRole   string                 `json:"actorRole"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// TransitionResponse is the result of a committed status transition
type TransitionResponse struct {
	Project      ProjectResponse `json:"project"`
	HistoryEntry HistoryResponse `json:"historyEntry"`
}

// TransitionOption describes one status reachable from the current one,
// with the badge config and context fields the transition dialog needs
type TransitionOption struct {
	Status         domain.ProjectStatus `json:"status"`
	Label          string               `json:"label"`
	Color          string               `json:"color"`
	Icon           string               `json:"icon"`
	RequiredFields []string             `json:"requiredFields"`
}

// AllowedTransitionsResponse lists the legal next statuses for a project
type AllowedTransitionsResponse struct {
	CurrentStatus domain.ProjectStatus `json:"currentStatus"`
	Terminal      bool                 `json:"terminal"`
	Options       []TransitionOption   `json:"options"`
}
