package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// History actions recorded by the engines
const (
	ActionProjectCreated   = "project_created"
	ActionStatusChange     = "status_change"
	ActionAgencyReassigned = "agency_reassigned"
)

// ProjectHistory is one entry of a project's append-only audit trail.
// Entries are never updated or deleted; ordering is insertion order and
// CreatedAt is monotonic per project.
type ProjectHistory struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_project_histories_project_id" json:"project_id"`
	Action      string         `gorm:"type:varchar(50);not null" json:"action"`
	Description string         `gorm:"type:text" json:"description"`
	ActorID     uuid.UUID      `gorm:"type:uuid;not null" json:"actor_id"`
	ActorName   string         `gorm:"type:varchar(255)" json:"actor_name"`
	ActorRole   string         `gorm:"type:varchar(50)" json:"actor_role"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"type:timestamp;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for ProjectHistory
func (ProjectHistory) TableName() string {
	return "project_histories"
}
