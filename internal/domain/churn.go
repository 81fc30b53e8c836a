package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChurnEvent records a partner agency exiting the program. It is
// created exactly once per churn operation and is immutable afterward;
// only the ClientNotified flag of its redistribution entries changes.
type ChurnEvent struct {
	ID               uuid.UUID               `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PartnerAgencyID  uuid.UUID               `gorm:"type:uuid;not null;index:idx_churn_events_partner_agency_id" json:"partner_agency_id"`
	Reason           string                  `gorm:"type:text;not null" json:"reason"`
	Date             time.Time               `gorm:"type:timestamp;not null" json:"date"`
	AffectedProjects datatypes.JSON          `gorm:"type:jsonb" json:"affected_projects"`
	Redistributions  []ProjectRedistribution `gorm:"foreignKey:ChurnEventID;constraint:OnDelete:CASCADE" json:"redistribution_plan,omitempty"`
	CreatedAt        time.Time               `gorm:"type:timestamp;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for ChurnEvent
func (ChurnEvent) TableName() string {
	return "churn_events"
}

// ProjectRedistribution is one project-to-new-agency assignment inside
// a churn event's redistribution plan. A plan holds exactly one entry
// per affected project.
type ProjectRedistribution struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChurnEventID       uuid.UUID `gorm:"type:uuid;not null;index:idx_project_redistributions_churn_event_id;uniqueIndex:uq_project_redistributions_event_project" json:"churn_event_id"`
	ProjectID          uuid.UUID `gorm:"type:uuid;not null;index:idx_project_redistributions_project_id;uniqueIndex:uq_project_redistributions_event_project" json:"project_id"`
	FromAgencyID       uuid.UUID `gorm:"type:uuid;not null" json:"from_agency_id"`
	ToAgencyID         uuid.UUID `gorm:"type:uuid;not null;index:idx_project_redistributions_to_agency_id" json:"to_agency_id"`
	RedistributionDate time.Time `gorm:"type:timestamp;not null" json:"redistribution_date"`
	Reason             string    `gorm:"type:text" json:"reason"`
	ClientNotified     bool      `gorm:"not null;default:false" json:"client_notified"`
	CreatedAt          time.Time `gorm:"type:timestamp;not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"type:timestamp;not null;default:now()" json:"updated_at"`
}

// TableName specifies the table name for ProjectRedistribution
func (ProjectRedistribution) TableName() string {
	return "project_redistributions"
}
