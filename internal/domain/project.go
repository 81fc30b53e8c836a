package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChurnRiskLevel classifies a project's exposure to partner churn
type ChurnRiskLevel string

const (
	ChurnRiskLow    ChurnRiskLevel = "low"
	ChurnRiskMedium ChurnRiskLevel = "medium"
	ChurnRiskHigh   ChurnRiskLevel = "high"
)

// PremiumProject represents a high-value client engagement tracked
// through the formal status lifecycle. Status, PartnerAgencyID and
// History are written exclusively by the lifecycle and churn engines;
// terminal projects are retained for audit and never deleted.
type PremiumProject struct {
	BaseModel
	Title                 string           `gorm:"type:varchar(255);not null" json:"title"`
	Description           string           `gorm:"type:text" json:"description"`
	ClientName            string           `gorm:"type:varchar(255);not null" json:"client_name"`
	CommercialAdmin       string           `gorm:"type:varchar(255)" json:"commercial_admin"`
	Value                 float64          `gorm:"not null;default:0" json:"value"`
	Status                ProjectStatus    `gorm:"type:varchar(50);not null;default:'elaborado';index:idx_premium_projects_status" json:"status"`
	PartnerAgencyID       *uuid.UUID       `gorm:"type:uuid;index:idx_premium_projects_partner_agency_id" json:"partner_agency_id"`
	PartnerAgency         *PartnerAgency   `gorm:"foreignKey:PartnerAgencyID" json:"partner_agency,omitempty"`
	ProposalDate          *time.Time       `gorm:"type:timestamp" json:"proposal_date,omitempty"`
	StartDate             *time.Time       `gorm:"type:timestamp" json:"start_date,omitempty"`
	ConversionProbability float64          `gorm:"not null;default:0" json:"conversion_probability"`
	SatisfactionScore     float64          `gorm:"not null;default:0" json:"satisfaction_score"`
	ChurnRisk             ChurnRiskLevel   `gorm:"type:varchar(20);not null;default:'low'" json:"churn_risk"`
	History               []ProjectHistory `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
	Reports               []ProjectReport  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"reports,omitempty"`
}

// TableName specifies the table name for PremiumProject
func (PremiumProject) TableName() string {
	return "premium_projects"
}
