package domain

import "time"

// AgencyTier represents the partnership level of an agency
type AgencyTier string

const (
	TierPremium AgencyTier = "premium"
	TierElite   AgencyTier = "elite"
)

// PartnerAgency represents an external agency contracted to service
// premium projects. ActiveProjects and SatisfactionRating drive the
// churn redistribution ranking; both are owned by the engines and must
// not be written directly by other code paths.
type PartnerAgency struct {
	BaseModel
	Name               string     `gorm:"type:varchar(255);not null" json:"name"`
	Tier               AgencyTier `gorm:"type:varchar(50);not null;default:'premium';index:idx_partner_agencies_tier" json:"tier"`
	ContactName        string     `gorm:"type:varchar(255)" json:"contact_name"`
	ContactEmail       string     `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone       string     `gorm:"type:varchar(50)" json:"contact_phone"`
	ActiveProjects     int        `gorm:"not null;default:0" json:"active_projects"`
	SatisfactionRating float64    `gorm:"not null;default:0" json:"satisfaction_rating"`
	Churned            bool       `gorm:"default:false;index:idx_partner_agencies_churned" json:"churned"`
	ChurnedAt          *time.Time `gorm:"type:timestamp" json:"churned_at,omitempty"`
}

// TableName specifies the table name for PartnerAgency
func (PartnerAgency) TableName() string {
	return "partner_agencies"
}
