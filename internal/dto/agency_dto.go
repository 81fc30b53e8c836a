package dto

import (
	"time"

	"github.com/google/uuid"

	"partner-portal-api/internal/domain"
)

// CreateAgencyRequest represents the request to sign on a partner agency
type CreateAgencyRequest struct {
	Name               string            `json:"name" binding:"required,min=2,max=255" example:"Studio Norte"`
	Tier               domain.AgencyTier `json:"tier" binding:"omitempty,oneof=premium elite" example:"premium"`
	ContactName        string            `json:"contactName" binding:"max=255" example:"Rafael Lima"`
	ContactEmail       string            `json:"contactEmail" binding:"omitempty,email" example:"rafael@studionorte.com.br"`
	ContactPhone       string            `json:"contactPhone" binding:"max=50" example:"+55 11 98888-0000"`
	SatisfactionRating float64           `json:"satisfactionRating" binding:"gte=0,lte=5" example:"4.6"`
}

// UpdateAgencyRatingRequest updates an agency's satisfaction rating
type UpdateAgencyRatingRequest struct {
	SatisfactionRating float64 `json:"satisfactionRating" binding:"gte=0,lte=5" example:"4.2"`
}

// AgencyResponse represents a partner agency snapshot
type AgencyResponse struct {
	ID                 uuid.UUID         `json:"agencyId"`
	Name               string            `json:"name"`
	Tier               domain.AgencyTier `json:"tier"`
	ContactName        string            `json:"contactName,omitempty"`
	ContactEmail       string            `json:"contactEmail,omitempty"`
	ContactPhone       string            `json:"contactPhone,omitempty"`
	ActiveProjects     int               `json:"activeProjects"`
	SatisfactionRating float64           `json:"satisfactionRating"`
	Churned            bool              `json:"churned"`
	ChurnedAt          *time.Time        `json:"churnedAt,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}
