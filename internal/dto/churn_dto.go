package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProcessChurnRequest represents the request to process a partner
// agency exiting the program
// @Description affectedProjectIds must be exactly the projects currently owned by the agency
type ProcessChurnRequest struct {
	AgencyID           uuid.UUID   `json:"agencyId" binding:"required" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Reason             string      `json:"reason" binding:"required,min=3,max=2000" example:"Agency terminated the partnership contract"`
	AffectedProjectIDs []uuid.UUID `json:"affectedProjectIds" binding:"required,dive,uuid"`
}

// RedistributionResponse represents one project reassignment inside a
// churn event's redistribution plan
type RedistributionResponse struct {
	ProjectID          uuid.UUID `json:"projectId"`
	FromAgencyID       uuid.UUID `json:"fromAgencyId"`
	ToAgencyID         uuid.UUID `json:"toAgencyId"`
	RedistributionDate time.Time `json:"redistributionDate"`
	Reason             string    `json:"reason"`
	ClientNotified     bool      `json:"clientNotified"`
}

// ChurnEventResponse represents a recorded churn event
type ChurnEventResponse struct {
	ID                 uuid.UUID                `json:"churnEventId"`
	PartnerAgencyID    uuid.UUID                `json:"partnerAgencyId"`
	Reason             string                   `json:"reason"`
	Date               time.Time                `json:"date"`
	AffectedProjects   []uuid.UUID              `json:"affectedProjects"`
	RedistributionPlan []RedistributionResponse `json:"redistributionPlan"`
	CreatedAt          time.Time                `json:"createdAt"`
}

// ProcessChurnResponse is the result of a committed churn operation
type ProcessChurnResponse struct {
	ChurnEvent      ChurnEventResponse `json:"churnEvent"`
	UpdatedProjects []ProjectResponse  `json:"updatedProjects"`
}
