package dto

import (
	"time"

	"github.com/google/uuid"

	"partner-portal-api/internal/domain"
)

// CreateProjectRequest represents the request to register a new premium project
// @Description Request body for creating a premium project. The project starts in status "elaborado".
type CreateProjectRequest struct {
	Title                 string                `json:"title" binding:"required,min=2,max=255" example:"Plataforma B2B Redesign"`
	Description           string                `json:"description" binding:"max=2000" example:"Full redesign of the client B2B storefront"`
	ClientName            string                `json:"clientName" binding:"required,min=2,max=255" example:"Acme Ltda"`
	CommercialAdmin       string                `json:"commercialAdmin" binding:"max=255" example:"Paula Mendes"`
	Value                 float64               `json:"value" binding:"gte=0" example:"185000"`
	PartnerAgencyID       *uuid.UUID            `json:"partnerAgencyId,omitempty" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	ProposalDate          *time.Time            `json:"proposalDate,omitempty" example:"2024-01-05T00:00:00Z"`
	ConversionProbability float64               `json:"conversionProbability" binding:"gte=0,lte=1" example:"0.65"`
	ChurnRisk             domain.ChurnRiskLevel `json:"churnRisk" binding:"omitempty,oneof=low medium high" example:"low"`
}

// ProjectResponse represents a premium project snapshot returned to the portal
type ProjectResponse struct {
	ID                    uuid.UUID             `json:"projectId"`
	Title                 string                `json:"title"`
	Description           string                `json:"description"`
	ClientName            string                `json:"clientName"`
	CommercialAdmin       string                `json:"commercialAdmin"`
	Value                 float64               `json:"value"`
	Status                domain.ProjectStatus  `json:"status"`
	StatusConfig          domain.StatusConfig   `json:"statusConfig"`
	PartnerAgencyID       *uuid.UUID            `json:"partnerAgencyId,omitempty"`
	PartnerAgencyName     string                `json:"partnerAgencyName,omitempty"`
	ProposalDate          *time.Time            `json:"proposalDate,omitempty"`
	StartDate             *time.Time            `json:"startDate,omitempty"`
	ConversionProbability float64               `json:"conversionProbability"`
	SatisfactionScore     float64               `json:"satisfactionScore"`
	ChurnRisk             domain.ChurnRiskLevel `json:"churnRisk"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
}

// ProjectDetailResponse is a project snapshot including its audit history
type ProjectDetailResponse struct {
	ProjectResponse
	History []HistoryResponse `json:"history"`
}

// ProjectFilters holds optional list filters
type ProjectFilters struct {
	Status   *domain.ProjectStatus
	AgencyID *uuid.UUID
}

// StatusSummary aggregates the portfolio for one status
type StatusSummary struct {
	Status     domain.ProjectStatus `json:"status"`
	Label      string               `json:"label"`
	Count      int64                `json:"count"`
	TotalValue float64              `json:"totalValue"`
}

// PortfolioSummaryResponse represents the per-status portfolio rollup
type PortfolioSummaryResponse struct {
	Statuses    []StatusSummary `json:"statuses"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
