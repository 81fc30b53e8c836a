package service

import (
	"encoding/json"

	"github.com/google/uuid"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/dto"
)

func toProjectResponse(project *domain.PremiumProject) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:                    project.ID,
		Title:                 project.Title,
		Description:           project.Description,
		ClientName:            project.ClientName,
		CommercialAdmin:       project.CommercialAdmin,
		Value:                 project.Value,
		Status:                project.Status,
		StatusConfig:          domain.StatusConfigs[project.Status],
		PartnerAgencyID:       project.PartnerAgencyID,
		ProposalDate:          project.ProposalDate,
		StartDate:             project.StartDate,
		ConversionProbability: project.ConversionProbability,
		SatisfactionScore:     project.SatisfactionScore,
		ChurnRisk:             project.ChurnRisk,
		CreatedAt:             project.CreatedAt,
		UpdatedAt:             project.UpdatedAt,
	}
	if project.PartnerAgency != nil {
		resp.PartnerAgencyName = project.PartnerAgency.Name
	}
	return resp
}

func toHistoryResponse(entry *domain.ProjectHistory) dto.HistoryResponse {
	resp := dto.HistoryResponse{
		ID:          entry.ID,
		ProjectID:   entry.ProjectID,
		Action:      entry.Action,
		Description: entry.Description,
		ActorID:     entry.ActorID,
		ActorName:   entry.ActorName,
		ActorRole:   entry.ActorRole,
		CreatedAt:   entry.CreatedAt,
	}
	if len(entry.Metadata) > 0 {
		var metadata map[string]interface{}
		if err := json.Unmarshal(entry.Metadata, &metadata); err == nil {
			resp.Metadata = metadata
		}
	}
	return resp
}

func toAgencyResponse(agency *domain.PartnerAgency) dto.AgencyResponse {
	return dto.AgencyResponse{
		ID:                 agency.ID,
		Name:               agency.Name,
		Tier:               agency.Tier,
		ContactName:        agency.ContactName,
		ContactEmail:       agency.ContactEmail,
		ContactPhone:       agency.ContactPhone,
		ActiveProjects:     agency.ActiveProjects,
		SatisfactionRating: agency.SatisfactionRating,
		Churned:            agency.Churned,
		ChurnedAt:          agency.ChurnedAt,
		CreatedAt:          agency.CreatedAt,
		UpdatedAt:          agency.UpdatedAt,
	}
}

func toChurnEventResponse(event *domain.ChurnEvent) dto.ChurnEventResponse {
	resp := dto.ChurnEventResponse{
		ID:              event.ID,
		PartnerAgencyID: event.PartnerAgencyID,
		Reason:          event.Reason,
		Date:            event.Date,
		CreatedAt:       event.CreatedAt,
	}
	if len(event.AffectedProjects) > 0 {
		var ids []uuid.UUID
		if err := json.Unmarshal(event.AffectedProjects, &ids); err == nil {
			resp.AffectedProjects = ids
		}
	}
	resp.RedistributionPlan = make([]dto.RedistributionResponse, 0, len(event.Redistributions))
	for i := range event.Redistributions {
		resp.RedistributionPlan = append(resp.RedistributionPlan, toRedistributionResponse(&event.Redistributions[i]))
	}
	return resp
}

func toRedistributionResponse(entry *domain.ProjectRedistribution) dto.RedistributionResponse {
	return dto.RedistributionResponse{
		ProjectID:          entry.ProjectID,
		FromAgencyID:       entry.FromAgencyID,
		ToAgencyID:         entry.ToAgencyID,
		RedistributionDate: entry.RedistributionDate,
		Reason:             entry.Reason,
		ClientNotified:     entry.ClientNotified,
	}
}
