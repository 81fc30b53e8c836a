package service

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	"partner-portal-api/internal/domain"
)

// redistributionCandidate tracks a target agency together with the load
// it accumulates while a plan is being built, so that consecutive picks
// spread projects instead of piling them on one agency.
type redistributionCandidate struct {
	agency      *domain.PartnerAgency
	workingLoad int
}

// planRedistribution assigns each project to a candidate agency. For
// every project the candidate with the fewest projects wins; ties break
// on higher satisfaction rating, then on agency id. The chosen
// candidate's working load goes up by one before the next pick. The
// returned slice is aligned with the projects slice.
func planRedistribution(projects []*domain.PremiumProject, agencies []*domain.PartnerAgency) []uuid.UUID {
	candidates := make([]*redistributionCandidate, 0, len(agencies))
	for _, agency := range agencies {
		candidates = append(candidates, &redistributionCandidate{
			agency:      agency,
			workingLoad: agency.ActiveProjects,
		})
	}

	targets := make([]uuid.UUID, 0, len(projects))
	for range projects {
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if a.workingLoad != b.workingLoad {
				return a.workingLoad < b.workingLoad
			}
			if a.agency.SatisfactionRating != b.agency.SatisfactionRating {
				return a.agency.SatisfactionRating > b.agency.SatisfactionRating
			}
			return bytes.Compare(a.agency.ID[:], b.agency.ID[:]) < 0
		})
		best := candidates[0]
		best.workingLoad++
		targets = append(targets, best.agency.ID)
	}
	return targets
}
