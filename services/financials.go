package services

import (
	"math"

	"cleanops-backend/models"
)

// JobFinancials is the snapshot written onto a job at creation or
// financial update time.
type JobFinancials struct {
	TotalPrice        float64
	Cost              float64
	ProfessionalCosts models.ProfessionalCostList
}

// MinJobDurationHours is the shortest bookable job.
const MinJobDurationHours = 0.5

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeJobFinancials computes client revenue and per-professional cost
// for a job. Revenue bills every assigned professional-slot at the
// client's hourly rate for the full duration (N cleaners working
// simultaneously). Pure; the caller persists the result onto the job.
func ComputeJobFinancials(client *models.Client, professionals []models.Professional, durationHours float64, kind models.ServiceKind) (*JobFinancials, error) {
	if len(professionals) == 0 {
		return nil, &ValidationError{Message: "at least one cleaner required"}
	}
	if durationHours < MinJobDurationHours {
		return nil, validationErrorf("duration must be at least %.1f hours", MinJobDurationHours)
	}
	if kind == models.ServiceDeepClean && !client.HasDeepCleanRate() {
		return nil, &ValidationError{Message: "client has no deep-clean rate configured"}
	}

	totalPrice := round2(durationHours * ClientRate(client, kind) * float64(len(professionals)))

	costs := make(models.ProfessionalCostList, 0, len(professionals))
	var cost float64
	for i := range professionals {
		pro := &professionals[i]
		c := round2(durationHours * ProfessionalRate(pro, kind))
		costs = append(costs, models.ProfessionalCost{
			ProfessionalID: pro.ID,
			Cost:           c,
		})
		cost += c
	}

	return &JobFinancials{
		TotalPrice:        totalPrice,
		Cost:              round2(cost),
		ProfessionalCosts: costs,
	}, nil
}
