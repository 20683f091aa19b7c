package services

import "cleanops-backend/models"

// ClientRate resolves the hourly rate charged to a client for the given
// service kind. A missing deep-clean override falls back to the standard
// rate; absence is not an error.
func ClientRate(client *models.Client, kind models.ServiceKind) float64 {
	if kind == models.ServiceDeepClean && client.HasDeepCleanRate() {
		return *client.DeepCleanPricePerHour
	}
	return client.PricePerHour
}

// ProfessionalRate resolves the hourly pay rate for a professional for
// the given service kind, with the same fallback rule.
func ProfessionalRate(pro *models.Professional, kind models.ServiceKind) float64 {
	if kind == models.ServiceDeepClean && pro.HasDeepCleanRate() {
		return *pro.DeepCleanRatePerHour
	}
	return pro.RatePerHour
}
