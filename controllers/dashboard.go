package controllers

import (
	"log"
	"net/http"
	"time"

	"cleanops-backend/config"
	"cleanops-backend/models"
	"cleanops-backend/services"
	"cleanops-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview summarises today's schedule and the current
// week's money position. Everything is recomputed from the job
// snapshots on each call; nothing is pre-materialised.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	today := utils.DateKey(now)
	weekStart := utils.DateKey(utils.StartOfWeek(now))
	weekEnd := utils.DateKey(utils.StartOfWeek(now).AddDate(0, 0, 6))

	// Active clients
	var activeClients int64
	config.DB.Model(&models.Client{}).Where("status = ?", models.ClientActive).Count(&activeClients)

	// Active professionals
	var activeProfessionals int64
	config.DB.Model(&models.Professional{}).Where("status = ?", models.ProfessionalActive).Count(&activeProfessionals)

	// Today's occurrences across all jobs
	var jobs []models.Job
	if err := config.DB.Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	type todayEntry struct {
		JobID     string           `json:"jobId"`
		ClientID  string           `json:"clientId"`
		StartTime string           `json:"startTime"`
		Status    models.JobStatus `json:"status"`
	}
	todaysJobs := make([]todayEntry, 0)
	for i := range jobs {
		occs, err := services.ExpandOccurrences(&jobs[i], today, today)
		if err != nil {
			log.Printf("Dashboard: skipping job %s: %v", jobs[i].ID, err)
			continue
		}
		for _, o := range occs {
			todaysJobs = append(todaysJobs, todayEntry{
				JobID:     jobs[i].ID.String(),
				ClientID:  jobs[i].ClientID.String(),
				StartTime: jobs[i].StartTime,
				Status:    o.Status,
			})
		}
	}

	// This week's money position
	week, err := services.FinanceSummary(config.DB, weekStart, weekEnd)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Pending and overdue invoices
	var pendingInvoices int64
	config.DB.Model(&models.Invoice{}).Where("status = ?", models.InvoicePending).Count(&pendingInvoices)

	var overdueInvoices int64
	config.DB.Model(&models.Invoice{}).
		Where("status = ? AND due_date < ?", models.InvoicePending, utils.BeginningOfDay(now)).
		Count(&overdueInvoices)

	// Outstanding payroll
	var unpaidPayroll float64
	config.DB.Model(&models.PaymentRunItem{}).
		Where("status = ?", models.PaymentItemPending).
		Select("COALESCE(SUM(amount), 0)").Scan(&unpaidPayroll)

	c.JSON(http.StatusOK, gin.H{
		"activeClients":       activeClients,
		"activeProfessionals": activeProfessionals,
		"todaysJobs":          todaysJobs,
		"week":                week,
		"pendingInvoices":     pendingInvoices,
		"overdueInvoices":     overdueInvoices,
		"unpaidPayroll":       unpaidPayroll,
	})
}
