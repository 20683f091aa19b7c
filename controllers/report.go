// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"cleanops-backend/config"
	"cleanops-backend/models"
	"cleanops-backend/services"
	"cleanops-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the analytics data
type AnalyticsSummary struct {
	CurrentMonthProfit   float64               `json:"currentMonthProfit"`
	MonthGrowth          float64               `json:"monthGrowth"`
	CurrentQuarterProfit float64               `json:"currentQuarterProfit"`
	QuarterGrowth        float64               `json:"quarterGrowth"`
	CurrentYearProfit    float64               `json:"currentYearProfit"`
	YearGrowth           float64               `json:"yearGrowth"`
	TopClients           []ClientSummary       `json:"topClients"`
	TopProfessionals     []ProfessionalSummary `json:"topProfessionals"`
	QuickStats           QuickStatistics       `json:"quickStats"`
}

type ClientSummary struct {
	Name    string  `json:"name"`
	Jobs    int     `json:"jobs"`
	Revenue float64 `json:"revenue"`
}

type ProfessionalSummary struct {
	Name   string  `json:"name"`
	Earned float64 `json:"earned"`
}

type QuickStatistics struct {
	ActiveClients    int     `json:"activeClients"`
	CompletedJobs    int     `json:"completedJobs"`
	AvgJobValue      float64 `json:"avgJobValue"`
	InvoicesIssued   int     `json:"invoicesIssued"`
	OutstandingTotal float64 `json:"outstandingTotal"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	loc := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, loc)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	monthProfit, err := rc.getProfit(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly profit")
		return
	}
	lastMonthProfit, err := rc.getProfit(firstOfMonth.AddDate(0, -1, 0), lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month profit")
		return
	}

	quarterProfit, err := rc.getProfit(rc.getQuarterStart(now), rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly profit")
		return
	}
	lastQuarterProfit, err := rc.getProfit(
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter profit")
		return
	}

	yearProfit, err := rc.getProfit(
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, loc),
		time.Date(currentYear, 12, 31, 0, 0, 0, 0, loc))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly profit")
		return
	}
	lastYearProfit, err := rc.getProfit(
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, loc),
		time.Date(currentYear-1, 12, 31, 0, 0, 0, 0, loc))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year profit")
		return
	}

	topClients, err := rc.getTopClients(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top clients")
		return
	}

	topProfessionals, err := rc.getTopProfessionals(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top professionals")
		return
	}

	quickStats, err := rc.getQuickStatistics()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthProfit:   monthProfit,
		MonthGrowth:          rc.calculateGrowthPercentage(monthProfit, lastMonthProfit),
		CurrentQuarterProfit: quarterProfit,
		QuarterGrowth:        rc.calculateGrowthPercentage(quarterProfit, lastQuarterProfit),
		CurrentYearProfit:    yearProfit,
		YearGrowth:           rc.calculateGrowthPercentage(yearProfit, lastYearProfit),
		TopClients:           topClients,
		TopProfessionals:     topProfessionals,
		QuickStats:           quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getProfit(start, end time.Time) (float64, error) {
	summary, err := services.FinanceSummary(config.DB, utils.DateKey(start), utils.DateKey(end))
	if err != nil {
		return 0, err
	}
	return summary.Profit, nil
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopClients(start, end time.Time, limit int) ([]ClientSummary, error) {
	var clients []ClientSummary

	err := config.DB.Table("jobs").
		Select("clients.name, COUNT(jobs.id) as jobs, SUM(jobs.total_price) as revenue").
		Joins("JOIN clients ON clients.id = jobs.client_id").
		Where("jobs.status = ? AND jobs.date BETWEEN ? AND ? AND clients.deleted_at IS NULL",
			models.JobCompleted, utils.DateKey(start), utils.DateKey(end)).
		Group("clients.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&clients).Error

	return clients, err
}

// getTopProfessionals fans out the per-professional cost breakdown of
// the period's completed jobs, the same accumulation the payment run
// generator uses.
func (rc *ReportController) getTopProfessionals(start, end time.Time, limit int) ([]ProfessionalSummary, error) {
	var jobs []models.Job
	err := config.DB.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).
		Where("status = ? AND date BETWEEN ? AND ?",
			models.JobCompleted, utils.DateKey(start), utils.DateKey(end)).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	totals := services.AccumulateProfessionalTotals(jobs)
	if len(totals) == 0 {
		return []ProfessionalSummary{}, nil
	}

	var pros []models.Professional
	if err := config.DB.Find(&pros).Error; err != nil {
		return nil, err
	}

	summaries := make([]ProfessionalSummary, 0, len(totals))
	for _, pro := range pros {
		if earned, ok := totals[pro.ID]; ok && earned > 0 {
			summaries = append(summaries, ProfessionalSummary{Name: pro.Name, Earned: earned})
		}
	}
	// Highest earners first
	for i := 0; i < len(summaries); i++ {
		for j := i + 1; j < len(summaries); j++ {
			if summaries[j].Earned > summaries[i].Earned {
				summaries[i], summaries[j] = summaries[j], summaries[i]
			}
		}
	}
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (rc *ReportController) getQuickStatistics() (QuickStatistics, error) {
	var stats QuickStatistics

	var activeClients int64
	if err := config.DB.Model(&models.Client{}).
		Where("status = ?", models.ClientActive).
		Count(&activeClients).Error; err != nil {
		return stats, err
	}
	stats.ActiveClients = int(activeClients)

	var completedJobs int64
	if err := config.DB.Model(&models.Job{}).
		Where("status = ?", models.JobCompleted).
		Count(&completedJobs).Error; err != nil {
		return stats, err
	}
	stats.CompletedJobs = int(completedJobs)

	var totalRevenue float64
	if err := config.DB.Model(&models.Job{}).
		Where("status = ?", models.JobCompleted).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}
	if stats.CompletedJobs > 0 {
		stats.AvgJobValue = totalRevenue / float64(stats.CompletedJobs)
	}

	var invoicesIssued int64
	if err := config.DB.Model(&models.Invoice{}).
		Where("status <> ?", models.InvoiceDraft).
		Count(&invoicesIssued).Error; err != nil {
		return stats, err
	}
	stats.InvoicesIssued = int(invoicesIssued)

	var outstanding float64
	if err := config.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoicePending).
		Select("COALESCE(SUM(total), 0)").
		Scan(&outstanding).Error; err != nil {
		return stats, err
	}
	stats.OutstandingTotal = outstanding

	return stats, nil
}
