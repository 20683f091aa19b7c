package services

import (
	"cleanops-backend/models"
	"cleanops-backend/utils"

	"gorm.io/gorm"
)

// FinanceSummaryResult is a read-only rollup over completed jobs in a
// period. Nothing is cached; every call sums the job snapshots afresh.
type FinanceSummaryResult struct {
	PeriodStart   string  `json:"periodStart"`
	PeriodEnd     string  `json:"periodEnd"`
	Revenue       float64 `json:"revenue"`
	Cost          float64 `json:"cost"`
	Profit        float64 `json:"profit"`
	JobsCompleted int64   `json:"jobsCompleted"`
}

// FinanceSummary sums snapshotted revenue and cost of completed jobs in
// the inclusive period.
func FinanceSummary(db *gorm.DB, periodStart, periodEnd string) (*FinanceSummaryResult, error) {
	if !utils.ValidDateKey(periodStart) || !utils.ValidDateKey(periodEnd) {
		return nil, &ValidationError{Message: "period dates must be YYYY-MM-DD"}
	}
	if periodEnd < periodStart {
		return nil, &ValidationError{Message: "period end before period start"}
	}

	base := db.Model(&models.Job{}).
		Where("status = ? AND date >= ? AND date <= ?", models.JobCompleted, periodStart, periodEnd)

	var revenue, cost float64
	if err := base.Session(&gorm.Session{}).Select("COALESCE(SUM(total_price), 0)").Scan(&revenue).Error; err != nil {
		return nil, storeError("sum", "job revenue", "", err)
	}
	if err := base.Session(&gorm.Session{}).Select("COALESCE(SUM(cost), 0)").Scan(&cost).Error; err != nil {
		return nil, storeError("sum", "job cost", "", err)
	}
	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, storeError("count", "jobs", "", err)
	}

	return &FinanceSummaryResult{
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Revenue:       round2(revenue),
		Cost:          round2(cost),
		Profit:        round2(revenue - cost),
		JobsCompleted: count,
	}, nil
}
