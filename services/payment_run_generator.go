package services

import (
	"errors"
	"sort"
	"time"

	"cleanops-backend/models"
	"cleanops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccumulateProfessionalTotals fans out each job's per-professional cost
// breakdown into per-professional totals. Jobs created by this system
// always carry the breakdown; imported legacy jobs without one fall back
// to an even split of the aggregate cost across assignees.
func AccumulateProfessionalTotals(jobs []models.Job) map[uuid.UUID]float64 {
	totals := make(map[uuid.UUID]float64)
	for i := range jobs {
		job := &jobs[i]
		if len(job.ProfessionalCosts) > 0 {
			for _, pc := range job.ProfessionalCosts {
				totals[pc.ProfessionalID] += pc.Cost
			}
			continue
		}
		legacyEvenSplit(job, totals)
	}
	for id, v := range totals {
		totals[id] = round2(v)
	}
	return totals
}

// legacyEvenSplit is a migration-compatibility shim, not a business rule:
// it divides a job's aggregate cost equally among its assignees when the
// per-professional breakdown is missing.
func legacyEvenSplit(job *models.Job, totals map[uuid.UUID]float64) {
	ids := job.ProfessionalIDs()
	if len(ids) == 0 {
		return
	}
	share := job.Cost / float64(len(ids))
	for _, id := range ids {
		totals[id] += share
	}
}

// GeneratePaymentRun aggregates the snapshotted costs of all completed
// jobs in the period into one pending item per professional with a
// non-zero amount. A run for the exact same period is rejected;
// overlapping-but-different periods are allowed.
func GeneratePaymentRun(db *gorm.DB, periodStart, periodEnd string, now time.Time) (*models.PaymentRun, error) {
	if !utils.ValidDateKey(periodStart) || !utils.ValidDateKey(periodEnd) {
		return nil, &ValidationError{Message: "period dates must be YYYY-MM-DD"}
	}
	if periodEnd < periodStart {
		return nil, &ValidationError{Message: "period end before period start"}
	}

	var run *models.PaymentRun
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.PaymentRun{}).
			Where("period_start = ? AND period_end = ?", periodStart, periodEnd).
			Count(&existing).Error; err != nil {
			return storeError("scan", "payment runs", "", err)
		}
		if existing > 0 {
			return validationErrorf("a payment run for %s to %s already exists", periodStart, periodEnd)
		}

		var jobs []models.Job
		if err := tx.Preload("Assignments").
			Where("status = ? AND date >= ? AND date <= ?", models.JobCompleted, periodStart, periodEnd).
			Find(&jobs).Error; err != nil {
			return storeError("list", "jobs", "", err)
		}

		totals := AccumulateProfessionalTotals(jobs)

		r := models.PaymentRun{
			ID:          uuid.New(),
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			CreatedAt:   now,
		}
		if err := tx.Create(&r).Error; err != nil {
			return storeError("create", "payment run", "", err)
		}

		// Stable item order keeps runs comparable across reads.
		ids := make([]uuid.UUID, 0, len(totals))
		for id := range totals {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a].String() < ids[b].String() })

		for _, id := range ids {
			amount := totals[id]
			if amount <= 0 {
				continue
			}
			item := models.PaymentRunItem{
				ID:             uuid.New(),
				PaymentRunID:   r.ID,
				ProfessionalID: id,
				Amount:         amount,
				Status:         models.PaymentItemPending,
			}
			if err := tx.Create(&item).Error; err != nil {
				return storeError("create", "payment run item", id.String(), err)
			}
			r.Items = append(r.Items, item)
		}

		run = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// MarkPaymentRunItemPaid flips a pending item to paid and stamps PaidAt.
// The transition is one-way; a second call is a no-op that returns the
// item unchanged. Amount is never recomputed.
func MarkPaymentRunItemPaid(db *gorm.DB, itemID uuid.UUID, now time.Time) (*models.PaymentRunItem, error) {
	var item models.PaymentRunItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "payment run item", ID: itemID.String()}
		}
		return nil, storeError("fetch", "payment run item", itemID.String(), err)
	}

	if item.Status == models.PaymentItemPaid {
		return &item, nil
	}

	item.Status = models.PaymentItemPaid
	item.PaidAt = &now
	if err := db.Model(&item).Updates(map[string]interface{}{
		"status":  models.PaymentItemPaid,
		"paid_at": now,
	}).Error; err != nil {
		return nil, storeError("update", "payment run item", itemID.String(), err)
	}
	return &item, nil
}
