package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cleanops-backend/models"
	"cleanops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultDueDays is applied when the caller does not specify a due period.
const DefaultDueDays = 30

// InvoiceOptions tune invoice generation.
type InvoiceOptions struct {
	DueDays int
	Notes   string
}

// nextInvoiceNumber allocates the next sequential INV-NNNNNN number.
// Numbers are compared numerically so zero padding cannot affect
// ordering, and deleted invoices still count (soft delete + Unscoped),
// so a number is never reused.
func nextInvoiceNumber(db *gorm.DB) (string, error) {
	var numbers []string
	if err := db.Unscoped().Model(&models.Invoice{}).Pluck("invoice_number", &numbers).Error; err != nil {
		return "", storeError("list", "invoice numbers", "", err)
	}

	max := 0
	for _, n := range numbers {
		suffix := strings.TrimPrefix(n, "INV-")
		v, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return fmt.Sprintf("INV-%06d", max+1), nil
}

// uninvoicedCompletedJobs returns the client's completed jobs inside the
// inclusive period that are not yet linked to any invoice.
func uninvoicedCompletedJobs(db *gorm.DB, clientID uuid.UUID, periodStart, periodEnd string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.
		Where("client_id = ? AND status = ?", clientID, models.JobCompleted).
		Where("date >= ? AND date <= ?", periodStart, periodEnd).
		Where("id NOT IN (?)", db.Model(&models.InvoiceJob{}).Select("job_id")).
		Order("date ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, storeError("list", "jobs", clientID.String(), err)
	}
	return jobs, nil
}

// GenerateInvoice aggregates a client's completed, not-yet-invoiced jobs
// in the period into a draft invoice. Zero matching jobs still succeeds
// and yields a zero-total draft. All writes happen in one transaction.
func GenerateInvoice(db *gorm.DB, clientID uuid.UUID, periodStart, periodEnd string, opts InvoiceOptions, now time.Time) (*models.Invoice, error) {
	if !utils.ValidDateKey(periodStart) || !utils.ValidDateKey(periodEnd) {
		return nil, &ValidationError{Message: "period dates must be YYYY-MM-DD"}
	}
	if periodEnd < periodStart {
		return nil, &ValidationError{Message: "period end before period start"}
	}
	if opts.DueDays <= 0 {
		opts.DueDays = DefaultDueDays
	}

	var client models.Client
	if err := db.First(&client, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "client", ID: clientID.String()}
		}
		return nil, storeError("fetch", "client", clientID.String(), err)
	}

	var invoice *models.Invoice
	err := db.Transaction(func(tx *gorm.DB) error {
		jobs, err := uninvoicedCompletedJobs(tx, clientID, periodStart, periodEnd)
		if err != nil {
			return err
		}

		var subtotal float64
		for _, j := range jobs {
			subtotal += j.TotalPrice
		}
		subtotal = round2(subtotal)

		number, err := nextInvoiceNumber(tx)
		if err != nil {
			return err
		}

		inv := models.Invoice{
			ID:            uuid.New(),
			ClientID:      clientID,
			InvoiceNumber: number,
			PeriodStart:   periodStart,
			PeriodEnd:     periodEnd,
			IssueDate:     now,
			DueDate:       now.AddDate(0, 0, opts.DueDays),
			Status:        models.InvoiceDraft,
			Subtotal:      subtotal,
			Tax:           0,
			Total:         subtotal,
			Notes:         opts.Notes,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return storeError("create", "invoice", inv.InvoiceNumber, err)
		}

		for _, j := range jobs {
			link := models.InvoiceJob{ID: uuid.New(), InvoiceID: inv.ID, JobID: j.ID}
			if err := tx.Create(&link).Error; err != nil {
				return storeError("link", "job", j.ID.String(), err)
			}
			inv.Jobs = append(inv.Jobs, link)
		}

		invoice = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// recomputeInvoiceTotals resets subtotal and total to the sum of the
// currently linked jobs' snapshotted prices.
func recomputeInvoiceTotals(tx *gorm.DB, invoice *models.Invoice) error {
	var subtotal float64
	err := tx.Model(&models.Job{}).
		Joins("JOIN invoice_jobs ON invoice_jobs.job_id = jobs.id").
		Where("invoice_jobs.invoice_id = ?", invoice.ID).
		Select("COALESCE(SUM(jobs.total_price), 0)").
		Scan(&subtotal).Error
	if err != nil {
		return storeError("sum", "invoice", invoice.ID.String(), err)
	}

	invoice.Subtotal = round2(subtotal)
	invoice.Total = round2(invoice.Subtotal + invoice.Tax)
	if err := tx.Model(invoice).Updates(map[string]interface{}{
		"subtotal": invoice.Subtotal,
		"total":    invoice.Total,
	}).Error; err != nil {
		return storeError("update", "invoice", invoice.ID.String(), err)
	}
	return nil
}

func fetchDraftInvoice(tx *gorm.DB, invoiceID uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := tx.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "invoice", ID: invoiceID.String()}
		}
		return nil, storeError("fetch", "invoice", invoiceID.String(), err)
	}
	if invoice.Status != models.InvoiceDraft {
		return nil, &ValidationError{Message: "only draft invoices can be edited"}
	}
	return &invoice, nil
}

// AddJobToInvoice links one more completed job to a draft invoice and
// recomputes its totals.
func AddJobToInvoice(db *gorm.DB, invoiceID, jobID uuid.UUID) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := db.Transaction(func(tx *gorm.DB) error {
		inv, err := fetchDraftInvoice(tx, invoiceID)
		if err != nil {
			return err
		}

		var job models.Job
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "job", ID: jobID.String()}
			}
			return storeError("fetch", "job", jobID.String(), err)
		}
		if job.ClientID != inv.ClientID {
			return &ValidationError{Message: "job belongs to a different client"}
		}
		if job.Status != models.JobCompleted {
			return &ValidationError{Message: "only completed jobs can be invoiced"}
		}

		var existing int64
		if err := tx.Model(&models.InvoiceJob{}).Where("job_id = ?", jobID).Count(&existing).Error; err != nil {
			return storeError("scan", "invoice links", jobID.String(), err)
		}
		if existing > 0 {
			return &ValidationError{Message: "job is already invoiced"}
		}

		link := models.InvoiceJob{ID: uuid.New(), InvoiceID: inv.ID, JobID: jobID}
		if err := tx.Create(&link).Error; err != nil {
			return storeError("link", "job", jobID.String(), err)
		}

		if err := recomputeInvoiceTotals(tx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// RemoveJobFromInvoice unlinks a job from a draft invoice and recomputes
// its totals. Removing the last job leaves a permitted zero-total draft.
func RemoveJobFromInvoice(db *gorm.DB, invoiceID, jobID uuid.UUID) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := db.Transaction(func(tx *gorm.DB) error {
		inv, err := fetchDraftInvoice(tx, invoiceID)
		if err != nil {
			return err
		}

		res := tx.Where("invoice_id = ? AND job_id = ?", invoiceID, jobID).Delete(&models.InvoiceJob{})
		if res.Error != nil {
			return storeError("unlink", "job", jobID.String(), res.Error)
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Entity: "invoice job link", ID: jobID.String()}
		}

		if err := recomputeInvoiceTotals(tx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// invoiceTransitions is the closed state machine for persisted invoice
// statuses. Overdue is derived at read time and never appears here.
var invoiceTransitions = map[models.InvoiceStatus][]models.InvoiceStatus{
	models.InvoiceDraft:   {models.InvoicePending, models.InvoiceCancelled},
	models.InvoicePending: {models.InvoicePaid, models.InvoiceCancelled},
}

// UpdateInvoiceStatus applies one transition of the invoice state machine.
func UpdateInvoiceStatus(db *gorm.DB, invoiceID uuid.UUID, next models.InvoiceStatus) (*models.Invoice, error) {
	if !next.Valid() {
		return nil, validationErrorf("invalid invoice status %q", next)
	}

	var invoice models.Invoice
	if err := db.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "invoice", ID: invoiceID.String()}
		}
		return nil, storeError("fetch", "invoice", invoiceID.String(), err)
	}

	allowed := false
	for _, s := range invoiceTransitions[invoice.Status] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, validationErrorf("cannot move invoice from %s to %s", invoice.Status, next)
	}

	invoice.Status = next
	if err := db.Model(&invoice).Update("status", next).Error; err != nil {
		return nil, storeError("update", "invoice", invoiceID.String(), err)
	}
	return &invoice, nil
}

// DeleteInvoice removes a draft or cancelled invoice and frees its job
// links. The invoice number is never reused afterwards.
func DeleteInvoice(db *gorm.DB, invoiceID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, "id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "invoice", ID: invoiceID.String()}
			}
			return storeError("fetch", "invoice", invoiceID.String(), err)
		}
		if invoice.Status != models.InvoiceDraft && invoice.Status != models.InvoiceCancelled {
			return &ValidationError{Message: "only draft or cancelled invoices can be deleted"}
		}

		if err := tx.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceJob{}).Error; err != nil {
			return storeError("unlink", "invoice", invoiceID.String(), err)
		}
		if err := tx.Delete(&invoice).Error; err != nil {
			return storeError("delete", "invoice", invoiceID.String(), err)
		}
		return nil
	})
}
