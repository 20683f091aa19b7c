package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invoice struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	// Sequential INV-NNNNNN number. Numbers are never reused, even after
	// an invoice is deleted; gaps are allowed.
	InvoiceNumber string `gorm:"uniqueIndex;not null" json:"invoiceNumber"`

	PeriodStart string `gorm:"size:10;not null" json:"periodStart"`
	PeriodEnd   string `gorm:"size:10;not null" json:"periodEnd"`

	IssueDate time.Time `json:"issueDate"`
	DueDate   time.Time `json:"dueDate"`

	Status InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`

	Subtotal float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax      float64 `gorm:"type:decimal(10,2);default:0.0" json:"tax"`
	Total    float64 `gorm:"type:decimal(10,2);not null" json:"total"`

	Notes string `json:"notes"`

	Jobs []InvoiceJob `gorm:"foreignKey:InvoiceID" json:"jobs"`

	gorm.Model `json:"-"`
}

// InvoiceJob links a job to the invoice billing it. The unique index on
// JobID makes double-linking a job to two invoices fail loudly.
type InvoiceJob struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`
	JobID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"jobId"`
}

// DisplayStatus derives the read-time status. An invoice shows as overdue
// iff it is pending and its due date is strictly before the start of
// today; overdue is never persisted.
func (i *Invoice) DisplayStatus(today time.Time) InvoiceStatus {
	if i.Status != InvoicePending {
		return i.Status
	}
	startOfDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if i.DueDate.Before(startOfDay) {
		return InvoiceOverdue
	}
	return i.Status
}
