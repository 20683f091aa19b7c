package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRun is a payroll batch of per-professional amounts owed for
// completed work in a period.
type PaymentRun struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	PeriodStart string `gorm:"size:10;not null" json:"periodStart"`
	PeriodEnd   string `gorm:"size:10;not null" json:"periodEnd"`

	Items []PaymentRunItem `gorm:"foreignKey:PaymentRunID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
}

// PaymentRunItem holds one professional's total for the run. Amount is
// frozen at run-creation time; marking the item paid only flips status
// and timestamp.
type PaymentRunItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PaymentRunID   uuid.UUID `gorm:"type:uuid;index;not null" json:"paymentRunId"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null" json:"professionalId"`

	Amount float64           `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status PaymentItemStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt *time.Time        `json:"paidAt"`
}
