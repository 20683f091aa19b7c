package models

import (
	"time"

	"github.com/google/uuid"
)

// ReminderLog records an overdue-invoice notice sent to a client.
type ReminderLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	Message      string    `json:"message"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // 'sms' or 'whatsapp'
	Status       string    `gorm:"type:varchar(20)" json:"status"`  // 'sent' or 'failed'
	ErrorMessage string    `json:"errorMessage"`
	SentAt       time.Time `json:"sentAt"`
}
