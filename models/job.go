package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is the central ledger-feeding entity. TotalPrice, Cost and
// ProfessionalCosts are snapshots computed from the rates in effect at
// creation/last financial update; they are never recomputed when client
// or professional rates change later, so historical invoices and payment
// runs stay accurate.
type Job struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	// Anchor date as a YYYY-MM-DD calendar string. For recurring jobs this
	// is the first occurrence; weekly occurrences fall on the same weekday.
	Date      string `gorm:"size:10;index;not null" json:"date"`
	StartTime string `gorm:"size:5" json:"startTime"`

	DurationHours float64     `gorm:"type:decimal(10,2);not null" json:"durationHours"`
	Type          JobType     `gorm:"type:varchar(20);not null" json:"type"`
	ServiceKind   ServiceKind `gorm:"type:varchar(20);not null;default:'regular'" json:"serviceKind"`
	Status        JobStatus   `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`

	TotalPrice        float64              `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	Cost              float64              `gorm:"type:decimal(10,2);not null" json:"cost"`
	ProfessionalCosts ProfessionalCostList `gorm:"type:jsonb" json:"professionalCosts"`

	// Per-date status overrides for recurring jobs, keyed by YYYY-MM-DD.
	OccurrenceStatuses OccurrenceStatusMap `gorm:"type:jsonb" json:"occurrenceStatuses"`

	Notes string `json:"notes"`

	Assignments []JobProfessional `gorm:"foreignKey:JobID" json:"assignments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobProfessional links a job to one assigned professional. Position
// preserves the order the assignees were supplied in.
type JobProfessional struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	JobID          uuid.UUID `gorm:"type:uuid;index;not null" json:"jobId"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null" json:"professionalId"`
	Position       int       `gorm:"not null" json:"position"`
}

// ProfessionalIDs returns the ordered assignee ids.
func (j *Job) ProfessionalIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(j.Assignments))
	for _, a := range j.Assignments {
		ids = append(ids, a.ProfessionalID)
	}
	return ids
}
