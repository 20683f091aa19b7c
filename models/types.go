package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// ServiceKind selects which rate pair (client/professional) applies.
type ServiceKind string

const (
	ServiceRegular   ServiceKind = "regular"
	ServiceDeepClean ServiceKind = "deep_clean"
)

func (k ServiceKind) Valid() bool {
	return k == ServiceRegular || k == ServiceDeepClean
}

type JobType string

const (
	JobOneTime   JobType = "one_time"
	JobRecurring JobType = "recurring"
)

func (t JobType) Valid() bool {
	return t == JobOneTime || t == JobRecurring
}

type JobStatus string

const (
	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobScheduled, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

func (s ClientStatus) Valid() bool {
	return s == ClientActive || s == ClientInactive
}

type ProfessionalStatus string

const (
	ProfessionalActive   ProfessionalStatus = "active"
	ProfessionalVacation ProfessionalStatus = "vacation"
	ProfessionalInactive ProfessionalStatus = "inactive"
)

func (s ProfessionalStatus) Valid() bool {
	switch s {
	case ProfessionalActive, ProfessionalVacation, ProfessionalInactive:
		return true
	}
	return false
}

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
	// InvoiceOverdue is display-only, never persisted.
	InvoiceOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoicePending, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

type PaymentItemStatus string

const (
	PaymentItemPending PaymentItemStatus = "pending"
	PaymentItemPaid    PaymentItemStatus = "paid"
)

// ProfessionalCost is one line of a job's per-professional cost breakdown.
type ProfessionalCost struct {
	ProfessionalID uuid.UUID `json:"professionalId"`
	Cost           float64   `json:"cost"`
}

// ProfessionalCostList is stored as a JSON column on jobs.
type ProfessionalCostList []ProfessionalCost

func (l ProfessionalCostList) Value() (driver.Value, error) {
	if l == nil {
		l = ProfessionalCostList{}
	}
	return json.Marshal(l)
}

func (l *ProfessionalCostList) Scan(value interface{}) error {
	if value == nil {
		*l = ProfessionalCostList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// OccurrenceStatusMap overrides a recurring job's status for specific
// calendar dates, keyed by YYYY-MM-DD.
type OccurrenceStatusMap map[string]JobStatus

func (m OccurrenceStatusMap) Value() (driver.Value, error) {
	if m == nil {
		m = OccurrenceStatusMap{}
	}
	return json.Marshal(m)
}

func (m *OccurrenceStatusMap) Scan(value interface{}) error {
	if value == nil {
		*m = OccurrenceStatusMap{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, m)
}
