package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Professional struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name  string `gorm:"not null" json:"name"`
	Phone string `gorm:"not null" json:"phone"`
	Email string `json:"email"`

	// Bank details used when paying out a payment run.
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	SortCode      string `json:"sortCode"`

	RatePerHour          float64  `gorm:"type:decimal(10,2);not null" json:"ratePerHour"`
	DeepCleanRatePerHour *float64 `gorm:"type:decimal(10,2)" json:"deepCleanRatePerHour"`

	Status ProfessionalStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	// Weekday availability controls which days this professional may be
	// assigned to a job. No column defaults; a false must be stored as a
	// false, not swallowed by gorm's zero-value handling.
	WorksMonday    bool `json:"worksMonday"`
	WorksTuesday   bool `json:"worksTuesday"`
	WorksWednesday bool `json:"worksWednesday"`
	WorksThursday  bool `json:"worksThursday"`
	WorksFriday    bool `json:"worksFriday"`
	WorksSaturday  bool `json:"worksSaturday"`
	WorksSunday    bool `json:"worksSunday"`

	gorm.Model `json:"-"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func (p *Professional) HasDeepCleanRate() bool {
	return p.DeepCleanRatePerHour != nil && *p.DeepCleanRatePerHour > 0
}

// AvailableOn reports whether the professional works on the given weekday.
func (p *Professional) AvailableOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return p.WorksMonday
	case time.Tuesday:
		return p.WorksTuesday
	case time.Wednesday:
		return p.WorksWednesday
	case time.Thursday:
		return p.WorksThursday
	case time.Friday:
		return p.WorksFriday
	case time.Saturday:
		return p.WorksSaturday
	case time.Sunday:
		return p.WorksSunday
	}
	return false
}
