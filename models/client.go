package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name     string `gorm:"not null" json:"name"`
	Phone    string `gorm:"not null" json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
	Notes    string `json:"notes"`

	// Hourly rate charged to this client for a regular clean. Deep-clean
	// jobs require the override to be set and positive.
	PricePerHour          float64  `gorm:"type:decimal(10,2);not null" json:"pricePerHour"`
	DeepCleanPricePerHour *float64 `gorm:"type:decimal(10,2)" json:"deepCleanPricePerHour"`

	Status ClientStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	Jobs     []Job     `gorm:"foreignKey:ClientID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"-"`

	gorm.Model `json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// HasDeepCleanRate reports whether deep-clean jobs may be booked for
// this client.
func (c *Client) HasDeepCleanRate() bool {
	return c.DeepCleanPricePerHour != nil && *c.DeepCleanPricePerHour > 0
}
