package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is one snapshot of a candidate's business metrics. All counters
// are nullable; absent means "not captured", not zero.
type Business struct {
	ID              string    `gorm:"type:uuid;primaryKey"     json:"id"`
	CandidateID     string    `gorm:"type:uuid;not null;index" json:"candidate_id"`
	CustomersBefore *int      `json:"customers_before"`
	CustomersAfter  *int      `json:"customers_after"`
	IncomeBefore    *float64  `json:"income_before"`
	IncomeAfter     *float64  `json:"income_after"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Business) TableName() string { return "business" }

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
