package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assessment is one training evaluation event for a candidate.
type Assessment struct {
	ID          string    `gorm:"type:uuid;primaryKey"       json:"id"`
	CandidateID string    `gorm:"type:uuid;not null;index"   json:"candidate_id"`
	Training    string    `gorm:"size:120;not null"          json:"training"`
	Date        string    `gorm:"size:10;not null"           json:"date"` // YYYY-MM-DD
	Status      string    `gorm:"size:50"                    json:"status"`
	Mark        *float64  `json:"mark"`
	Remarks     string    `gorm:"size:255"                   json:"remarks"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Assessment) TableName() string { return "assessment" }

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
