package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Candidate is a program participant, the root entity all others reference.
// State/district/taluk are derived from pin_code via the geo lookup and are
// never taken from the caller. Candidates are soft-deleted by flipping
// status to Inactive; the row is never removed.
type Candidate struct {
	ID               string          `gorm:"type:uuid;primaryKey"  json:"id"`
	Name             string          `gorm:"size:120;not null"     json:"name"`
	Contact          string          `gorm:"size:15;not null;index" json:"contact"`
	Gender           Gender          `gorm:"size:10;not null"      json:"gender"`
	BusinessType     StringList      `gorm:"type:jsonb"            json:"business_type"`
	State            string          `gorm:"size:100;not null"     json:"state"`
	District         string          `gorm:"size:100;not null"     json:"district"`
	Taluk            string          `gorm:"size:100;not null"     json:"taluk"`
	PinCode          string          `gorm:"size:10;not null"      json:"pin_code"`
	UdyamCertificate bool            `gorm:"not null"              json:"udyam_certificate"`
	PhoneType        PhoneType       `gorm:"size:20;not null"      json:"phone_type"`
	DisabilityCat    bool            `gorm:"not null"              json:"disability_cat"`
	Status           CandidateStatus `gorm:"size:10;not null"      json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (Candidate) TableName() string { return "candidates" }

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
