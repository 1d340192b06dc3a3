package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance is one attendance record for a candidate at a session.
type Attendance struct {
	ID          string     `gorm:"type:uuid;primaryKey"     json:"id"`
	CandidateID string     `gorm:"type:uuid;not null;index" json:"candidate_id"`
	SessionName StringList `gorm:"type:jsonb"               json:"session_name"`
	Attended    bool       `gorm:"not null"                 json:"attended"`
	Date        string     `gorm:"size:10;not null"         json:"date"` // YYYY-MM-DD
	Remarks     string     `gorm:"size:255"                 json:"remarks"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Attendance) TableName() string { return "attendance" }

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
