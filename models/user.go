package models

import "time"

// User backs the operator login. Entity endpoints do not check tokens;
// the account exists for the seeded admin and the /admin/login flow.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:60;not null"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"`
	Role         string    `json:"role" gorm:"size:20;not null"` // "admin"
	CreatedAt    time.Time `json:"created_at"`
}
