package model

import (
	"time"
)

// Profile links a hosted-auth user to the company they work for.
type Profile struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CompanyID int64     `gorm:"not null;index" json:"company_id"`
	Email     string    `gorm:"size:100;uniqueIndex" json:"email"`
	FullName  string    `gorm:"size:120" json:"full_name"`
	Role      string    `gorm:"size:20;default:owner" json:"role"` // owner, staff
	CreatedAt time.Time `json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
