package model

import (
	"time"

	"gorm.io/gorm"
)

type Professional struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	CompanyID int64          `gorm:"not null;index" json:"company_id"`
	Name      string         `gorm:"size:120;not null" json:"name"`
	Specialty string         `gorm:"size:120" json:"specialty"`
	Email     string         `gorm:"size:100" json:"email,omitempty"`
	Phone     string         `gorm:"size:30" json:"phone,omitempty"`
	Available bool           `gorm:"not null" json:"available"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Professional) TableName() string {
	return "professionals"
}
