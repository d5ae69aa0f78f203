package model

import (
	"time"

	"gorm.io/gorm"
)

type Client struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	CompanyID int64          `gorm:"not null;index" json:"company_id"`
	Name      string         `gorm:"size:120;not null;index" json:"name"`
	Email     string         `gorm:"size:100" json:"email,omitempty"`
	Phone     string         `gorm:"size:30" json:"phone,omitempty"`
	BirthDate *time.Time     `json:"birth_date,omitempty"`
	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Client) TableName() string {
	return "clients"
}
