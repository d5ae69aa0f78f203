package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is an entry of the salon's service catalog (cut, manicure, ...).
type Service struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	CompanyID       int64           `gorm:"not null;index" json:"company_id"`
	Name            string          `gorm:"size:120;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Active          bool            `gorm:"not null" json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Service) TableName() string {
	return "services"
}
