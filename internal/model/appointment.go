package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Appointment struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	CompanyID       int64           `gorm:"not null;index:idx_company_starts" json:"company_id"`
	ClientID        int64           `gorm:"not null;index" json:"client_id"`
	ProfessionalID  int64           `gorm:"not null;index" json:"professional_id"`
	ServiceID       int64           `gorm:"not null" json:"service_id"`
	StartsAt        time.Time       `gorm:"not null;index:idx_company_starts" json:"starts_at"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Status          string          `gorm:"size:20;default:pending;index" json:"status"` // pending, confirmed, completed, cancelled, no_show
	Price           decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	Client       *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Professional *Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Service      *Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
