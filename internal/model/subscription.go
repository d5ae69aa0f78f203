package model

import (
	"time"
)

type Subscription struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	CompanyID        int64     `gorm:"not null;uniqueIndex" json:"company_id"`
	Plan             string    `gorm:"size:30;not null;default:Gratuito" json:"plan"` // Gratuito, Profissional
	UsedAppointments int       `gorm:"not null;default:0" json:"used_appointments"`
	CycleStartedAt   time.Time `gorm:"not null" json:"cycle_started_at"`
	NextResetAt      time.Time `gorm:"not null;index" json:"next_reset_at"`
	Status           string    `gorm:"size:20;default:active;index" json:"status"` // active, cancelled
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
