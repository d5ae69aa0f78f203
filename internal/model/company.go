package model

import (
	"time"
)

type Company struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Timezone    string    `gorm:"size:64;default:America/Sao_Paulo" json:"timezone"`
	OpeningHour int       `json:"opening_hour"`
	ClosingHour int       `json:"closing_hour"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// Location resolves the company's timezone, falling back to fallback.
func (c *Company) Location(fallback *time.Location) *time.Location {
	if c.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
