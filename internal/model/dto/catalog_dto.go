package dto

import "github.com/shopspring/decimal"

type CreateServiceRequest struct {
	Name            string          `json:"name" binding:"required,max=120"`
	Description     string          `json:"description,omitempty" binding:"omitempty,max=2000"`
	DurationMinutes int             `json:"duration_minutes" binding:"required,min=5,max=720"`
	Price           decimal.Decimal `json:"price"`
	Active          *bool           `json:"active,omitempty"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty" binding:"omitempty,max=120"`
	Description     *string          `json:"description,omitempty" binding:"omitempty,max=2000"`
	DurationMinutes *int             `json:"duration_minutes,omitempty" binding:"omitempty,min=5,max=720"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

type ServiceItem struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           string `json:"price"`
	Active          bool   `json:"active"`
}
