package dto

import "time"

type CreateAppointmentRequest struct {
	ClientID        int64     `json:"client_id" binding:"required,min=1"`
	ProfessionalID  int64     `json:"professional_id" binding:"required,min=1"`
	ServiceID       int64     `json:"service_id" binding:"required,min=1"`
	StartsAt        time.Time `json:"starts_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes,omitempty" binding:"omitempty,min=5,max=720"`
	Notes           string    `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

type UpdateAppointmentRequest struct {
	ProfessionalID  *int64     `json:"professional_id,omitempty" binding:"omitempty,min=1"`
	ServiceID       *int64     `json:"service_id,omitempty" binding:"omitempty,min=1"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" binding:"omitempty,min=5,max=720"`
	Notes           *string    `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled no_show"`
}

// AppointmentItem is one row of the list view.
type AppointmentItem struct {
	ID               int64  `json:"id"`
	ClientID         int64  `json:"client_id"`
	ClientName       string `json:"client_name,omitempty"`
	ProfessionalID   int64  `json:"professional_id"`
	ProfessionalName string `json:"professional_name,omitempty"`
	ServiceID        int64  `json:"service_id"`
	ServiceName      string `json:"service_name,omitempty"`
	StartsAt         string `json:"starts_at"`
	EndsAt           string `json:"ends_at"`
	DurationMinutes  int    `json:"duration_minutes"`
	Status           string `json:"status"`
	Price            string `json:"price"`
	Notes            string `json:"notes,omitempty"`
	// AllowedStatuses are the statuses the appointment may move to next.
	AllowedStatuses []string `json:"allowed_statuses,omitempty"`
}

// CalendarCell is one hour x professional slot of the calendar.
type CalendarCell struct {
	Hour           int                `json:"hour"`
	ProfessionalID int64              `json:"professional_id"`
	Appointments   []*AppointmentItem `json:"appointments"`
}

// CalendarResponse is the calendar view of one day.
type CalendarResponse struct {
	Date     string              `json:"date"`
	Timezone string              `json:"timezone"`
	Hours    []int               `json:"hours"`
	Columns  []*ProfessionalItem `json:"columns"`
	Cells    []*CalendarCell     `json:"cells"`
	// Unplaced holds the day's appointments that fall outside the grid.
	Unplaced []*AppointmentItem `json:"unplaced"`
}
