// Package schedule projects appointments onto the dashboard's calendar grid
// and list views. All functions are pure and never modify their inputs.
package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Appointment is the slice of an appointment record the views need.
type Appointment struct {
	ID              int64     `json:"id"`
	StartsAt        time.Time `json:"starts_at"`
	ClientID        int64     `json:"client_id"`
	ProfessionalID  int64     `json:"professional_id"`
	ServiceID       int64     `json:"service_id"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          Status    `json:"status"`
}

// EndsAt is the start time plus the service duration.
func (a Appointment) EndsAt() time.Time {
	return a.StartsAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Professional is a roster entry shown as a calendar column.
type Professional struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Available bool   `json:"available"`
}

// Filter narrows a list of appointments. Nil fields match everything.
type Filter struct {
	ProfessionalID *int64
	Status         *Status
}

// Matches is the conjunction of the set criteria.
func (f Filter) Matches(a Appointment) bool {
	if f.ProfessionalID != nil && a.ProfessionalID != *f.ProfessionalID {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	return true
}

// FilterAppointments returns the appointments matching f in their original order.
func FilterAppointments(appointments []Appointment, f Filter) []Appointment {
	out := make([]Appointment, 0, len(appointments))
	for _, a := range appointments {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// ListView returns a chronologically sorted copy: start time, then ID.
func ListView(appointments []Appointment) []Appointment {
	out := make([]Appointment, len(appointments))
	copy(out, appointments)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// HourRange is the half-open range [Start, End) of hours shown on the grid.
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r HourRange) Validate() error {
	if r.Start < 0 || r.End > 24 || r.Start >= r.End {
		return fmt.Errorf("invalid hour range [%d,%d)", r.Start, r.End)
	}
	return nil
}

func (r HourRange) Contains(hour int) bool {
	return hour >= r.Start && hour < r.End
}

// Hours enumerates the hours in the range.
func (r HourRange) Hours() []int {
	if r.End <= r.Start {
		return nil
	}
	hours := make([]int, 0, r.End-r.Start)
	for h := r.Start; h < r.End; h++ {
		hours = append(hours, h)
	}
	return hours
}

// DayBounds returns [midnight, next midnight) of date's calendar day in loc.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
