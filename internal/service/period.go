package service

import (
	"time"

	"github.com/qs3c/salon_go_server/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	maxPeriodDays  = 366
	defaultPerPage = 20
	maxPerPage     = 100
)

// locator resolves a company and the timezone its dashboard works in.
type locator struct {
	companies CompanyStore
	fallback  *time.Location
}

func (l locator) company(companyID int64) (*model.Company, *time.Location, error) {
	company, err := l.companies.GetByID(companyID)
	if err != nil {
		return nil, nil, storeErr("get company", err, ErrCompanyNotFound)
	}
	return company, company.Location(l.fallback), nil
}

// Period is the half-open range [From, To).
type Period struct {
	From time.Time
	To   time.Time
}

// parsePeriod reads inclusive YYYY-MM-DD bounds in loc. Missing bounds default
// to the month containing now.
func parsePeriod(from, to string, now time.Time, loc *time.Location) (Period, error) {
	local := now.In(loc)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

	p := Period{From: monthStart, To: monthStart.AddDate(0, 1, 0)}

	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return Period{}, invalid("from must be YYYY-MM-DD")
		}
		p.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return Period{}, invalid("to must be YYYY-MM-DD")
		}
		p.To = t.AddDate(0, 0, 1)
	}

	if !p.From.Before(p.To) {
		return Period{}, invalid("from must not be after to")
	}
	if p.To.Sub(p.From) > maxPeriodDays*24*time.Hour+time.Hour {
		return Period{}, invalid("period longer than %d days", maxPeriodDays)
	}
	return p, nil
}

// parseDay reads a YYYY-MM-DD date in loc, defaulting to today.
func parseDay(day string, now time.Time, loc *time.Location) (time.Time, error) {
	if day == "" {
		n := now.In(loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(dateLayout, day, loc)
	if err != nil {
		return time.Time{}, invalid("date must be YYYY-MM-DD")
	}
	return t, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPerPage
	}
	if pageSize > maxPerPage {
		pageSize = maxPerPage
	}
	return page, pageSize
}
