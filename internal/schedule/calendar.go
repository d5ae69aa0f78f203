package schedule

import (
	"sort"
	"time"
)

// Grid is the calendar projection: one row per hour, one column per professional.
type Grid struct {
	Hours   []int                           `json:"hours"`
	Columns []Professional                  `json:"columns"`
	Cells   map[int]map[int64][]Appointment `json:"cells"`
}

// Cell returns the appointments starting in hour for a professional.
func (g Grid) Cell(hour int, professionalID int64) []Appointment {
	row, ok := g.Cells[hour]
	if !ok {
		return nil
	}
	return row[professionalID]
}

// Count is the number of appointments placed on the grid.
func (g Grid) Count() int {
	n := 0
	for _, row := range g.Cells {
		for _, cell := range row {
			n += len(cell)
		}
	}
	return n
}

// ProjectCalendar places each appointment in the cell of its starting hour
// (in loc) and its professional. Appointments outside hours, or for a
// professional missing from the roster, are left off the grid; the list view
// still shows them. Appointments running past the hour boundary stay in
// their starting cell. Cells are ordered by minute, then start time, then ID.
func ProjectCalendar(appointments []Appointment, professionals []Professional, hours HourRange, loc *time.Location) Grid {
	if loc == nil {
		loc = time.UTC
	}

	columns := make([]Professional, len(professionals))
	copy(columns, professionals)

	roster := make(map[int64]struct{}, len(columns))
	for _, p := range columns {
		roster[p.ID] = struct{}{}
	}

	grid := Grid{
		Hours:   hours.Hours(),
		Columns: columns,
		Cells:   make(map[int]map[int64][]Appointment, len(hours.Hours())),
	}
	for _, h := range grid.Hours {
		row := make(map[int64][]Appointment, len(columns))
		for _, p := range columns {
			row[p.ID] = []Appointment{}
		}
		grid.Cells[h] = row
	}

	for _, a := range appointments {
		hour := a.StartsAt.In(loc).Hour()
		if !hours.Contains(hour) {
			continue
		}
		if _, ok := roster[a.ProfessionalID]; !ok {
			continue
		}
		grid.Cells[hour][a.ProfessionalID] = append(grid.Cells[hour][a.ProfessionalID], a)
	}

	for _, row := range grid.Cells {
		for _, cell := range row {
			sortCell(cell, loc)
		}
	}

	return grid
}

func sortCell(cell []Appointment, loc *time.Location) {
	sort.SliceStable(cell, func(i, j int) bool {
		mi, mj := cell[i].StartsAt.In(loc).Minute(), cell[j].StartsAt.In(loc).Minute()
		if mi != mj {
			return mi < mj
		}
		if !cell[i].StartsAt.Equal(cell[j].StartsAt) {
			return cell[i].StartsAt.Before(cell[j].StartsAt)
		}
		return cell[i].ID < cell[j].ID
	})
}
