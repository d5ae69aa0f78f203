package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roster = []Professional{
	{ID: 1, Name: "Ana", Specialty: "Cabelo", Available: true},
	{ID: 2, Name: "Bruna", Specialty: "Unhas", Available: true},
}

var workday = HourRange{Start: 8, End: 20}

func TestProjectCalendar_PartitionsByHourAndProfessional(t *testing.T) {
	grid := ProjectCalendar(sampleAppointments(), roster, workday, time.UTC)

	assert.Equal(t, 12, len(grid.Hours))
	assert.Equal(t, roster, grid.Columns)
	assert.Equal(t, 5, grid.Count())

	assert.Equal(t, []int64{1}, ids(grid.Cell(9, 1)))
	assert.Equal(t, []int64{2}, ids(grid.Cell(10, 2)))
	assert.Equal(t, []int64{3}, ids(grid.Cell(8, 2)))
	assert.Equal(t, []int64{4}, ids(grid.Cell(14, 1)))
	assert.Empty(t, grid.Cell(9, 2))
}

func TestProjectCalendar_OutOfRangeOmittedButListed(t *testing.T) {
	late := Appointment{ID: 9, StartsAt: at(21, 0), ProfessionalID: 1, DurationMinutes: 30, Status: StatusConfirmed}
	appts := append(sampleAppointments(), late)

	grid := ProjectCalendar(appts, roster, workday, time.UTC)

	for _, h := range grid.Hours {
		for _, p := range roster {
			for _, a := range grid.Cell(h, p.ID) {
				assert.NotEqual(t, int64(9), a.ID)
			}
		}
	}
	assert.Nil(t, grid.Cell(21, 1))
	assert.Contains(t, ids(ListView(appts)), int64(9))
}

func TestProjectCalendar_NoSplitAcrossHours(t *testing.T) {
	// 90-minute service starting at 16:45
	grid := ProjectCalendar(sampleAppointments(), roster, workday, time.UTC)

	assert.Equal(t, []int64{5}, ids(grid.Cell(16, 2)))
	assert.Empty(t, grid.Cell(17, 2))
	assert.Empty(t, grid.Cell(18, 2))
}

func TestProjectCalendar_CellOrderIsDeterministic(t *testing.T) {
	appts := []Appointment{
		{ID: 7, StartsAt: at(9, 40), ProfessionalID: 1},
		{ID: 3, StartsAt: at(9, 10), ProfessionalID: 1},
		{ID: 5, StartsAt: at(9, 10), ProfessionalID: 1},
		{ID: 1, StartsAt: at(9, 55), ProfessionalID: 1},
	}

	grid := ProjectCalendar(appts, roster, workday, time.UTC)
	assert.Equal(t, []int64{3, 5, 7, 1}, ids(grid.Cell(9, 1)))

	// reversed input gives the same cell
	reversed := []Appointment{appts[3], appts[2], appts[1], appts[0]}
	grid2 := ProjectCalendar(reversed, roster, workday, time.UTC)
	assert.Equal(t, ids(grid.Cell(9, 1)), ids(grid2.Cell(9, 1)))
}

func TestProjectCalendar_Idempotent(t *testing.T) {
	appts := sampleAppointments()
	before := append([]Appointment(nil), appts...)

	g1 := ProjectCalendar(appts, roster, workday, time.UTC)
	g2 := ProjectCalendar(appts, roster, workday, time.UTC)

	assert.Equal(t, g1, g2)
	assert.Equal(t, before, appts)
}

func TestProjectCalendar_UnknownProfessionalOmitted(t *testing.T) {
	appts := []Appointment{{ID: 1, StartsAt: at(9, 0), ProfessionalID: 99}}

	grid := ProjectCalendar(appts, roster, workday, time.UTC)
	assert.Equal(t, 0, grid.Count())
}

func TestProjectCalendar_UsesLocationForHour(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	// 12:00 UTC is 09:00 BRT
	appts := []Appointment{{ID: 1, StartsAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), ProfessionalID: 1}}

	grid := ProjectCalendar(appts, roster, workday, loc)

	require.Len(t, grid.Cell(9, 1), 1)
	assert.Empty(t, grid.Cell(12, 1))
}

func TestProjectCalendar_EmptyCellsPresentForRoster(t *testing.T) {
	grid := ProjectCalendar(nil, roster, HourRange{Start: 8, End: 10}, nil)

	require.Len(t, grid.Cells, 2)
	for _, h := range []int{8, 9} {
		require.Len(t, grid.Cells[h], 2)
		assert.NotNil(t, grid.Cells[h][1])
		assert.Empty(t, grid.Cells[h][1])
	}
}
