package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var resetDate = time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

func finitePlan(max int) Details {
	return Details{Name: Gratuito, MaxAppointments: Limit(max), MaxProfessionals: 1}
}

func TestComputeStatus_AtLimit(t *testing.T) {
	s := ComputeStatus(finitePlan(5), 5, resetDate)

	assert.True(t, s.IsLimitReached)
	assert.Equal(t, 100, s.PercentUsed)
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, resetDate, s.NextResetDate)
}

func TestComputeStatus_PartialUsage(t *testing.T) {
	s := ComputeStatus(finitePlan(5), 3, resetDate)

	assert.False(t, s.IsLimitReached)
	assert.Equal(t, 60, s.PercentUsed)
	assert.Equal(t, 2, s.Remaining())
}

func TestComputeStatus_FloorsPercent(t *testing.T) {
	s := ComputeStatus(finitePlan(3), 2, resetDate)
	assert.Equal(t, 66, s.PercentUsed)

	s = ComputeStatus(finitePlan(50), 49, resetDate)
	assert.Equal(t, 98, s.PercentUsed)
	assert.False(t, s.IsLimitReached)
}

func TestComputeStatus_OverLimitClamped(t *testing.T) {
	s := ComputeStatus(finitePlan(5), 12, resetDate)

	assert.Equal(t, 100, s.PercentUsed)
	assert.True(t, s.IsLimitReached)
	assert.Equal(t, 0, s.Remaining())
}

func TestComputeStatus_NegativeUsageTreatedAsZero(t *testing.T) {
	s := ComputeStatus(finitePlan(5), -4, resetDate)

	assert.Equal(t, 0, s.UsedAppointments)
	assert.Equal(t, 0, s.PercentUsed)
	assert.False(t, s.IsLimitReached)
}

func TestComputeStatus_ZeroQuota(t *testing.T) {
	s := ComputeStatus(finitePlan(0), 0, resetDate)

	assert.True(t, s.IsLimitReached)
	assert.Equal(t, 100, s.PercentUsed)
}

func TestComputeStatus_Unlimited(t *testing.T) {
	p := Details{Name: Profissional, MaxAppointments: Unlimited, MaxProfessionals: Unlimited}

	for _, used := range []int{0, 1, 50, 10_000} {
		s := ComputeStatus(p, used, resetDate)
		assert.False(t, s.IsLimitReached, "used=%d", used)
		assert.Equal(t, 0, s.PercentUsed, "used=%d", used)
		assert.Equal(t, -1, s.Remaining())
		assert.False(t, s.ShouldPromptUpgrade())
	}
}

func TestComputeStatus_FinitePlanProperties(t *testing.T) {
	for max := 1; max <= 40; max++ {
		for used := 0; used <= max*2; used++ {
			s := ComputeStatus(finitePlan(max), used, resetDate)
			assert.GreaterOrEqual(t, s.PercentUsed, 0)
			assert.LessOrEqual(t, s.PercentUsed, 100)
			if s.PercentUsed == 100 {
				assert.True(t, s.IsLimitReached, "max=%d used=%d", max, used)
			}
			assert.Equal(t, used >= max, s.IsLimitReached, "max=%d used=%d", max, used)
		}
	}
}

func TestStatus_ShouldPromptUpgrade(t *testing.T) {
	assert.False(t, ComputeStatus(finitePlan(10), 7, resetDate).ShouldPromptUpgrade())
	assert.True(t, ComputeStatus(finitePlan(10), 8, resetDate).ShouldPromptUpgrade())
	assert.True(t, ComputeStatus(finitePlan(10), 10, resetDate).ShouldPromptUpgrade())
}

func TestNextReset(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata not available")
	}

	from := time.Date(2026, 10, 19, 15, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, loc), NextReset(from))

	dec := time.Date(2026, 12, 31, 23, 59, 0, 0, loc)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, loc), NextReset(dec))

	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, loc), CycleStart(from))
}
