package plan

import "time"

// UpgradeThreshold is the percent of quota at which the dashboard starts
// suggesting an upgrade.
const UpgradeThreshold = 80

// Status is the derived view of a company's usage in the current cycle.
type Status struct {
	Plan             Details   `json:"plan"`
	UsedAppointments int       `json:"used_appointments"`
	MaxAppointments  Limit     `json:"max_appointments"`
	PercentUsed      int       `json:"percent_used"`
	NextResetDate    time.Time `json:"next_reset_date"`
	IsLimitReached   bool      `json:"is_limit_reached"`
}

// ComputeStatus derives the usage status for a plan. It never fails:
// negative usage counts as zero.
func ComputeStatus(p Details, usedAppointments int, nextResetDate time.Time) Status {
	if usedAppointments < 0 {
		usedAppointments = 0
	}

	s := Status{
		Plan:             p,
		UsedAppointments: usedAppointments,
		MaxAppointments:  p.MaxAppointments,
		NextResetDate:    nextResetDate,
	}

	if p.MaxAppointments.IsUnlimited() {
		return s
	}

	max := int(p.MaxAppointments)
	if max == 0 {
		// a zero quota is exhausted from the start
		s.PercentUsed = 100
		s.IsLimitReached = true
		return s
	}

	percent := usedAppointments * 100 / max
	if percent > 100 {
		percent = 100
	}
	s.PercentUsed = percent
	s.IsLimitReached = usedAppointments >= max
	return s
}

// Remaining returns how many appointments are left in the cycle, or -1 when unlimited.
func (s Status) Remaining() int {
	if s.MaxAppointments.IsUnlimited() {
		return -1
	}
	left := int(s.MaxAppointments) - s.UsedAppointments
	if left < 0 {
		return 0
	}
	return left
}

// ShouldPromptUpgrade tells the dashboard to show the upgrade call-to-action.
func (s Status) ShouldPromptUpgrade() bool {
	if s.MaxAppointments.IsUnlimited() {
		return false
	}
	return s.IsLimitReached || s.PercentUsed >= UpgradeThreshold
}

// NextReset returns the start of the month following from, in from's location.
// Billing cycles are calendar months.
func NextReset(from time.Time) time.Time {
	return time.Date(from.Year(), from.Month()+1, 1, 0, 0, 0, 0, from.Location())
}

// CycleStart returns the start of the month containing t.
func CycleStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
