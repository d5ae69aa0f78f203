package dto

// PlanInfo is the public view of a plan tier.
type PlanInfo struct {
	Name               string `json:"name"`
	MaxAppointments    int    `json:"max_appointments"`  // -1 = unlimited
	MaxProfessionals   int    `json:"max_professionals"` // -1 = unlimited
	HasFinancialAccess bool   `json:"has_financial_access"`
	HasReports         bool   `json:"has_reports"`
	Price              string `json:"price"`
}

// SubscriptionStatus is what the dashboard's usage card and gates render from.
type SubscriptionStatus struct {
	Plan                PlanInfo        `json:"plan"`
	UsedAppointments    int             `json:"used_appointments"`
	MaxAppointments     int             `json:"max_appointments"`
	Remaining           int             `json:"remaining"`
	PercentUsed         int             `json:"percent_used"`
	NextResetDate       string          `json:"next_reset_date"`
	IsLimitReached      bool            `json:"is_limit_reached"`
	ShouldPromptUpgrade bool            `json:"should_prompt_upgrade"`
	Features            map[string]bool `json:"features"`
}

// ChangePlanRequest asks to move the company to another plan.
type ChangePlanRequest struct {
	Plan string `json:"plan" binding:"required,max=30"`
}
