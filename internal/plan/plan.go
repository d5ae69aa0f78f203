// Package plan holds the subscription plan table and the usage accounting
// derived from it. Everything here is pure: callers load the subscription
// record and pass the numbers in.
package plan

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Name identifies a plan tier.
type Name string

const (
	Gratuito     Name = "Gratuito"
	Profissional Name = "Profissional"
)

// Limit is a per-cycle or per-roster cap. Unlimited means no cap.
type Limit int

// Unlimited is the sentinel for plans without a cap. Zero stays a real cap.
const Unlimited Limit = -1

func (l Limit) IsUnlimited() bool {
	return l < 0
}

// Allows reports whether n units fit under the limit.
func (l Limit) Allows(n int) bool {
	return l.IsUnlimited() || n < int(l)
}

func (l Limit) String() string {
	if l.IsUnlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("%d", int(l))
}

// Feature is a premium capability unlocked by a plan.
type Feature string

const (
	FeatureFinancial              Feature = "financial"
	FeatureReports                Feature = "reports"
	FeatureUnlimitedProfessionals Feature = "unlimited_professionals"
)

// Features lists every gated feature in display order.
var Features = []Feature{FeatureFinancial, FeatureReports, FeatureUnlimitedProfessionals}

// Details is the immutable reference record of one plan tier.
type Details struct {
	Name               Name            `json:"name"`
	MaxAppointments    Limit           `json:"max_appointments"`
	MaxProfessionals   Limit           `json:"max_professionals"`
	HasFinancialAccess bool            `json:"has_financial_access"`
	HasReports         bool            `json:"has_reports"`
	Price              decimal.Decimal `json:"price"`
}

// HasFeature is a static lookup on the plan; usage never changes the answer.
func (d Details) HasFeature(f Feature) bool {
	switch f {
	case FeatureFinancial:
		return d.HasFinancialAccess
	case FeatureReports:
		return d.HasReports
	case FeatureUnlimitedProfessionals:
		return d.MaxProfessionals.IsUnlimited()
	default:
		return false
	}
}

// FeatureMatrix returns the on/off state of every feature.
func (d Details) FeatureMatrix() map[Feature]bool {
	m := make(map[Feature]bool, len(Features))
	for _, f := range Features {
		m[f] = d.HasFeature(f)
	}
	return m
}

// CanAddProfessional reports whether a roster of current professionals can grow by one.
func (d Details) CanAddProfessional(current int) bool {
	return d.MaxProfessionals.Allows(current)
}

// ValidationError reports malformed input to the accounting functions.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateUsage rejects negative usage counts.
func ValidateUsage(used int) error {
	if used < 0 {
		return &ValidationError{Field: "used_appointments", Reason: "must not be negative"}
	}
	return nil
}
