package plan

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/qs3c/salon_go_server/config"
)

// DefaultTiers is used when the configuration declares no plans.
var DefaultTiers = []Details{
	{
		Name:               Gratuito,
		MaxAppointments:    50,
		MaxProfessionals:   1,
		HasFinancialAccess: false,
		HasReports:         false,
		Price:              decimal.Zero,
	},
	{
		Name:               Profissional,
		MaxAppointments:    Unlimited,
		MaxProfessionals:   Unlimited,
		HasFinancialAccess: true,
		HasReports:         true,
		Price:              decimal.RequireFromString("79.90"),
	},
}

// Catalog is the plan table. It is read-only after construction.
type Catalog struct {
	order []Name
	tiers map[Name]Details
}

// NewCatalog builds a catalog from a list of tiers. The first tier is the
// fallback for unknown plan names.
func NewCatalog(tiers []Details) *Catalog {
	c := &Catalog{tiers: make(map[Name]Details, len(tiers))}
	for _, t := range tiers {
		if _, dup := c.tiers[t.Name]; !dup {
			c.order = append(c.order, t.Name)
		}
		c.tiers[t.Name] = t
	}
	return c
}

// CatalogFromConfig reads the plans section, falling back to DefaultTiers.
func CatalogFromConfig(cfg config.PlansConfig) (*Catalog, error) {
	if len(cfg.Tiers) == 0 {
		return NewCatalog(DefaultTiers), nil
	}

	tiers := make([]Details, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		price := decimal.Zero
		if t.Price != "" {
			p, err := decimal.NewFromString(t.Price)
			if err != nil {
				return nil, fmt.Errorf("plan %s: invalid price %q: %w", t.Name, t.Price, err)
			}
			price = p
		}
		tiers = append(tiers, Details{
			Name:               Name(t.Name),
			MaxAppointments:    Limit(t.MaxAppointments),
			MaxProfessionals:   Limit(t.MaxProfessionals),
			HasFinancialAccess: t.HasFinancialAccess,
			HasReports:         t.HasReports,
			Price:              price,
		})
	}
	return NewCatalog(tiers), nil
}

// Lookup returns the plan with the given name. Unknown names resolve to the
// fallback tier and ok=false.
func (c *Catalog) Lookup(name string) (Details, bool) {
	if d, ok := c.tiers[Name(name)]; ok {
		return d, true
	}
	return c.Default(), false
}

// Has reports whether the catalog knows the plan name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.tiers[Name(name)]
	return ok
}

// Default is the entry-level tier.
func (c *Catalog) Default() Details {
	if len(c.order) == 0 {
		return DefaultTiers[0]
	}
	return c.tiers[c.order[0]]
}

// All lists tiers in declaration order.
func (c *Catalog) All() []Details {
	out := make([]Details, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.tiers[n])
	}
	return out
}
