package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
	"github.com/qs3c/salon_go_server/internal/plan"
)

const resetBatchSize = 100

// SubscriptionService tracks each company's plan and appointment usage for the
// current billing cycle.
type SubscriptionService struct {
	subs       SubscriptionStore
	companies  CompanyStore
	pros       ProfessionalStore
	catalog    *plan.Catalog
	cache      StatusCache
	events     EventPublisher
	defaultLoc *time.Location
	now        func() time.Time
}

func NewSubscriptionService(
	subs SubscriptionStore,
	companies CompanyStore,
	pros ProfessionalStore,
	catalog *plan.Catalog,
	cache StatusCache,
	events EventPublisher,
	defaultLoc *time.Location,
) *SubscriptionService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &SubscriptionService{
		subs:       subs,
		companies:  companies,
		pros:       pros,
		catalog:    catalog,
		cache:      cache,
		events:     events,
		defaultLoc: defaultLoc,
		now:        time.Now,
	}
}

// Plans lists the plan table for the pricing page.
func (s *SubscriptionService) Plans() []dto.PlanInfo {
	tiers := s.catalog.All()
	out := make([]dto.PlanInfo, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, planInfo(t))
	}
	return out
}

// Status returns the usage status of the current cycle, rolling the cycle
// over first when its reset date has passed.
func (s *SubscriptionService) Status(ctx context.Context, companyID int64) (plan.Status, error) {
	sub, _, err := s.current(ctx, companyID)
	if err != nil {
		return plan.Status{}, err
	}
	details, _ := s.catalog.Lookup(sub.Plan)
	return plan.ComputeStatus(details, sub.UsedAppointments, sub.NextResetAt), nil
}

// GetStatus is Status shaped for the dashboard, served from cache when fresh.
func (s *SubscriptionService) GetStatus(ctx context.Context, companyID int64) (*dto.SubscriptionStatus, error) {
	var gen int64
	cacheable := false
	if s.cache != nil {
		var cached dto.SubscriptionStatus
		hit, err := s.cache.Get(ctx, companyID, &cached)
		if err != nil {
			log.Printf("Status cache read failed for company %d: %v", companyID, err)
		} else if hit && !s.expired(cached.NextResetDate) {
			return &cached, nil
		}

		// taken before the database read; a mutation after it makes the write-back a no-op
		if gen, err = s.cache.Generation(ctx, companyID); err == nil {
			cacheable = true
		}
	}

	sub, loc, err := s.current(ctx, companyID)
	if err != nil {
		return nil, err
	}
	details, _ := s.catalog.Lookup(sub.Plan)
	status := toStatusDTO(plan.ComputeStatus(details, sub.UsedAppointments, sub.NextResetAt), loc)

	if cacheable {
		if _, err := s.cache.Set(ctx, companyID, gen, status); err != nil {
			log.Printf("Status cache write failed for company %d: %v", companyID, err)
		}
	}
	return status, nil
}

// CheckAppointmentQuota fails with ErrLimitReached when no appointment can be
// created in the current cycle.
func (s *SubscriptionService) CheckAppointmentQuota(ctx context.Context, companyID int64) error {
	status, err := s.Status(ctx, companyID)
	if err != nil {
		return err
	}
	if status.IsLimitReached {
		return ErrLimitReached
	}
	return nil
}

// UseAppointment takes one unit of the cycle's quota. The check and the
// increment are a single conditional update.
func (s *SubscriptionService) UseAppointment(ctx context.Context, companyID int64) error {
	sub, _, err := s.current(ctx, companyID)
	if err != nil {
		return err
	}
	details, _ := s.catalog.Lookup(sub.Plan)

	ok, err := s.subs.ConsumeAppointment(companyID, int(details.MaxAppointments))
	if err != nil {
		return storeErr("consume appointment", err, nil)
	}
	if !ok {
		return ErrLimitReached
	}
	s.invalidate(ctx, companyID)
	return nil
}

// RefundAppointment returns a unit taken by UseAppointment.
func (s *SubscriptionService) RefundAppointment(ctx context.Context, companyID int64) error {
	if err := s.subs.RefundAppointment(companyID); err != nil {
		return storeErr("refund appointment", err, nil)
	}
	s.invalidate(ctx, companyID)
	return nil
}

// RequireFeature fails with ErrFeatureLocked when the plan lacks f.
func (s *SubscriptionService) RequireFeature(ctx context.Context, companyID int64, f plan.Feature) error {
	details, err := s.Details(ctx, companyID)
	if err != nil {
		return err
	}
	if !details.HasFeature(f) {
		return ErrFeatureLocked
	}
	return nil
}

// CanAddProfessional fails with ErrProfessionalLimit when the roster is full.
func (s *SubscriptionService) CanAddProfessional(ctx context.Context, companyID int64) error {
	details, err := s.Details(ctx, companyID)
	if err != nil {
		return err
	}
	count, err := s.pros.CountByCompany(companyID)
	if err != nil {
		return storeErr("count professionals", err, nil)
	}
	if !details.CanAddProfessional(int(count)) {
		return ErrProfessionalLimit
	}
	return nil
}

// Details returns the plan the company is on.
func (s *SubscriptionService) Details(ctx context.Context, companyID int64) (plan.Details, error) {
	sub, _, err := s.current(ctx, companyID)
	if err != nil {
		return plan.Details{}, err
	}
	details, _ := s.catalog.Lookup(sub.Plan)
	return details, nil
}

// ChangePlan moves the company to another tier. Usage in the current cycle is
// kept; a downgrade does not remove existing professionals.
func (s *SubscriptionService) ChangePlan(ctx context.Context, companyID int64, name string) (*dto.SubscriptionStatus, error) {
	if !s.catalog.Has(name) {
		return nil, ErrUnknownPlan
	}
	if _, _, err := s.current(ctx, companyID); err != nil {
		return nil, err
	}

	if err := s.subs.UpdatePlan(companyID, name); err != nil {
		return nil, storeErr("update plan", err, nil)
	}
	s.invalidate(ctx, companyID)
	publish(ctx, s.events, pubsub.EventSubscriptionChanged, companyID, 0, "updated")

	return s.GetStatus(ctx, companyID)
}

// ExpiredCycles lists subscriptions whose cycle has ended, without touching them.
func (s *SubscriptionService) ExpiredCycles(ctx context.Context) ([]*model.Subscription, error) {
	subs, err := s.subs.ListExpired(s.now().UTC(), resetBatchSize)
	if err != nil {
		return nil, storeErr("list expired subscriptions", err, nil)
	}
	return subs, nil
}

// ResetExpiredCycles starts a new cycle for every subscription whose reset
// date has passed and returns how many were reset.
func (s *SubscriptionService) ResetExpiredCycles(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		subs, err := s.ExpiredCycles(ctx)
		if err != nil {
			return total, err
		}

		for _, sub := range subs {
			loc := s.locationOf(sub.CompanyID)
			if err := s.resetCycle(ctx, sub, loc); err != nil {
				return total, err
			}
			total++
		}

		if len(subs) < resetBatchSize {
			return total, nil
		}
	}
}

// current loads the subscription, creating a Gratuito one on first use and
// rolling an expired cycle.
func (s *SubscriptionService) current(ctx context.Context, companyID int64) (*model.Subscription, *time.Location, error) {
	company, err := s.companies.GetByID(companyID)
	if err != nil {
		return nil, nil, storeErr("get company", err, ErrCompanyNotFound)
	}
	loc := company.Location(s.defaultLoc)

	sub, err := s.subs.GetByCompanyID(companyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.provision(companyID, loc)
	}
	if err != nil {
		return nil, nil, storeErr("get subscription", err, nil)
	}
	if err := plan.ValidateUsage(sub.UsedAppointments); err != nil {
		return nil, nil, fmt.Errorf("subscription of company %d: %w", companyID, err)
	}

	if sub.Status == "active" && !s.now().Before(sub.NextResetAt) {
		if err := s.resetCycle(ctx, sub, loc); err != nil {
			return nil, nil, err
		}
	}
	return sub, loc, nil
}

func (s *SubscriptionService) provision(companyID int64, loc *time.Location) (*model.Subscription, *time.Location, error) {
	now := s.now().In(loc)
	sub := &model.Subscription{
		CompanyID:      companyID,
		Plan:           string(s.catalog.Default().Name),
		CycleStartedAt: plan.CycleStart(now).UTC(),
		NextResetAt:    plan.NextReset(now).UTC(),
		Status:         "active",
	}
	if err := s.subs.Create(sub); err != nil {
		// another request may have provisioned it first
		if existing, getErr := s.subs.GetByCompanyID(companyID); getErr == nil {
			return existing, loc, nil
		}
		return nil, nil, storeErr("create subscription", err, nil)
	}
	log.Printf("Provisioned %s subscription for company %d", sub.Plan, companyID)
	return sub, loc, nil
}

func (s *SubscriptionService) resetCycle(ctx context.Context, sub *model.Subscription, loc *time.Location) error {
	now := s.now().In(loc)
	start := plan.CycleStart(now).UTC()
	next := plan.NextReset(now).UTC()

	if err := s.subs.ResetCycle(sub.ID, start, next); err != nil {
		return storeErr("reset cycle", err, nil)
	}
	sub.UsedAppointments = 0
	sub.CycleStartedAt = start
	sub.NextResetAt = next

	s.invalidate(ctx, sub.CompanyID)
	publish(ctx, s.events, pubsub.EventSubscriptionChanged, sub.CompanyID, sub.ID, "reset")
	return nil
}

func (s *SubscriptionService) locationOf(companyID int64) *time.Location {
	company, err := s.companies.GetByID(companyID)
	if err != nil {
		return s.defaultLoc
	}
	return company.Location(s.defaultLoc)
}

func (s *SubscriptionService) invalidate(ctx context.Context, companyID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		log.Printf("Status cache invalidate failed for company %d: %v", companyID, err)
	}
}

func (s *SubscriptionService) expired(nextReset string) bool {
	t, err := time.Parse(timeLayout, nextReset)
	if err != nil {
		return true
	}
	return !s.now().Before(t)
}

func planInfo(d plan.Details) dto.PlanInfo {
	return dto.PlanInfo{
		Name:               string(d.Name),
		MaxAppointments:    int(d.MaxAppointments),
		MaxProfessionals:   int(d.MaxProfessionals),
		HasFinancialAccess: d.HasFinancialAccess,
		HasReports:         d.HasReports,
		Price:              d.Price.StringFixed(2),
	}
}

func toStatusDTO(st plan.Status, loc *time.Location) *dto.SubscriptionStatus {
	features := make(map[string]bool, len(plan.Features))
	for f, on := range st.Plan.FeatureMatrix() {
		features[string(f)] = on
	}
	return &dto.SubscriptionStatus{
		Plan:                planInfo(st.Plan),
		UsedAppointments:    st.UsedAppointments,
		MaxAppointments:     int(st.MaxAppointments),
		Remaining:           st.Remaining(),
		PercentUsed:         st.PercentUsed,
		NextResetDate:       st.NextResetDate.In(loc).Format(timeLayout),
		IsLimitReached:      st.IsLimitReached,
		ShouldPromptUpgrade: st.ShouldPromptUpgrade(),
		Features:            features,
	}
}
