package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/internal/model"
)

// TestCompany creates a salon in UTC open 08:00-20:00.
func TestCompany(t *testing.T, db *gorm.DB, opts ...func(*model.Company)) *model.Company {
	t.Helper()

	company := &model.Company{
		Name:        fmt.Sprintf("Salão %d", time.Now().UnixNano()%10000),
		Timezone:    "UTC",
		OpeningHour: 8,
		ClosingHour: 20,
	}

	for _, opt := range opts {
		opt(company)
	}

	if err := db.Create(company).Error; err != nil {
		t.Fatalf("Failed to create test company: %v", err)
	}

	return company
}

// WithTimezone sets the company's timezone.
func WithTimezone(tz string) func(*model.Company) {
	return func(c *model.Company) {
		c.Timezone = tz
	}
}

// WithOpeningHours sets the calendar hour range.
func WithOpeningHours(open, close int) func(*model.Company) {
	return func(c *model.Company) {
		c.OpeningHour = open
		c.ClosingHour = close
	}
}

// TestSubscription creates a Gratuito subscription whose cycle resets in a month.
func TestSubscription(t *testing.T, db *gorm.DB, companyID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	now := time.Now().UTC()
	sub := &model.Subscription{
		CompanyID:        companyID,
		Plan:             "Gratuito",
		UsedAppointments: 0,
		CycleStartedAt:   now,
		NextResetAt:      now.AddDate(0, 1, 0),
		Status:           "active",
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithPlan sets the subscription plan.
func WithPlan(plan string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Plan = plan
	}
}

// WithUsed sets the appointments used in the cycle.
func WithUsed(used int) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.UsedAppointments = used
	}
}

// WithNextReset sets when the cycle resets.
func WithNextReset(at time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.NextResetAt = at
	}
}

// TestProfessional creates an available professional.
func TestProfessional(t *testing.T, db *gorm.DB, companyID int64, opts ...func(*model.Professional)) *model.Professional {
	t.Helper()

	p := &model.Professional{
		CompanyID: companyID,
		Name:      fmt.Sprintf("Profissional %d", time.Now().UnixNano()%10000),
		Specialty: "Cabelo",
		Available: true,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := db.Create(p).Error; err != nil {
		t.Fatalf("Failed to create test professional: %v", err)
	}

	return p
}

// WithProfessionalName sets the professional's name.
func WithProfessionalName(name string) func(*model.Professional) {
	return func(p *model.Professional) {
		p.Name = name
	}
}

// TestClient creates a client with an email address.
func TestClient(t *testing.T, db *gorm.DB, companyID int64, opts ...func(*model.Client)) *model.Client {
	t.Helper()

	n := time.Now().UnixNano()
	c := &model.Client{
		CompanyID: companyID,
		Name:      fmt.Sprintf("Cliente %d", n%10000),
		Email:     fmt.Sprintf("cliente_%d@example.com", n),
		Phone:     "+55 11 99999-0000",
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return c
}

// WithClientName sets the client's name.
func WithClientName(name string) func(*model.Client) {
	return func(c *model.Client) {
		c.Name = name
	}
}

// TestService creates a 60-minute catalog entry priced at 50.00.
func TestService(t *testing.T, db *gorm.DB, companyID int64, opts ...func(*model.Service)) *model.Service {
	t.Helper()

	s := &model.Service{
		CompanyID:       companyID,
		Name:            "Corte feminino",
		DurationMinutes: 60,
		Price:           decimal.RequireFromString("50.00"),
		Active:          true,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := db.Create(s).Error; err != nil {
		t.Fatalf("Failed to create test service: %v", err)
	}

	return s
}

// WithPrice sets the service price.
func WithPrice(price string) func(*model.Service) {
	return func(s *model.Service) {
		s.Price = decimal.RequireFromString(price)
	}
}

// TestAppointment creates a pending appointment.
func TestAppointment(t *testing.T, db *gorm.DB, companyID, clientID, professionalID, serviceID int64, startsAt time.Time, opts ...func(*model.Appointment)) *model.Appointment {
	t.Helper()

	a := &model.Appointment{
		CompanyID:       companyID,
		ClientID:        clientID,
		ProfessionalID:  professionalID,
		ServiceID:       serviceID,
		StartsAt:        startsAt,
		DurationMinutes: 60,
		Status:          "pending",
		Price:           decimal.RequireFromString("50.00"),
	}

	for _, opt := range opts {
		opt(a)
	}

	if err := db.Create(a).Error; err != nil {
		t.Fatalf("Failed to create test appointment: %v", err)
	}

	return a
}

// WithAppointmentStatus sets the appointment status.
func WithAppointmentStatus(status string) func(*model.Appointment) {
	return func(a *model.Appointment) {
		a.Status = status
	}
}

// TestTransaction creates a financial entry.
func TestTransaction(t *testing.T, db *gorm.DB, companyID int64, kind, amount string, occurredAt time.Time) *model.Transaction {
	t.Helper()

	tx := &model.Transaction{
		CompanyID:  companyID,
		Kind:       kind,
		Category:   "geral",
		Amount:     decimal.RequireFromString(amount),
		OccurredAt: occurredAt,
	}

	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return tx
}

// Salon bundles a company with one of each reference record.
type Salon struct {
	Company      *model.Company
	Subscription *model.Subscription
	Professional *model.Professional
	Client       *model.Client
	Service      *model.Service
}

// TestSalon creates a company, its subscription and one professional, client and service.
func TestSalon(t *testing.T, db *gorm.DB, subOpts ...func(*model.Subscription)) *Salon {
	t.Helper()

	company := TestCompany(t, db)
	return &Salon{
		Company:      company,
		Subscription: TestSubscription(t, db, company.ID, subOpts...),
		Professional: TestProfessional(t, db, company.ID),
		Client:       TestClient(t, db, company.ID),
		Service:      TestService(t, db, company.ID),
	}
}
