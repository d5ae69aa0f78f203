package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/config"
	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
	"github.com/qs3c/salon_go_server/internal/pkg/queue"
	"github.com/qs3c/salon_go_server/internal/plan"
	"github.com/qs3c/salon_go_server/internal/repository"
	"github.com/qs3c/salon_go_server/internal/testutil"
)

// testNow is the fixed clock every service in a fixture runs on.
var testNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

type recordingEvents struct {
	mu     sync.Mutex
	events []*pubsub.DashboardEvent
}

func (r *recordingEvents) Publish(_ context.Context, evt *pubsub.DashboardEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingQueue struct {
	mu   sync.Mutex
	msgs []*queue.NotificationMessage
}

func (r *recordingQueue) Push(_ context.Context, msg *queue.NotificationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

type fakeStorage struct {
	uploads  map[string][]byte
	deleted  []string
	fail     error
	signFail error
}

func (f *fakeStorage) UploadReport(companyID int64, data []byte) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	key := "reports/test.csv"
	f.uploads[key] = data
	return key, nil
}

func (f *fakeStorage) GetSignedURL(objectKey string, expireSeconds int64) (string, error) {
	if f.signFail != nil {
		return "", f.signFail
	}
	return "https://storage.example.com/" + objectKey + "?Signature=x", nil
}

func (f *fakeStorage) Delete(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	delete(f.uploads, objectKey)
	return nil
}

var errStorageDown = errors.New("storage down")

type fixture struct {
	db      *gorm.DB
	salon   *testutil.Salon
	events  *recordingEvents
	notes   *recordingQueue
	storage *fakeStorage

	subs     *SubscriptionService
	appts    *AppointmentService
	pros     *ProfessionalService
	clients  *ClientService
	catalog  *CatalogService
	finance  *FinanceService
	reports  *ReportService
	apptRepo *repository.AppointmentRepository
	subRepo  *repository.SubscriptionRepository
}

func newFixture(t *testing.T, subOpts ...func(*model.Subscription)) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	// the cycle must be current relative to testNow, not the wall clock
	opts := append([]func(*model.Subscription){testutil.WithNextReset(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))}, subOpts...)

	f := &fixture{
		db:      db,
		salon:   testutil.TestSalon(t, db, opts...),
		events:  &recordingEvents{},
		notes:   &recordingQueue{},
		storage: &fakeStorage{},
	}

	companyRepo := repository.NewCompanyRepository(db)
	f.subRepo = repository.NewSubscriptionRepository(db)
	proRepo := repository.NewProfessionalRepository(db)
	clientRepo := repository.NewClientRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	f.apptRepo = repository.NewAppointmentRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	f.subs = NewSubscriptionService(f.subRepo, companyRepo, proRepo, plan.NewCatalog(plan.DefaultTiers), nil, f.events, time.UTC)
	f.subs.now = fixedNow

	f.finance = NewFinanceService(txRepo, f.apptRepo, companyRepo, f.subs, f.events, time.UTC)
	f.finance.now = fixedNow

	f.appts = NewAppointmentService(f.apptRepo, clientRepo, proRepo, catalogRepo, companyRepo, f.subs, f.finance,
		f.events, f.notes, config.ScheduleConfig{DefaultStartHour: 8, DefaultEndHour: 20, EnforceTransitions: true}, time.UTC)
	f.appts.now = fixedNow

	f.reports = NewReportService(f.apptRepo, proRepo, companyRepo, f.finance, f.subs, f.storage, time.UTC)
	f.reports.now = fixedNow

	f.pros = NewProfessionalService(proRepo, f.subs, f.events)
	f.clients = NewClientService(clientRepo, f.events)
	f.catalog = NewCatalogService(catalogRepo, f.events)

	return f
}

func fixedNow() time.Time {
	return testNow
}

func (f *fixture) companyID() int64 {
	return f.salon.Company.ID
}

func (f *fixture) used(t *testing.T) int {
	t.Helper()
	sub, err := f.subRepo.GetByCompanyID(f.companyID())
	if err != nil {
		t.Fatalf("Failed to load subscription: %v", err)
	}
	return sub.UsedAppointments
}
