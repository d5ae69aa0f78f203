package service

import (
	"context"
	"log"
	"time"

	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
	"github.com/qs3c/salon_go_server/internal/pkg/queue"
	"github.com/qs3c/salon_go_server/internal/repository"
)

// Stores. The gorm repositories in internal/repository implement these.

type CompanyStore interface {
	GetByID(id int64) (*model.Company, error)
}

type SubscriptionStore interface {
	Create(sub *model.Subscription) error
	GetByCompanyID(companyID int64) (*model.Subscription, error)
	ConsumeAppointment(companyID int64, max int) (bool, error)
	RefundAppointment(companyID int64) error
	UpdatePlan(companyID int64, plan string) error
	ResetCycle(id int64, cycleStart, nextReset time.Time) error
	ListExpired(now time.Time, limit int) ([]*model.Subscription, error)
}

type ProfessionalStore interface {
	Create(p *model.Professional) error
	GetByID(companyID, id int64) (*model.Professional, error)
	ListByCompany(companyID int64, onlyAvailable bool) ([]*model.Professional, error)
	CountByCompany(companyID int64) (int64, error)
	Update(p *model.Professional) error
	Delete(companyID, id int64) error
}

type ClientStore interface {
	Create(c *model.Client) error
	GetByID(companyID, id int64) (*model.Client, error)
	ListByCompany(companyID int64, page, pageSize int, search string) ([]*model.Client, int64, error)
	Update(c *model.Client) error
	Delete(companyID, id int64) error
}

type CatalogStore interface {
	Create(s *model.Service) error
	GetByID(companyID, id int64) (*model.Service, error)
	ListByCompany(companyID int64, activeOnly bool) ([]*model.Service, error)
	Update(s *model.Service) error
	Delete(companyID, id int64) error
}

type AppointmentStore interface {
	Create(a *model.Appointment) error
	GetByID(companyID, id int64) (*model.Appointment, error)
	ListByRange(companyID int64, q repository.AppointmentQuery) ([]*model.Appointment, error)
	Update(a *model.Appointment) error
	UpdateStatus(companyID, id int64, from, to string) (bool, error)
	Delete(companyID, id int64) error
	CountByStatus(companyID int64, from, to time.Time) ([]repository.StatusCount, error)
	CountByProfessional(companyID int64, from, to time.Time) ([]repository.ProfessionalCount, error)
}

type TransactionStore interface {
	Create(tx *model.Transaction) error
	ListByRange(companyID int64, from, to time.Time, kind string) ([]*model.Transaction, error)
	ExistsForAppointment(appointmentID int64) (bool, error)
}

// Side channels. All of them are optional: a nil value disables the feature.

type EventPublisher interface {
	Publish(ctx context.Context, evt *pubsub.DashboardEvent) error
}

type NotificationQueue interface {
	Push(ctx context.Context, msg *queue.NotificationMessage) error
}

type StatusCache interface {
	Generation(ctx context.Context, companyID int64) (int64, error)
	Get(ctx context.Context, companyID int64, dest interface{}) (bool, error)
	Set(ctx context.Context, companyID, gen int64, status interface{}) (bool, error)
	Invalidate(ctx context.Context, companyID int64) error
}

type ReportStorage interface {
	UploadReport(companyID int64, data []byte) (string, error)
	GetSignedURL(objectKey string, expireSeconds int64) (string, error)
	Delete(objectKey string) error
}

// publish fires a dashboard event. Delivery is best effort: the dashboard
// re-fetches on its own schedule too.
func publish(ctx context.Context, events EventPublisher, evtType string, companyID, entityID int64, action string) {
	if events == nil {
		return
	}
	err := events.Publish(ctx, &pubsub.DashboardEvent{
		Type:      evtType,
		CompanyID: companyID,
		EntityID:  entityID,
		Action:    action,
	})
	if err != nil {
		log.Printf("Failed to publish %s for company %d: %v", evtType, companyID, err)
	}
}

const timeLayout = time.RFC3339
