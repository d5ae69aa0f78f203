package service

import (
	"context"
	"strings"

	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
)

// CatalogService manages the services a salon offers.
type CatalogService struct {
	catalog CatalogStore
	events  EventPublisher
}

func NewCatalogService(catalog CatalogStore, events EventPublisher) *CatalogService {
	return &CatalogService{catalog: catalog, events: events}
}

func (s *CatalogService) Create(ctx context.Context, companyID int64, req *dto.CreateServiceRequest) (*dto.ServiceItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if req.DurationMinutes <= 0 {
		return nil, invalid("duration_minutes must be positive")
	}
	if req.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}

	svc := &model.Service{
		CompanyID:       companyID,
		Name:            name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price.Round(2),
		Active:          true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.catalog.Create(svc); err != nil {
		return nil, storeErr("create service", err, nil)
	}

	publish(ctx, s.events, pubsub.EventCatalogChanged, companyID, svc.ID, "created")
	return serviceItem(svc), nil
}

func (s *CatalogService) Get(ctx context.Context, companyID, id int64) (*dto.ServiceItem, error) {
	svc, err := s.catalog.GetByID(companyID, id)
	if err != nil {
		return nil, storeErr("get service", err, ErrServiceNotFound)
	}
	return serviceItem(svc), nil
}

func (s *CatalogService) List(ctx context.Context, companyID int64, activeOnly bool) ([]*dto.ServiceItem, error) {
	services, err := s.catalog.ListByCompany(companyID, activeOnly)
	if err != nil {
		return nil, storeErr("list services", err, nil)
	}
	items := make([]*dto.ServiceItem, 0, len(services))
	for _, svc := range services {
		items = append(items, serviceItem(svc))
	}
	return items, nil
}

func (s *CatalogService) Update(ctx context.Context, companyID, id int64, req *dto.UpdateServiceRequest) (*dto.ServiceItem, error) {
	svc, err := s.catalog.GetByID(companyID, id)
	if err != nil {
		return nil, storeErr("get service", err, ErrServiceNotFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, invalid("duration_minutes must be positive")
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, invalid("price must not be negative")
		}
		svc.Price = req.Price.Round(2)
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.catalog.Update(svc); err != nil {
		return nil, storeErr("update service", err, nil)
	}

	publish(ctx, s.events, pubsub.EventCatalogChanged, companyID, svc.ID, "updated")
	return serviceItem(svc), nil
}

func (s *CatalogService) Delete(ctx context.Context, companyID, id int64) error {
	if err := s.catalog.Delete(companyID, id); err != nil {
		return storeErr("delete service", err, ErrServiceNotFound)
	}
	publish(ctx, s.events, pubsub.EventCatalogChanged, companyID, id, "deleted")
	return nil
}

func serviceItem(svc *model.Service) *dto.ServiceItem {
	return &dto.ServiceItem{
		ID:              svc.ID,
		Name:            svc.Name,
		Description:     svc.Description,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price.StringFixed(2),
		Active:          svc.Active,
	}
}
