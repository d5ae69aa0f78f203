package service

import (
	"context"
	"strings"
	"time"

	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
)

type ProfessionalService struct {
	pros   ProfessionalStore
	subs   *SubscriptionService
	events EventPublisher
}

func NewProfessionalService(pros ProfessionalStore, subs *SubscriptionService, events EventPublisher) *ProfessionalService {
	return &ProfessionalService{
		pros:   pros,
		subs:   subs,
		events: events,
	}
}

// Create adds a professional if the plan's roster limit allows one more.
func (s *ProfessionalService) Create(ctx context.Context, companyID int64, req *dto.CreateProfessionalRequest) (*dto.ProfessionalItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if err := s.subs.CanAddProfessional(ctx, companyID); err != nil {
		return nil, err
	}

	p := &model.Professional{
		CompanyID: companyID,
		Name:      name,
		Specialty: strings.TrimSpace(req.Specialty),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Available: true,
	}
	if req.Available != nil {
		p.Available = *req.Available
	}

	if err := s.pros.Create(p); err != nil {
		return nil, storeErr("create professional", err, nil)
	}

	publish(ctx, s.events, pubsub.EventProfessionalChanged, companyID, p.ID, "created")
	return professionalItem(p), nil
}

func (s *ProfessionalService) Get(ctx context.Context, companyID, id int64) (*dto.ProfessionalItem, error) {
	p, err := s.pros.GetByID(companyID, id)
	if err != nil {
		return nil, storeErr("get professional", err, ErrProfessionalNotFound)
	}
	return professionalItem(p), nil
}

func (s *ProfessionalService) List(ctx context.Context, companyID int64, onlyAvailable bool) ([]*dto.ProfessionalItem, error) {
	pros, err := s.pros.ListByCompany(companyID, onlyAvailable)
	if err != nil {
		return nil, storeErr("list professionals", err, nil)
	}
	items := make([]*dto.ProfessionalItem, 0, len(pros))
	for _, p := range pros {
		items = append(items, professionalItem(p))
	}
	return items, nil
}

func (s *ProfessionalService) Update(ctx context.Context, companyID, id int64, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalItem, error) {
	p, err := s.pros.GetByID(companyID, id)
	if err != nil {
		return nil, storeErr("get professional", err, ErrProfessionalNotFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		p.Name = name
	}
	if req.Specialty != nil {
		p.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.Email != nil {
		p.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Available != nil {
		p.Available = *req.Available
	}

	if err := s.pros.Update(p); err != nil {
		return nil, storeErr("update professional", err, nil)
	}

	publish(ctx, s.events, pubsub.EventProfessionalChanged, companyID, p.ID, "updated")
	return professionalItem(p), nil
}

// Delete soft-deletes the professional. Past appointments keep their reference.
func (s *ProfessionalService) Delete(ctx context.Context, companyID, id int64) error {
	if err := s.pros.Delete(companyID, id); err != nil {
		return storeErr("delete professional", err, ErrProfessionalNotFound)
	}
	publish(ctx, s.events, pubsub.EventProfessionalChanged, companyID, id, "deleted")
	return nil
}

func professionalItem(p *model.Professional) *dto.ProfessionalItem {
	item := &dto.ProfessionalItem{
		ID:        p.ID,
		Name:      p.Name,
		Specialty: p.Specialty,
		Email:     p.Email,
		Phone:     p.Phone,
		Available: p.Available,
	}
	if !p.CreatedAt.IsZero() {
		item.CreatedAt = p.CreatedAt.UTC().Format(time.RFC3339)
	}
	return item
}
