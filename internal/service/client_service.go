package service

import (
	"context"
	"strings"
	"time"

	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/model/dto"
	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
)

type ClientService struct {
	clients ClientStore
	events  EventPublisher
}

func NewClientService(clients ClientStore, events EventPublisher) *ClientService {
	return &ClientService{clients: clients, events: events}
}

func (s *ClientService) Create(ctx context.Context, companyID int64, req *dto.CreateClientRequest) (*dto.ClientItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name is required")
	}

	c := &model.Client{
		CompanyID: companyID,
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Notes:     req.Notes,
	}
	if req.BirthDate != "" {
		bd, err := parseBirthDate(req.BirthDate)
		if err != nil {
			return nil, err
		}
		c.BirthDate = bd
	}

	if err := s.clients.Create(c); err != nil {
		return nil, storeErr("create client", err, nil)
	}

	publish(ctx, s.events, pubsub.EventClientChanged, companyID, c.ID, "created")
	return clientItem(c), nil
}

func (s *ClientService) Get(ctx context.Context, companyID, id int64) (*dto.ClientItem, error) {
	c, err := s.clients.GetByID(companyID, id)
	if err != nil {
		return nil, storeErr("get client", err, ErrClientNotFound)
	}
	return clientItem(c), nil
}

// List pages through clients; search matches name, email or phone.
func (s *ClientService) List(ctx context.Context, companyID int64, page, pageSize int, search string) ([]*dto.ClientItem, int64, int, int, error) {
	page, pageSize = normalizePage(page, pageSize)

	clients, total, err := s.clients.ListByCompany(companyID, page, pageSize, strings.TrimSpace(search))
	if err != nil {
		return nil, 0, page, pageSize, storeErr("list clients", err, nil)
	}

	items := make([]*dto.ClientItem, 0, len(clients))
	for _, c := range clients {
		items = append(items, clientItem(c))
	}
	return items, total, page, pageSize, nil
}

func (s *ClientService) Update(ctx context.Context, companyID, id int64, req *dto.UpdateClientRequest) (*dto.ClientItem, error) {
	c, err := s.clients.GetByID(companyID, id)
	if err != nil {
		return nil, storeErr("get client", err, ErrClientNotFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		c.Name = name
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			c.BirthDate = nil
		} else {
			bd, err := parseBirthDate(*req.BirthDate)
			if err != nil {
				return nil, err
			}
			c.BirthDate = bd
		}
	}

	if err := s.clients.Update(c); err != nil {
		return nil, storeErr("update client", err, nil)
	}

	publish(ctx, s.events, pubsub.EventClientChanged, companyID, c.ID, "updated")
	return clientItem(c), nil
}

func (s *ClientService) Delete(ctx context.Context, companyID, id int64) error {
	if err := s.clients.Delete(companyID, id); err != nil {
		return storeErr("delete client", err, ErrClientNotFound)
	}
	publish(ctx, s.events, pubsub.EventClientChanged, companyID, id, "deleted")
	return nil
}

func parseBirthDate(raw string) (*time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, invalid("birth_date must be YYYY-MM-DD")
	}
	return &t, nil
}

func clientItem(c *model.Client) *dto.ClientItem {
	item := &dto.ClientItem{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.BirthDate != nil {
		item.BirthDate = c.BirthDate.Format(dateLayout)
	}
	return item
}
