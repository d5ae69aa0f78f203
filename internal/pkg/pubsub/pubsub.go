package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelDashboardEvents = "dashboard_events"
)

// Event types. The dashboard re-fetches the matching view on each one.
const (
	EventAppointmentChanged  = "appointment_changed"
	EventSubscriptionChanged = "subscription_changed"
	EventProfessionalChanged = "professional_changed"
	EventClientChanged       = "client_changed"
	EventCatalogChanged      = "catalog_changed"
	EventFinanceChanged      = "finance_changed"
)

// DashboardEvent tells every open dashboard of a company that something changed.
type DashboardEvent struct {
	Type       string    `json:"type"`
	CompanyID  int64     `json:"company_id"`
	EntityID   int64     `json:"entity_id,omitempty"`
	Action     string    `json:"action,omitempty"` // created, updated, deleted
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish sends evt on the dashboard channel, stamping OccurredAt when unset.
func (p *Publisher) Publish(ctx context.Context, evt *DashboardEvent) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard event: %w", err)
	}

	return p.client.Publish(ctx, ChannelDashboardEvents, data).Err()
}

type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe blocks delivering events to handler until ctx is done.
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*DashboardEvent)) error {
	ps := s.client.Subscribe(ctx, ChannelDashboardEvents)
	defer ps.Close()

	// wait for the subscription to be confirmed so no early publish is lost
	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", ChannelDashboardEvents, err)
	}

	ch := ps.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var evt DashboardEvent
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				log.Printf("Dropping malformed dashboard event: %v", err)
				continue
			}

			handler(&evt)
		}
	}
}
