package ws

import (
	"log"

	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
)

// Relay returns a pubsub handler that forwards each dashboard event to the
// connections of its company, so every open tab re-fetches.
func (h *Hub) Relay() func(*pubsub.DashboardEvent) {
	return func(evt *pubsub.DashboardEvent) {
		if evt == nil || evt.CompanyID <= 0 || !h.IsOnline(evt.CompanyID) {
			return
		}
		if err := h.SendToCompany(evt.CompanyID, &Message{Type: evt.Type, Data: evt}); err != nil {
			log.Printf("Failed to relay %s to company %d: %v", evt.Type, evt.CompanyID, err)
		}
	}
}
