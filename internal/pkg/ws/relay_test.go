package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/salon_go_server/internal/pkg/pubsub"
)

func TestHub_Relay(t *testing.T) {
	hub := NewHub()
	server := serveHub(t, hub, 42)
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()
	waitFor(t, func() bool { return hub.IsOnline(42) })

	relay := hub.Relay()
	// other companies and malformed events are dropped
	relay(nil)
	relay(&pubsub.DashboardEvent{Type: pubsub.EventClientChanged, CompanyID: 7})
	relay(&pubsub.DashboardEvent{Type: pubsub.EventAppointmentChanged, CompanyID: 42, EntityID: 9, Action: "created"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string                `json:"type"`
		Data pubsub.DashboardEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, pubsub.EventAppointmentChanged, msg.Type)
	assert.Equal(t, int64(42), msg.Data.CompanyID)
	assert.Equal(t, int64(9), msg.Data.EntityID)
	assert.Equal(t, "created", msg.Data.Action)
}
