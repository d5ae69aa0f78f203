package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func connections(h *Hub) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.countLocked()
}

// serveHub registers every upgraded connection under companyID until the peer closes.
func serveHub(t *testing.T, hub *Hub, companyID int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}

		client := &Client{CompanyID: companyID, UserID: 1, Conn: conn}
		hub.Register(client)
		defer hub.Unregister(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestHub_Empty(t *testing.T) {
	hub := NewHub()

	assert.Equal(t, 0, connections(hub))
	assert.False(t, hub.IsOnline(123))
	assert.NoError(t, hub.SendToCompany(123, &Message{Type: "appointment_changed"}))
}

func TestHub_SendToCompany(t *testing.T) {
	hub := NewHub()
	server := serveHub(t, hub, 10)
	defer server.Close()

	first := dial(t, server)
	defer first.Close()
	second := dial(t, server)
	defer second.Close()

	waitFor(t, func() bool { return connections(hub) == 2 })
	assert.True(t, hub.IsOnline(10))
	assert.False(t, hub.IsOnline(11))

	require.NoError(t, hub.SendToCompany(10, &Message{
		Type: "appointment_changed",
		Data: map[string]interface{}{"entity_id": 5},
	}))

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "appointment_changed", msg.Type)
	}
}

func TestHub_UnregisterOnClose(t *testing.T) {
	hub := NewHub()
	server := serveHub(t, hub, 20)
	defer server.Close()

	conn := dial(t, server)
	waitFor(t, func() bool { return hub.IsOnline(20) })

	conn.Close()
	waitFor(t, func() bool { return !hub.IsOnline(20) })
	assert.Equal(t, 0, connections(hub))
}

func TestHub_CompaniesAreIsolated(t *testing.T) {
	hub := NewHub()
	serverA := serveHub(t, hub, 1)
	defer serverA.Close()
	serverB := serveHub(t, hub, 2)
	defer serverB.Close()

	connA := dial(t, serverA)
	defer connA.Close()
	connB := dial(t, serverB)
	defer connB.Close()

	waitFor(t, func() bool { return connections(hub) == 2 })

	require.NoError(t, hub.SendToCompany(1, &Message{Type: "finance_changed"}))

	connB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := connB.ReadMessage()
	assert.Error(t, err, "company 2 must not receive company 1 events")

	connA.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = connA.ReadMessage()
	assert.NoError(t, err)
}
