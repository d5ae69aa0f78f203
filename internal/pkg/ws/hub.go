package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks open dashboard connections per company. A company can have many
// staff members, each with several tabs.
type Hub struct {
	clients map[int64]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	CompanyID int64
	UserID    int64
	Conn      *websocket.Conn
	mu        sync.Mutex // serializes writes on Conn
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.CompanyID] == nil {
		h.clients[client.CompanyID] = make(map[*Client]struct{})
	}
	h.clients[client.CompanyID][client] = struct{}{}

	log.Printf("User %d of company %d connected, company_conns: %d, total: %d",
		client.UserID, client.CompanyID, len(h.clients[client.CompanyID]), h.countLocked())
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.CompanyID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.clients, client.CompanyID)
		}
	}
	log.Printf("User %d of company %d disconnected, total: %d", client.UserID, client.CompanyID, h.countLocked())
}

// SendToCompany writes msg to every connection of companyID. Write failures
// are logged and skipped; the read loop unregisters dead connections.
func (h *Hub) SendToCompany(companyID int64, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns, ok := h.clients[companyID]
	if !ok {
		h.mu.RUnlock()
		return nil
	}
	clients := make([]*Client, 0, len(conns))
	for c := range conns {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.Conn.WriteMessage(websocket.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			log.Printf("SendToCompany write error for company %d: %v", companyID, err)
		}
	}
	return nil
}

func (h *Hub) IsOnline(companyID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns, ok := h.clients[companyID]
	return ok && len(conns) > 0
}

func (h *Hub) countLocked() int {
	total := 0
	for _, conns := range h.clients {
		total += len(conns)
	}
	return total
}
