package websocket

import (
	"encoding/json"
	"sync"
)

// BalanceUpdate is pushed to every open connection of an account's owner
// after a ledger write commits.
type BalanceUpdate struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	Balance     string `json:"balance"`
	Currency    string `json:"currency"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(customerID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[customerID] == nil {
		h.clients[customerID] = make(map[*Client]struct{})
	}
	h.clients[customerID][client] = struct{}{}
}

func (h *Hub) Unregister(customerID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[customerID] == nil {
		return
	}
	delete(h.clients[customerID], client)
	if len(h.clients[customerID]) == 0 {
		delete(h.clients, customerID)
	}
}

func (h *Hub) Connections(customerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[customerID])
}

// BroadcastBalance never blocks; a client with a full send buffer misses the update.
func (h *Hub) BroadcastBalance(customerID string, update BalanceUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[customerID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
