package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents one connected participant. Its ID doubles as the
// player identity inside whichever room it joins.
type Client struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan []byte
	RoomID string
}

// Manager tracks every live connection and its room binding
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{clients: make(map[string]*Client)}
}

// Register adds a client to the registry
func (m *Manager) Register(client *Client) {
	m.mu.Lock()
	m.clients[client.ID] = client
	m.mu.Unlock()
}

// Unregister removes a client and closes its send channel
func (m *Manager) Unregister(client *Client) {
	m.mu.Lock()
	if _, ok := m.clients[client.ID]; ok {
		delete(m.clients, client.ID)
		close(client.Send)
	}
	m.mu.Unlock()
}

// BindRoom records which room a client currently occupies
func (m *Manager) BindRoom(clientID, roomID string) {
	m.mu.Lock()
	if client, ok := m.clients[clientID]; ok {
		client.RoomID = roomID
	}
	m.mu.Unlock()
}

// ClientsInRoom snapshots the ids of the clients currently bound to a
// room
func (m *Manager) ClientsInRoom(roomID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for id, client := range m.clients {
		if client.RoomID == roomID {
			out = append(out, id)
		}
	}
	return out
}

// Deliver queues a message for a client. Holding the read lock here
// excludes Unregister's channel close, and a client whose send buffer
// is full is skipped rather than blocking the room.
func (m *Manager) Deliver(clientID string, message []byte) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	select {
	case client.Send <- message:
		return true
	default:
		return false
	}
}
