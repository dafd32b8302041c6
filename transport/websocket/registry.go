package websocket

import (
	"sync"

	"github.com/coder/websocket"
)

// Registry holds every live connection of this process.
type Registry struct {
	mu          sync.RWMutex
	connections map[string]*Connection
}

func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[string]*Connection),
	}
}

func (that *Registry) Add(conn *Connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.connections[conn.ID()] = conn
}

func (that *Registry) Remove(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.connections, id)
}

func (that *Registry) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.connections)
}

// CloseAll asks every connection to go away. Their read loops then run the usual cleanup.
func (that *Registry) CloseAll() {
	that.mu.RLock()
	conns := make([]*Connection, 0, len(that.connections))
	for _, conn := range that.connections {
		conns = append(conns, conn)
	}
	that.mu.RUnlock()

	for _, conn := range conns {
		conn.close(websocket.StatusGoingAway, "server shutting down")
	}
}
