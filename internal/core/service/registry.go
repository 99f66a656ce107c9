package service

import (
	"sync"

	"github.com/pushsumo/signaling/internal/core/domain"
	"github.com/pushsumo/signaling/internal/core/port"
)

// Connection is the server-side state of one live transport session.
// Room and Role are written only under the room table's lock.
type Connection struct {
	ID     string
	Client port.Client

	Room string // canonical room code, "" when unbound
	Role domain.Role
}

// Registry tracks live connections. Pure bookkeeping, no business rules.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Connection)}
}

// Register assigns a fresh identifier and starts tracking the client.
func (r *Registry) Register(client port.Client) *Connection {
	conn := &Connection{ID: domain.NewClientID(), Client: client}
	r.mu.Lock()
	r.conns[conn.ID] = conn
	r.mu.Unlock()
	return conn
}

// Unregister is idempotent and safe to call with a nil connection.
func (r *Registry) Unregister(conn *Connection) {
	if conn == nil {
		return
	}
	r.mu.Lock()
	delete(r.conns, conn.ID)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

func (r *Registry) All() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Connection, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c)
	}
	return out
}
