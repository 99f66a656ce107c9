package service

import (
	"errors"
	"sync"
	"time"

	"github.com/pushsumo/signaling/internal/core/domain"
	"github.com/pushsumo/signaling/internal/core/port"
)

var (
	ErrCodeCollision = errors.New("room code already in use")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room full")
	ErrAlreadyInRoom = errors.New("already in a room")
)

// Room pairs a host with at most one guest. Host is set at creation and
// never reassigned; Guest is written only under the owning table's lock.
type Room struct {
	Code      string
	Host      *Connection
	Guest     *Connection
	CreatedAt time.Time
}

// Full is the single source of truth for room fullness; status is derived
// from the guest slot, so the two can never disagree.
func (r *Room) Full() bool {
	return r.Guest != nil
}

func (r *Room) Status() string {
	if r.Full() {
		return "full"
	}
	return "waiting"
}

// RoomTable owns the code -> room mapping. All mutations, including the
// lookup -> fullness check -> bind sequence of Join, run under one lock so
// concurrent joins to the same room have exactly one winner.
type RoomTable struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRoomTable() *RoomTable {
	return &RoomTable{rooms: make(map[string]*Room)}
}

// Create inserts a waiting room and binds conn as its host. Returns
// ErrCodeCollision when the code is taken (caller regenerates) and
// ErrAlreadyInRoom when conn is still bound to a live room.
func (t *RoomTable) Create(code string, conn *Connection) (*Room, error) {
	code = domain.CanonicalCode(code)
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.releaseStale(conn); err != nil {
		return nil, err
	}
	if _, ok := t.rooms[code]; ok {
		return nil, ErrCodeCollision
	}

	room := &Room{Code: code, Host: conn, CreatedAt: time.Now()}
	t.rooms[code] = room
	conn.Room = code
	conn.Role = domain.RoleHost
	return room, nil
}

// Join binds conn as guest of the waiting room identified by code.
func (t *RoomTable) Join(code string, conn *Connection) (*Room, error) {
	code = domain.CanonicalCode(code)
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.releaseStale(conn); err != nil {
		return nil, err
	}
	room, ok := t.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.Full() {
		return nil, ErrRoomFull
	}

	room.Guest = conn
	conn.Room = code
	conn.Role = domain.RoleGuest
	return room, nil
}

// releaseStale clears a binding whose room has already been evicted, so a
// peer orphaned by expiry or a vanished host can start over. A binding to a
// live room is a protocol error.
func (t *RoomTable) releaseStale(conn *Connection) error {
	if conn.Room == "" {
		return nil
	}
	if _, ok := t.rooms[conn.Room]; ok {
		return ErrAlreadyInRoom
	}
	conn.Room = ""
	conn.Role = ""
	return nil
}

// Departure describes the outcome of a connection leaving its room.
type Departure struct {
	Code     string
	Role     domain.Role
	Notify   port.Client // remaining participant, nil if none
	RoomGone bool
}

// Leave releases conn's room membership: a departing host takes the room
// with it, a departing guest reopens the room for a new peer. Reports false
// when conn held no live room binding.
func (t *RoomTable) Leave(conn *Connection) (Departure, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	code := conn.Room
	conn.Room = ""
	conn.Role = ""
	if code == "" {
		return Departure{}, false
	}
	room, ok := t.rooms[code]
	if !ok {
		return Departure{}, false
	}

	dep := Departure{Code: code}
	switch {
	case room.Host == conn:
		dep.Role = domain.RoleHost
		dep.RoomGone = true
		if room.Guest != nil {
			dep.Notify = room.Guest.Client
		}
		delete(t.rooms, code)
	case room.Guest == conn:
		dep.Role = domain.RoleGuest
		room.Guest = nil
		dep.Notify = room.Host.Client
	default:
		return Departure{}, false
	}
	return dep, true
}

// Partner resolves the other participant of conn's room, or nil when conn
// is unpaired or its room is gone.
func (t *RoomTable) Partner(conn *Connection) port.Client {
	t.mu.RLock()
	defer t.mu.RUnlock()

	room, ok := t.rooms[conn.Room]
	if !ok {
		return nil
	}
	var partner *Connection
	switch {
	case room.Host == conn:
		partner = room.Guest
	case room.Guest == conn:
		partner = room.Host
	}
	if partner == nil {
		return nil
	}
	return partner.Client
}

func (t *RoomTable) Get(code string) (*Room, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	room, ok := t.rooms[domain.CanonicalCode(code)]
	return room, ok
}

// Remove is idempotent and ignores unknown codes.
func (t *RoomTable) Remove(code string) {
	t.mu.Lock()
	delete(t.rooms, domain.CanonicalCode(code))
	t.mu.Unlock()
}

// Sweep evicts every room older than ttl and returns the removed codes.
func (t *RoomTable) Sweep(now time.Time, ttl time.Duration) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var removed []string
	for code, room := range t.rooms {
		if now.Sub(room.CreatedAt) > ttl {
			delete(t.rooms, code)
			removed = append(removed, code)
		}
	}
	return removed
}

func (t *RoomTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rooms)
}
