package service

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/pushsumo/signaling/internal/core/domain"
	"github.com/pushsumo/signaling/internal/core/port"
	"github.com/pushsumo/signaling/internal/observability"
)

// codeRetryLimit bounds room-code regeneration on collision. With a 36^6
// code space, exhausting it means something is operationally wrong.
const codeRetryLimit = 10

// Session drives the room protocol: create, join, relay, leave. Handlers
// run on each connection's read goroutine; room state is serialized by the
// room table, and every reply or partner notification is a best-effort,
// fire-and-forget send.
type Session struct {
	reg   *Registry
	rooms *RoomTable

	genCode func() string
}

func NewSession(reg *Registry, rooms *RoomTable) *Session {
	return &Session{reg: reg, rooms: rooms, genCode: domain.NewRoomCode}
}

// Connect registers the client and acknowledges the transport with its
// assigned identifier.
func (s *Session) Connect(client port.Client) *Connection {
	conn := s.reg.Register(client)
	_ = client.Send(domain.Connected(conn.ID))
	return conn
}

// Disconnect releases conn's room membership and drops it from the
// registry. Safe on connections that never got past accept.
func (s *Session) Disconnect(conn *Connection) {
	if conn == nil {
		return
	}
	if dep, ok := s.rooms.Leave(conn); ok {
		switch dep.Role {
		case domain.RoleHost:
			if dep.Notify != nil && dep.Notify.Reachable() {
				_ = dep.Notify.Send(domain.HostLeft())
			}
			log.Info().Str("room", dep.Code).Str("client_id", conn.ID).Msg("host left, room removed")
		case domain.RoleGuest:
			if dep.Notify != nil && dep.Notify.Reachable() {
				_ = dep.Notify.Send(domain.GuestLeft())
			}
			log.Info().Str("room", dep.Code).Str("client_id", conn.ID).Msg("guest left, room reopened")
		}
	}
	s.reg.Unregister(conn)
}

// HandleMessage dispatches one inbound frame. Protocol errors are answered
// on conn and never tear it down.
func (s *Session) HandleMessage(conn *Connection, raw []byte) {
	in, err := domain.ParseInbound(raw)
	if err != nil {
		log.Warn().Err(err).Str("client_id", conn.ID).Msg("malformed message")
		_ = conn.Client.Send(domain.ErrorMessage("processing error"))
		return
	}

	switch in.Type {
	case domain.TypeCreateRoom:
		s.createRoom(conn)
	case domain.TypeJoinRoom:
		s.joinRoom(conn, in.RoomCode)
	case domain.TypeOffer, domain.TypeAnswer, domain.TypeICECandidate:
		s.relay(conn, raw)
	case domain.TypePing:
		_ = conn.Client.Send(domain.Pong())
	default:
		log.Debug().Str("type", in.Type).Str("client_id", conn.ID).Msg("unrecognized message type")
	}
}

func (s *Session) createRoom(conn *Connection) {
	var (
		room *Room
		err  error
	)
	for i := 0; i < codeRetryLimit; i++ {
		room, err = s.rooms.Create(s.genCode(), conn)
		if !errors.Is(err, ErrCodeCollision) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, ErrAlreadyInRoom) {
			_ = conn.Client.Send(domain.ErrorMessage("already in a room"))
			return
		}
		log.Error().Err(err).Str("client_id", conn.ID).Msg("room code allocation failed")
		_ = conn.Client.Send(domain.ErrorMessage("could not allocate a room code"))
		return
	}

	log.Info().Str("room", room.Code).Str("client_id", conn.ID).Msg("room created")
	_ = conn.Client.Send(domain.RoomCreated(room.Code))
}

func (s *Session) joinRoom(conn *Connection, code string) {
	room, err := s.rooms.Join(code, conn)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoomNotFound):
			_ = conn.Client.Send(domain.ErrorMessage("room not found"))
		case errors.Is(err, ErrRoomFull):
			_ = conn.Client.Send(domain.ErrorMessage("room full"))
		case errors.Is(err, ErrAlreadyInRoom):
			_ = conn.Client.Send(domain.ErrorMessage("already in a room"))
		}
		return
	}

	log.Info().Str("room", room.Code).Str("client_id", conn.ID).Msg("guest joined room")
	_ = conn.Client.Send(domain.RoomJoined(room.Code))

	// Best effort: the guest keeps its confirmation even when the host is
	// already gone; that surfaces on the next relay or disconnect sweep.
	if host := room.Host.Client; host.Reachable() {
		_ = host.Send(domain.GuestJoined(room.Code))
	}
}

// relay forwards the raw frame verbatim to the partner. No partner, or an
// unreachable one, drops the message without surfacing anything to the
// sender.
func (s *Session) relay(conn *Connection, raw []byte) {
	partner := s.rooms.Partner(conn)
	if partner == nil || !partner.Reachable() {
		log.Debug().Str("client_id", conn.ID).Msg("relay dropped, no reachable partner")
		return
	}
	if err := partner.Send(json.RawMessage(raw)); err != nil {
		log.Debug().Err(err).Str("client_id", conn.ID).Msg("relay send failed")
		return
	}
	observability.SignalsRelayed.Inc()
}

// Shutdown closes every registered client.
func (s *Session) Shutdown() {
	for _, conn := range s.reg.All() {
		_ = conn.Client.Close()
	}
}

func (s *Session) RoomCount() int {
	return s.rooms.Len()
}

func (s *Session) ConnectionCount() int {
	return s.reg.Len()
}
