package domain

import "encoding/json"

type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Envelope type discriminators. The offer/answer/ice-candidate payloads are
// opaque to the server and relayed verbatim.
const (
	TypeCreateRoom   = "createRoom"
	TypeJoinRoom     = "joinRoom"
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice-candidate"
	TypePing         = "ping"

	TypeConnected   = "connected"
	TypeRoomCreated = "roomCreated"
	TypeRoomJoined  = "roomJoined"
	TypeGuestJoined = "guestJoined"
	TypeGuestLeft   = "guestLeft"
	TypeHostLeft    = "hostLeft"
	TypePong        = "pong"
	TypeError       = "error"
)

// Envelope is a server-to-client message.
type Envelope struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode,omitempty"`
	Role     Role   `json:"role,omitempty"`
	ClientID string `json:"clientId,omitempty"`
	Message  string `json:"message,omitempty"`
}

func Connected(clientID string) Envelope {
	return Envelope{Type: TypeConnected, ClientID: clientID}
}

func RoomCreated(code string) Envelope {
	return Envelope{Type: TypeRoomCreated, RoomCode: code, Role: RoleHost}
}

func RoomJoined(code string) Envelope {
	return Envelope{Type: TypeRoomJoined, RoomCode: code, Role: RoleGuest}
}

func GuestJoined(code string) Envelope {
	return Envelope{Type: TypeGuestJoined, RoomCode: code}
}

func GuestLeft() Envelope {
	return Envelope{Type: TypeGuestLeft, Message: "guest left the room"}
}

func HostLeft() Envelope {
	return Envelope{Type: TypeHostLeft, Message: "host left the room"}
}

func Pong() Envelope {
	return Envelope{Type: TypePong}
}

func ErrorMessage(msg string) Envelope {
	return Envelope{Type: TypeError, Message: msg}
}

// Inbound is the client-to-server envelope. Only the fields the protocol
// dispatches on are modeled; anything else rides along in the raw frame.
type Inbound struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
}

func ParseInbound(raw []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		return Inbound{}, err
	}
	return in, nil
}
