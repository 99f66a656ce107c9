package domain

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	roomCodeLength   = 6
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func NewClientID() string {
	return uuid.New().String()
}

// NewRoomCode returns a short human-typable code. Uniqueness is
// probabilistic; the room table rejects collisions and the caller retries.
func NewRoomCode() string {
	b := make([]byte, roomCodeLength)
	for i := range b {
		b[i] = roomCodeAlphabet[randomIndex(len(roomCodeAlphabet))]
	}
	return string(b)
}

func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}
	return int(n.Int64())
}

// CanonicalCode upper-cases a room code so lookups are case-insensitive.
func CanonicalCode(code string) string {
	return strings.ToUpper(code)
}
