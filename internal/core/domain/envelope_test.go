package domain

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeOmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(RoomCreated("AB12CD"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"roomCreated","roomCode":"AB12CD","role":"host"}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}

	b, _ = json.Marshal(Pong())
	if string(b) != `{"type":"pong"}` {
		t.Fatalf("pong marshals to %s", b)
	}
}

func TestParseInbound(t *testing.T) {
	in, err := ParseInbound([]byte(`{"type":"joinRoom","roomCode":"ab12cd","junk":1}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Type != TypeJoinRoom || in.RoomCode != "ab12cd" {
		t.Fatalf("parsed %+v", in)
	}

	if _, err := ParseInbound([]byte(`{broken`)); err == nil {
		t.Fatal("expected error for malformed frame")
	}
	if _, err := ParseInbound([]byte(`[1,2]`)); err == nil {
		t.Fatal("expected error for non-object frame")
	}
}
