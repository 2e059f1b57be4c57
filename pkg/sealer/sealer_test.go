package sealer

import (
	"encoding/base64"
	"testing"
)

func testSealer(t *testing.T) *Sealer {
	t.Helper()
	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	s, err := New(key)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSealAndOpenSlot(t *testing.T) {
	s := testSealer(t)

	token, err := s.SealSlot("venue-1", "hotel_room", "room-42")
	if err != nil {
		t.Fatalf("SealSlot: %v", err)
	}

	venueID, kind, resourceID, err := s.OpenSlot(token)
	if err != nil {
		t.Fatalf("OpenSlot: %v", err)
	}

	if venueID != "venue-1" || kind != "hotel_room" || resourceID != "room-42" {
		t.Errorf("OpenSlot = (%q, %q, %q), want (venue-1, hotel_room, room-42)", venueID, kind, resourceID)
	}
}

func TestOpenSlotRejectsTamperedToken(t *testing.T) {
	s := testSealer(t)

	token, err := s.SealSlot("venue-1", "sports_facility", "court-3")
	if err != nil {
		t.Fatalf("SealSlot: %v", err)
	}

	raw, _ := base64.RawURLEncoding.DecodeString(token)
	raw[len(raw)-1] ^= 0xFF
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	if _, _, _, err := s.OpenSlot(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestOpenSlotRejectsGarbage(t *testing.T) {
	s := testSealer(t)

	if _, _, _, err := s.OpenSlot("not-a-token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}

	if _, _, _, err := s.OpenSlot(""); err == nil {
		t.Error("expected empty token to be rejected")
	}
}

func TestNewFromEnvFallbackKey(t *testing.T) {
	t.Setenv(EnvSlotTokenKey, "")

	s, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv without %s: %v", EnvSlotTokenKey, err)
	}

	token, err := s.SealSlot("venue-1", "restaurant_table", "table-7")
	if err != nil {
		t.Fatalf("SealSlot: %v", err)
	}
	if _, _, _, err := s.OpenSlot(token); err != nil {
		t.Errorf("OpenSlot: %v", err)
	}
}

func TestNewRejectsBadKeys(t *testing.T) {
	if _, err := New("%%%"); err == nil {
		t.Error("expected non-base64 key to be rejected")
	}

	short := base64.StdEncoding.EncodeToString([]byte("too-short"))
	if _, err := New(short); err == nil {
		t.Error("expected short key to be rejected")
	}
}
