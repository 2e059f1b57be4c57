package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
)

// Slot tokens hide raw resource identifiers from API consumers: the
// concierge hands out an opaque token for venueID:kind:resourceID and only
// the backend can open it. Tokens are not stored, so key rotation simply
// invalidates outstanding search results.

const (
	EnvSlotTokenKey = "SLOT_TOKEN_KEY"

	// development fallback, never used when SLOT_TOKEN_KEY is set
	defaultKey = "VmVudWVseVNsb3RUb2tlbkRldktleTMyQnl0ZXMhISE="
)

type Sealer struct {
	key []byte
}

// New builds a Sealer from a base64-encoded 32-byte AES key.
func New(encodedKey string) (*Sealer, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid sealer key encoding: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("sealer key must be 32 bytes, got %d", len(key))
	}
	return &Sealer{key: key}, nil
}

// NewFromEnv reads SLOT_TOKEN_KEY, falling back to the development key.
func NewFromEnv() (*Sealer, error) {
	encoded := os.Getenv(EnvSlotTokenKey)
	if encoded == "" {
		encoded = defaultKey
	}
	return New(encoded)
}

// SealSlot produces an opaque token for a reservable slot.
func (s *Sealer) SealSlot(venueID, kind, resourceID string) (string, error) {
	plaintext := []byte(venueID + ":" + kind + ":" + resourceID)

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ct := aesgcm.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(ct), nil
}

// OpenSlot recovers the venue, kind and resource id from a token. A
// tampered or foreign-key token fails authentication.
func (s *Sealer) OpenSlot(token string) (venueID, kind, resourceID string, err error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", "", "", err
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", "", "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", "", "", err
	}

	nonceSize := aesgcm.NonceSize()
	if len(data) < nonceSize {
		return "", "", "", fmt.Errorf("token too short")
	}
	nonce := data[:nonceSize]
	ciphertext := data[nonceSize:]

	pt, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", "", "", err
	}

	parts := strings.SplitN(string(pt), ":", 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("invalid token format")
	}

	return parts[0], parts[1], parts[2], nil
}
