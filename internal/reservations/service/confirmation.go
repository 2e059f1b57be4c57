package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// confirmationAlphabet excludes ambiguous glyphs (0/O, 1/I/L) so codes read
// back over the phone survive transcription.
const confirmationAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// generateConfirmationCode produces a short human-friendly code. Uniqueness
// is enforced by a unique index on confirmation_code; callers retry on a
// duplicate key error.
func generateConfirmationCode(length int) (string, error) {
	code := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(confirmationAlphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate confirmation code: %w", err)
		}
		code[i] = confirmationAlphabet[n.Int64()]
	}

	return string(code), nil
}
