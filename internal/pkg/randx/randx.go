/*
Package randx provides functions for generating cryptographically secure random tokens and identifiers.

It is primarily used to generate the random component of stored filenames and
standard UUID identifiers for file and message records.
*/
package randx

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// FileNameTokenLength is the number of hex characters in the random component of a stored filename.
const FileNameTokenLength = 16

// Hex generates a random lowercase hex string of length n using crypto/rand.
// n must be even since every random byte encodes to two hex characters.
func Hex(n int) (string, error) {
	if n <= 0 || n%2 != 0 {
		return "", fmt.Errorf("hex token length must be a positive even number, got %d", n)
	}

	buf := make([]byte, n/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes for hex token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// FileID generates a standard UUID v4 string to serve as a unique identifier for a file record.
func FileID() string {
	return uuid.New().String()
}

// MessageID generates a standard UUID v4 string to serve as a unique identifier for a message.
func MessageID() string {
	return uuid.New().String()
}
