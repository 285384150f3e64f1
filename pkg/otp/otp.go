package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
)

// Generator produces numeric one-time codes from an injected randomness
// source, so tests can supply a deterministic reader.
type Generator struct {
	rand   io.Reader
	length int
}

// NewGenerator creates a Generator reading from r. Pass nil to use
// crypto/rand. Lengths outside 4..10 are clamped to 6.
func NewGenerator(r io.Reader, length int) *Generator {
	if r == nil {
		r = rand.Reader
	}
	if length < 4 || length > 10 {
		length = 6
	}
	return &Generator{rand: r, length: length}
}

// Generate returns a zero-padded numeric code. Source bytes >= 250 are
// discarded so b%10 leaves every digit equally likely.
func (g *Generator) Generate() (string, error) {
	code := make([]byte, 0, g.length)
	var buf [1]byte
	for len(code) < g.length {
		if _, err := io.ReadFull(g.rand, buf[:]); err != nil {
			return "", fmt.Errorf("failed to read randomness: %w", err)
		}
		if buf[0] >= 250 {
			continue
		}
		code = append(code, '0'+buf[0]%10)
	}
	return string(code), nil
}

// Equal compares a submitted code against the stored one in constant time
func Equal(stored, submitted string) bool {
	if len(stored) == 0 || len(stored) != len(submitted) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
