package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the session identity plus a kind discriminator, so an
// access token can never be replayed against the refresh endpoint even if
// both secrets were configured equal.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Role   string    `json:"role,omitempty"`
	Kind   string    `json:"kind"`
	jwt.RegisteredClaims
}
