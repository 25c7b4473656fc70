package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds JWT configuration
type Config struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// Claims represents the JWT claims structure. The subject is the user ID.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens.
type Manager struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}
