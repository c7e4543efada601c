package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const flashTokenType = "flash"

// Claims represents the signed payload carried by a flash cookie.
// Payload is opaque to this package; callers encode their own messages.
type Claims struct {
	Payload []byte `json:"payload"`
	Type    string `json:"type"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret string
}

// NewManager creates new JWT manager
func NewManager(secret string) *Manager {
	return &Manager{secret: secret}
}

// GenerateFlashToken signs payload into a token that expires after ttl.
func (m *Manager) GenerateFlashToken(payload []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Payload: payload,
		Type:    flashTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateToken validates and parses token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// ValidateFlashToken validates token and returns its payload.
func (m *Manager) ValidateFlashToken(tokenString string) ([]byte, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Type != flashTokenType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", flashTokenType, claims.Type)
	}

	return claims.Payload, nil
}
