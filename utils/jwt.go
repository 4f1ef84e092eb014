package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"trimly/config"

	"github.com/golang-jwt/jwt"
)

// AuthContext carries the authenticated caller through the booking flow.
// It replaces any free-floating credential store: built once per request by
// the auth middleware, read-only afterwards.
type AuthContext struct {
	UserID string `json:"userId"`
	Role   string `json:"role"` // "client", "barber" or "owner"
}

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
// Tokens are minted by the upstream backend with a shared HS256 secret.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// AuthContextFromToken validates a token string and extracts the caller identity.
func AuthContextFromToken(tokenString string) (*AuthContext, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = "client"
	}

	return &AuthContext{UserID: sub, Role: role}, nil
}
