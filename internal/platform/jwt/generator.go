// Package jwtmw provides JWT issuance, verification and the Gin
// middleware protecting authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpiration is the token lifetime used when none is configured.
const DefaultExpiration = 7 * 24 * time.Hour

// ErrInvalidToken is returned for any token that fails verification.
// Malformed, expired and badly signed tokens deliberately collapse into
// this single outcome.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified payload of a token.
type Claims struct {
	UserID    uint
	Username  string
	ExpiresAt time.Time
}

// Generator defines the interface for signed token generation.
type Generator interface {
	// GenerateToken creates a signed token for the given user.
	GenerateToken(userID uint, username string) (string, error)
}

// Verifier defines the interface for token verification.
type Verifier interface {
	// VerifyToken checks signature and expiry and returns the payload.
	VerifyToken(raw string) (*Claims, error)
}

// tokenService implements Generator and Verifier with HS256 signing.
type tokenService struct {
	secret     []byte
	expiration time.Duration
}

// NewTokenService creates a token service with the provided secret and
// expiration duration.
func NewTokenService(secret string, expiration time.Duration) *tokenService {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &tokenService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed token with standard claims. The jti claim
// gives every token a unique identity even for the same user and instant.
func (s *tokenService) GenerateToken(userID uint, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.expiration).Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and verifies a raw token string.
func (s *tokenService) VerifyToken(raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC signing is accepted.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(float64) // JWT numbers decode as float64
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{UserID: uint(sub)}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return claims, nil
}
