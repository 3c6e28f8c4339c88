package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated covers every authentication failure: missing,
// malformed, tampered or expired tokens, and tokens whose subject does
// not resolve to a user.
var ErrUnauthenticated = errors.New("unauthenticated")

// TokenService issues and verifies signed expiring tokens carrying the
// user id as subject.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

// NewTokenService builds a service for the configured HMAC algorithm.
// Non-HMAC or unknown algorithm names are a configuration error.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok || method == nil {
		return nil, fmt.Errorf("unsupported token algorithm %q", algorithm)
	}
	return &TokenService{secret: []byte(secret), method: method, ttl: ttl}, nil
}

func (s *TokenService) Issue(userID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, algorithm and expiry and returns the user id
// encoded in the subject.
func (s *TokenService) Parse(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
	)
	if err != nil || !token.Valid {
		return 0, ErrUnauthenticated
	}
	if claims.Subject == "" {
		return 0, ErrUnauthenticated
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, ErrUnauthenticated
	}
	return uint(id), nil
}
