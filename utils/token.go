package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is embedded in both access and refresh tokens. ID is the internal
// store id, UserID the external one.
type Claims struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (m *TokenManager) RefreshExpiry() time.Duration {
	return m.refreshExpiry
}

func (m *TokenManager) GenerateAccessToken(id, email, userID string) (string, error) {
	return sign(m.accessSecret, m.accessExpiry, id, email, userID)
}

func (m *TokenManager) GenerateRefreshToken(id, email, userID string) (string, error) {
	return sign(m.refreshSecret, m.refreshExpiry, id, email, userID)
}

func (m *TokenManager) ValidateAccessToken(token string) (*Claims, error) {
	return parse(m.accessSecret, token)
}

func (m *TokenManager) ValidateRefreshToken(token string) (*Claims, error) {
	return parse(m.refreshSecret, token)
}

func sign(secret []byte, expiry time.Duration, id, email, userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:     id,
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parse(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
