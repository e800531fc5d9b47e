package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims is the identity carried by a bearer token.
type TokenClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager signs tokens with the current secret and accepts tokens signed
// with the current or any previous secret, so secrets can be rotated without
// logging every user out.
type TokenManager struct {
	secret   []byte
	previous [][]byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenManager(config JWTConfig) *TokenManager {
	previous := make([][]byte, 0, len(config.PreviousSecrets))
	for _, s := range config.PreviousSecrets {
		previous = append(previous, []byte(s))
	}
	return &TokenManager{
		secret:   []byte(config.Secret),
		previous: previous,
		validity: time.Duration(config.ExpiryHours) * time.Hour,
		now:      time.Now,
	}
}

func (m *TokenManager) Generate(userID, username string) (string, error) {
	now := m.now()
	claims := TokenClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) Verify(tokenString string) (*TokenClaims, error) {
	var lastErr error = ErrInvalidToken
	for _, secret := range m.secrets() {
		claims, err := m.parse(tokenString, secret)
		if err == nil {
			return claims, nil
		}
		// An expired token was signed with a known secret; other secrets won't help.
		if errors.Is(err, ErrExpiredToken) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (m *TokenManager) secrets() [][]byte {
	return append([][]byte{m.secret}, m.previous...)
}

func (m *TokenManager) parse(tokenString string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
