package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/placehub/placehub/internal/model"
)

var (
	// ErrSigningFailed indicates the token could not be signed.
	ErrSigningFailed = errors.New("token signing failed")
	// ErrTokenInvalid indicates the token signature is invalid or the
	// token has expired.
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// Claims is the payload carried by an identity token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager mints and verifies identity tokens. The signing secret is
// injected at construction and never read from ambient process state.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the given secret and token
// lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token binding the user ID and email, expiring after the
// configured lifetime.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrSigningFailed
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	return signed, nil
}

// Verify validates the token signature and expiry and returns the embedded
// identity. Stateless: tokens are never persisted or revoked early.
func (m *TokenManager) Verify(tokenString string) (*model.AuthContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return &model.AuthContext{
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}
