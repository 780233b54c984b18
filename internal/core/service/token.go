package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nusapress/articles-api/internal/core/domain"
)

// DefaultTokenTTL is the fixed validity window for issued tokens.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenClaims is the JWT payload: just enough to re-identify the subject
// and its role on later requests.
type TokenClaims struct {
	UserID int64       `json:"userId"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens bound to a single
// process-wide secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager. A non-positive ttl falls back to the
// default 7-day window.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the user with an absolute expiry ttl from now.
func (tm *TokenManager) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &TokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry. Every failure mode (forged,
// expired, malformed, wrong signing method) collapses into the single
// domain.ErrInvalidToken so callers cannot distinguish them.
func (tm *TokenManager) Verify(tokenStr string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tm.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
