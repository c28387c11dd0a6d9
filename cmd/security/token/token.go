package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Subject is the identity carried inside every token.
type Subject struct {
	ID    string
	Name  string
	Email string
}

// Claims is the signed claim-set for both token kinds.
type Claims struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and verifies access and refresh tokens.
type Manager struct {
	cfg Config
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, fmt.Errorf("%w: missing signing secret", ErrConfig)
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("%w: non-positive TTL", ErrConfig)
	}
	return &Manager{cfg: cfg}, nil
}

// IssueAccess mints a short-lived access token for sub.
func (m *Manager) IssueAccess(sub Subject, now time.Time) (string, time.Time, error) {
	return m.issue(sub, now, m.cfg.AccessTokenTTL, m.cfg.AccessSecret)
}

// IssueRefresh mints a long-lived refresh token for sub.
func (m *Manager) IssueRefresh(sub Subject, now time.Time) (string, time.Time, error) {
	return m.issue(sub, now, m.cfg.RefreshTokenTTL, m.cfg.RefreshSecret)
}

func (m *Manager) issue(sub Subject, now time.Time, ttl time.Duration, secret []byte) (string, time.Time, error) {
	if sub.ID == "" {
		return "", time.Time{}, fmt.Errorf("%w: empty subject id", ErrTokenInvalid)
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	exp := now.Add(ttl)
	claims := Claims{
		ID:    sub.ID,
		Name:  sub.Name,
		Email: sub.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   sub.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// VerifyAccess verifies an access token and returns its claims.
func (m *Manager) VerifyAccess(tokenStr string) (Claims, error) {
	return m.verify(tokenStr, m.cfg.AccessSecret)
}

// VerifyRefresh verifies a refresh token and returns its claims.
func (m *Manager) VerifyRefresh(tokenStr string) (Claims, error) {
	return m.verify(tokenStr, m.cfg.RefreshSecret)
}

func (m *Manager) verify(tokenStr string, secret []byte) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// Expiry must stay distinguishable from tampering; callers show
		// different user-facing messages for the two cases.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !parsed.Valid || claims.ID == "" {
		return Claims{}, ErrTokenInvalid
	}

	return claims, nil
}

// HashSHA256Hex returns a SHA-256 hex digest of s. Refresh tokens are stored
// server-side only as this digest, never in plaintext.
func HashSHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
