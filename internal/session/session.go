// Package session issues and verifies the signed cookie token that carries a
// signed-in user between requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName = "clinic_session"
	issuer     = "clinic-tracker"
)

var (
	ErrExpired = errors.New("session expired")
	ErrInvalid = errors.New("session invalid")
	ErrRevoked = errors.New("session revoked")
)

type Claims struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

type Manager struct {
	secret  []byte
	ttl     time.Duration
	revoker Revoker
	now     func() time.Time
}

func NewManager(secret string, ttl time.Duration, revoker Revoker) *Manager {
	if revoker == nil {
		revoker = NoopRevoker{}
	}
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoker: revoker,
		now:     time.Now,
	}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue signs a token for userID that expires after the configured TTL.
func (m *Manager) Issue(userID uint) (string, *Claims, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	id := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing session: %w", err)
	}

	return signed, &Claims{UserID: userID, TokenID: id, ExpiresAt: expiresAt}, nil
}

// Parse verifies the signature, expiry and revocation state of raw.
func (m *Manager) Parse(ctx context.Context, raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		raw,
		&sessionClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	sc, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || sc.ID == "" {
		return nil, ErrInvalid
	}

	userID, err := strconv.ParseUint(sc.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, ErrInvalid
	}

	revoked, err := m.revoker.IsRevoked(ctx, sc.ID)
	if err != nil {
		return nil, fmt.Errorf("checking revocation: %w", err)
	}
	if revoked {
		return nil, ErrRevoked
	}

	return &Claims{
		UserID:    uint(userID),
		TokenID:   sc.ID,
		ExpiresAt: sc.ExpiresAt.Time,
	}, nil
}

// Revoke marks the token as unusable until it would have expired anyway.
func (m *Manager) Revoke(ctx context.Context, c *Claims) error {
	if c == nil {
		return nil
	}
	ttl := c.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.revoker.Revoke(ctx, c.TokenID, ttl)
}
