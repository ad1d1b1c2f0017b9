package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-that-is-long-enough-for-hs256"

func TestIssueAndParse(t *testing.T) {
	m := NewManager(secret, time.Hour, nil)

	raw, issued, err := m.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.TokenID)

	got, err := m.Parse(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.UserID)
	assert.Equal(t, issued.TokenID, got.TokenID)
}

func TestParseRejectsTampering(t *testing.T) {
	m := NewManager(secret, time.Hour, nil)
	raw, _, err := m.Issue(1)
	require.NoError(t, err)

	other := NewManager("another-secret-entirely-different-value", time.Hour, nil)
	_, err = other.Parse(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = m.Parse(context.Background(), raw+"x")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = m.Parse(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	m := NewManager(secret, time.Hour, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "abc",
			Issuer:    issuer,
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseExpired(t *testing.T) {
	m := NewManager(secret, time.Minute, nil)
	start := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }

	raw, _, err := m.Issue(7)
	require.NoError(t, err)

	m.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = m.Parse(context.Background(), raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestRevoke(t *testing.T) {
	revoker := NewMemoryRevoker()
	m := NewManager(secret, time.Hour, revoker)
	ctx := context.Background()

	raw, claims, err := m.Issue(3)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, claims))
	_, err = m.Parse(ctx, raw)
	assert.ErrorIs(t, err, ErrRevoked)

	fresh, _, err := m.Issue(3)
	require.NoError(t, err)
	_, err = m.Parse(ctx, fresh)
	assert.NoError(t, err)
}

func TestMemoryRevokerForgetsAfterTTL(t *testing.T) {
	r := NewMemoryRevoker()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "id-1", time.Minute))

	revoked, err := r.IsRevoked(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(time.Minute)
	revoked, err = r.IsRevoked(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
