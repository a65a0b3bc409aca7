package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters!!"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := NewTokenService(testSecret, WithClock(clock.Now))
	require.NoError(t, err)

	token, err := svc.Issue("user-1", "alice")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, clock.t.Add(TokenLifetime), claims.ExpiresAt.Time)
}

func TestTokenService_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := NewTokenService(testSecret, WithClock(clock.Now))
	require.NoError(t, err)

	token, err := svc.Issue("user-1", "alice")
	require.NoError(t, err)

	clock.t = clock.t.Add(TokenLifetime - time.Minute)
	_, err = svc.Validate(token)
	assert.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrMalformedToken)
}

func TestTokenService_Malformed(t *testing.T) {
	svc, err := NewTokenService(testSecret)
	require.NoError(t, err)
	other, err := NewTokenService("another-secret-entirely-different!!")
	require.NoError(t, err)

	forged, err := other.Issue("user-1", "alice")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"empty", ""},
		{"wrong secret", forged},
		{"alg none", noneToken},
		{"other hmac algorithm", hs512},
		{"missing exp", noExp},
		{"missing user id", noUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestTokenService_ForgedAndExpiredIsMalformed(t *testing.T) {
	past := time.Now().Add(-30 * 24 * time.Hour)
	other, err := NewTokenService("another-secret-entirely-different!!", WithClock(func() time.Time { return past }))
	require.NoError(t, err)
	svc, err := NewTokenService(testSecret)
	require.NoError(t, err)

	token, err := other.Issue("user-1", "alice")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
