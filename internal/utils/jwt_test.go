package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signerEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSigner(t *testing.T, clock clockwork.Clock) *JWTSigner {
	t.Helper()
	s, err := NewJWTSigner("aliyah", "sign-key", time.Hour, clock)
	require.NoError(t, err)
	return s
}

func TestNewJWTSigner_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		issuer string
		key    string
		ttl    time.Duration
	}{
		{name: "no issuer", key: "k", ttl: time.Hour},
		{name: "no key", issuer: "i", ttl: time.Hour},
		{name: "zero ttl", issuer: "i", key: "k"},
		{name: "negative ttl", issuer: "i", key: "k", ttl: -time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJWTSigner(tt.issuer, tt.key, tt.ttl, nil)
			assert.ErrorIs(t, err, ErrInvalidSignerParams)
		})
	}
}

func TestJWTSigner_SignAndParse(t *testing.T) {
	clock := clockwork.NewFakeClockAt(signerEpoch)
	s := newTestSigner(t, clock)

	token, err := s.Sign(42)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)
	assert.Equal(t, "Bearer "+token.SignedString, token.BearerHeader())
	assert.Equal(t, signerEpoch.Add(time.Hour), token.ExpiresAt.Time)

	parsed, err := s.Parse(token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, "aliyah", parsed.Issuer)
}

func TestJWTSigner_ParseExpired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(signerEpoch)
	s := newTestSigner(t, clock)

	token, err := s.Sign(7)
	require.NoError(t, err)

	clock.Advance(time.Hour + time.Second)

	_, err = s.Parse(token.SignedString)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTSigner_ParseRejects(t *testing.T) {
	clock := clockwork.NewFakeClockAt(signerEpoch)
	s := newTestSigner(t, clock)

	valid, err := s.Sign(7)
	require.NoError(t, err)

	otherKey, err := NewJWTSigner("aliyah", "other-key", time.Hour, clock)
	require.NoError(t, err)
	otherIssuer, err := NewJWTSigner("someone-else", "sign-key", time.Hour, clock)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "aliyah",
		ExpiresAt: jwt.NewNumericDate(signerEpoch.Add(time.Hour)),
	}).SignedString([]byte("sign-key"))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "aliyah",
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(signerEpoch.Add(time.Hour)),
	}).SignedString([]byte("sign-key"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  "aliyah",
		Subject: "7",
	}).SignedString([]byte("sign-key"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Issuer:    "aliyah",
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(signerEpoch.Add(time.Hour)),
	}).SignedString([]byte("sign-key"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		signer *JWTSigner
		raw    string
	}{
		{name: "wrong key", signer: otherKey, raw: valid.SignedString},
		{name: "wrong issuer", signer: otherIssuer, raw: valid.SignedString},
		{name: "malformed", signer: s, raw: "not-a-token"},
		{name: "empty", signer: s, raw: ""},
		{name: "no subject", signer: s, raw: noSubject},
		{name: "non numeric subject", signer: s, raw: badSubject},
		{name: "no expiry", signer: s, raw: noExpiry},
		{name: "other algorithm", signer: s, raw: hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.signer.Parse(tt.raw)
			assert.Error(t, err)
		})
	}
}
