package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-aliyah/models"
)

// ErrInvalidSignerParams is returned by [NewJWTSigner] when issuer, key or
// lifetime is missing.
var ErrInvalidSignerParams = errors.New("invalid params for JWT signer")

// JWTSigner issues and verifies HS256 access tokens whose subject is the
// numeric user id.
type JWTSigner struct {
	issuer string
	key    []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewJWTSigner returns a signer. A nil clock means the wall clock.
func NewJWTSigner(issuer, signKey string, ttl time.Duration, clock clockwork.Clock) (*JWTSigner, error) {
	if issuer == "" || signKey == "" || ttl <= 0 {
		return nil, ErrInvalidSignerParams
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &JWTSigner{issuer: issuer, key: []byte(signKey), ttl: ttl, clock: clock}, nil
}

// Sign issues a token for userID valid from now for the signer's lifetime.
func (s *JWTSigner) Sign(userID int64) (models.Token, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return models.Token{}, fmt.Errorf("error signing JWT token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: claims, SignedString: signed, UserID: userID}, nil
}

// Parse verifies signature, algorithm, issuer and expiry of raw and returns
// the token with its UserID filled from the subject.
func (s *JWTSigner) Parse(raw string) (models.Token, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error validating JWT token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("token has no subject")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("token subject %q is not a user id: %w", claims.Subject, err)
	}

	return models.Token{Token: token, RegisteredClaims: claims, SignedString: raw, UserID: userID}, nil
}
