package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token is an issued or verified access token. UserID comes from the
// subject claim; SignedString is what clients send back.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier parsed from the "sub" claim.
	UserID int64 `json:"-"`
}

// BearerHeader returns the Authorization header value for the token.
func (t *Token) BearerHeader() string {
	return "Bearer " + t.SignedString
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// AuthResponse is returned by register and login alongside the header.
type AuthResponse struct {
	Token    string `json:"token"`
	Language string `json:"language"`
}
