package models

import "time"

// User is an account used for authentication. Personal details live in
// [Profile]; the account itself holds nothing that needs field encryption.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Email is the unique login identifier, stored lower-cased.
	Email string `json:"email"`

	// PasswordHash is the HMAC-SHA256 of the password. Never plaintext.
	PasswordHash string `json:"-"`

	// Language is the preferred interface language ("es" or "he").
	Language string `json:"language"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
