package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an empty or in-memory database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing secrets, a short field
	// encryption key or an unsupported default language.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidEmailConfigs indicates incomplete email delivery settings.
	ErrInvalidEmailConfigs = errors.New("invalid email configuration")
	// ErrInvalidNewsConfigs indicates a malformed feed entry.
	ErrInvalidNewsConfigs = errors.New("invalid news configuration")
)
