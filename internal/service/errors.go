package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid email or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrRegistrationFailed = errors.New("registration failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrContactNotConfigured = errors.New("support address is not configured")
	ErrDependencyUnhealthy  = errors.New("dependency is unhealthy")
)
