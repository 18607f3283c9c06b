package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidation is matched by every [FieldError].
	ErrValidation = errors.New("validation failed")
)

// Message catalog keys returned in [FieldError.Key].
const (
	KeyInvalidEmail        = "errors.invalid_email"
	KeyPasswordTooShort    = "errors.password_too_short"
	KeyUnsupportedLanguage = "errors.unsupported_language"
	KeyRequired            = "errors.required"
	KeyTooLong             = "errors.too_long"
	KeyInvalidPhone        = "errors.invalid_phone"
	KeyInvalidBirthDate    = "errors.invalid_birth_date"
	KeyInvalidHebrewLevel  = "errors.invalid_hebrew_level"
	KeyInvalidAliyahStatus = "errors.invalid_aliyah_status"
	KeyNothingToUpdate     = "errors.nothing_to_update"
)

// FieldError reports one rejected input field. Key and Args select a
// localized message; the offending value is never included.
type FieldError struct {
	Field string
	Key   string
	Args  []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func fieldError(field, key string, args ...string) error {
	return &FieldError{Field: field, Key: key, Args: args}
}
