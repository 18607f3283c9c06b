package crypto

import (
	"errors"
	"fmt"
)

// Error kinds returned by [FieldCipher]. Messages never carry plaintext or key
// material; callers match them with [errors.Is].
var (
	// ErrConfiguration means the master key is missing or shorter than
	// [MinMasterKeyLen]. No cipher operation is attempted.
	ErrConfiguration = errors.New("field encryption is not configured")

	// ErrEncryption means the underlying cipher, KDF or random source failed.
	ErrEncryption = errors.New("field encryption failed")

	// ErrAuthentication means a blob could not be authenticated: it was
	// tampered with, corrupted, truncated or sealed under another key.
	ErrAuthentication = errors.New("encrypted field failed authentication")
)

// ErrMalformedBlob is returned when a stored value cannot even be split into
// salt, iv, tag and ciphertext. It matches [ErrAuthentication].
var ErrMalformedBlob = fmt.Errorf("%w: malformed payload", ErrAuthentication)

// FieldError describes one document field that could not be decrypted.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
