// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/scrypt"
)

// MinMasterKeyLen is the shortest master key the cipher accepts, counted in
// characters (runes), not bytes.
const MinMasterKeyLen = 32

// KDFParams are the scrypt cost parameters. The defaults must not change for
// existing data; tests may lower them through [WithKDFParams].
type KDFParams struct {
	N      int
	R      int
	P      int
	KeyLen int
}

// DefaultKDFParams matches the parameters every stored blob was sealed with.
var DefaultKDFParams = KDFParams{N: 16384, R: 8, P: 1, KeyLen: 32}

// Option configures a [FieldCipher] at construction time.
type Option func(*fieldCipher)

// WithKDFParams overrides the scrypt cost. Blobs sealed with one set of
// parameters cannot be opened with another.
func WithKDFParams(p KDFParams) Option {
	return func(c *fieldCipher) {
		c.kdf = p
	}
}

// WithRandom replaces the random source used for salts and IVs.
func WithRandom(r io.Reader) Option {
	return func(c *fieldCipher) {
		c.random = r
	}
}

// fieldCipher is the AES-256-GCM implementation of [FieldCipher].
type fieldCipher struct {
	// masterKey is never logged, formatted or returned.
	masterKey []byte
	kdf       KDFParams
	random    io.Reader
}

// NewFieldCipher constructs a [FieldCipher] bound to masterKey.
//
// Construction never fails: a missing or short key is reported by every
// Encrypt/Decrypt call as [ErrConfiguration], so a misconfigured process
// refuses to touch personal data instead of refusing to start. Startup code
// should still call [ValidateMasterKey] to fail fast.
func NewFieldCipher(masterKey string, opts ...Option) FieldCipher {
	c := &fieldCipher{
		masterKey: []byte(masterKey),
		kdf:       DefaultKDFParams,
		random:    rand.Reader,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ValidateMasterKey reports [ErrConfiguration] when key cannot be used.
func ValidateMasterKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: master key is missing", ErrConfiguration)
	}
	if utf8.RuneCountInString(key) < MinMasterKeyLen {
		return fmt.Errorf("%w: master key must be at least %d characters", ErrConfiguration, MinMasterKeyLen)
	}

	return nil
}

// Encrypt implements [FieldCipher].
func (c *fieldCipher) Encrypt(plaintext string) (string, error) {
	if err := ValidateMasterKey(string(c.masterKey)); err != nil {
		return "", err
	}

	salt := make([]byte, SaltLen)
	if _, err := io.ReadFull(c.random, salt); err != nil {
		return "", fmt.Errorf("%w: generate salt", ErrEncryption)
	}

	iv := make([]byte, IVLen)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return "", fmt.Errorf("%w: generate iv", ErrEncryption)
	}

	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}

	// Seal returns ciphertext ‖ tag; the wire format wants the tag first.
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	ctLen := len(sealed) - TagLen

	blob := EncryptedBlob{
		Salt:       salt,
		IV:         iv,
		Tag:        sealed[ctLen:],
		Ciphertext: sealed[:ctLen],
	}

	return blob.Encode(), nil
}

// Decrypt implements [FieldCipher].
func (c *fieldCipher) Decrypt(blob string) (string, error) {
	if err := ValidateMasterKey(string(c.masterKey)); err != nil {
		return "", err
	}

	decoded, err := DecodeBlob(blob)
	if err != nil {
		return "", err
	}

	return c.open(decoded)
}

// DecryptBlob implements [FieldCipher].
func (c *fieldCipher) DecryptBlob(blob EncryptedBlob) (string, error) {
	if err := ValidateMasterKey(string(c.masterKey)); err != nil {
		return "", err
	}

	if !blob.valid() {
		return "", fmt.Errorf("%w: segment widths", ErrMalformedBlob)
	}

	return c.open(blob)
}

func (c *fieldCipher) open(blob EncryptedBlob) (string, error) {
	gcm, err := c.aead(blob.Salt)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(blob.Ciphertext)+TagLen)
	sealed = append(sealed, blob.Ciphertext...)
	sealed = append(sealed, blob.Tag...)

	plaintext, err := gcm.Open(nil, blob.IV, sealed, nil)
	if err != nil {
		// gcm.Open gives no detail worth keeping; never echo the input.
		return "", ErrAuthentication
	}

	return string(plaintext), nil
}

// aead derives the per-blob key from the master key and salt and builds
// AES-256-GCM with a 16-byte nonce.
func (c *fieldCipher) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(c.masterKey, salt, c.kdf.N, c.kdf.R, c.kdf.P, c.kdf.KeyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: derive key", ErrEncryption)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher", ErrEncryption)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, IVLen)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm", ErrEncryption)
	}

	return gcm, nil
}
