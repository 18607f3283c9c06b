package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/scrypt"
)

const testMasterKey = "0123456789abcdef0123456789abcdef"

// cheapKDF keeps the tests fast. Blobs sealed with it are not readable with
// DefaultKDFParams.
var cheapKDF = KDFParams{N: 16, R: 1, P: 1, KeyLen: 32}

func newTestCipher(t *testing.T, opts ...Option) FieldCipher {
	t.Helper()
	return NewFieldCipher(testMasterKey, append([]Option{WithKDFParams(cheapKDF)}, opts...)...)
}

// countingReader records how many bytes were requested from the random source.
type countingReader struct {
	n int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.n += len(p)
	for i := range p {
		p[i] = byte(i)
	}
	return len(p), nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

// ── round trip ───────────────────────────────────────────────────────────────

func TestFieldCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	cases := []string{
		"Dana",
		"דנה כהן",
		"María José Núñez",
		"+972-50-123-4567",
		"1990-04-12",
		strings.Repeat("x", 4096),
		"",
	}

	for _, plain := range cases {
		blob, err := c.Encrypt(plain)
		require.NoError(t, err)

		got, err := c.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestFieldCipher_RoundTripDefaultParams(t *testing.T) {
	c := NewFieldCipher(testMasterKey)

	blob, err := c.Encrypt("Jerusalem")
	require.NoError(t, err)

	got, err := c.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, "Jerusalem", got)
}

func TestFieldCipher_DecryptBlob(t *testing.T) {
	c := newTestCipher(t)

	s, err := c.Encrypt("Haifa")
	require.NoError(t, err)

	blob, err := DecodeBlob(s)
	require.NoError(t, err)

	got, err := c.DecryptBlob(blob)
	require.NoError(t, err)
	assert.Equal(t, "Haifa", got)

	blob.IV = blob.IV[:8]
	_, err = c.DecryptBlob(blob)
	assert.ErrorIs(t, err, ErrMalformedBlob)
	assert.ErrorIs(t, err, ErrAuthentication)
}

// ── wire format ──────────────────────────────────────────────────────────────

func TestFieldCipher_BlobLayout(t *testing.T) {
	c := newTestCipher(t)

	plain := "Tel Aviv"
	s, err := c.Encrypt(plain)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	assert.Len(t, raw, SaltLen+IVLen+TagLen+len(plain))
}

func TestFieldCipher_DecryptsHandPackedBlob(t *testing.T) {
	salt := bytes.Repeat([]byte{0x11}, SaltLen)
	iv := bytes.Repeat([]byte{0x22}, IVLen)

	key, err := scrypt.Key([]byte(testMasterKey), salt, cheapKDF.N, cheapKDF.R, cheapKDF.P, cheapKDF.KeyLen)
	require.NoError(t, err)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	gcm, err := cipher.NewGCMWithNonceSize(block, IVLen)
	require.NoError(t, err)

	sealed := gcm.Seal(nil, iv, []byte("Beersheba"), nil)
	ct, tag := sealed[:len(sealed)-TagLen], sealed[len(sealed)-TagLen:]

	var packed []byte
	packed = append(packed, salt...)
	packed = append(packed, iv...)
	packed = append(packed, tag...)
	packed = append(packed, ct...)

	got, err := newTestCipher(t).Decrypt(base64.StdEncoding.EncodeToString(packed))
	require.NoError(t, err)
	assert.Equal(t, "Beersheba", got)
}

// ── randomness ───────────────────────────────────────────────────────────────

func TestFieldCipher_NonDeterministic(t *testing.T) {
	c := newTestCipher(t)

	a, err := c.Encrypt("Dana")
	require.NoError(t, err)
	b, err := c.Encrypt("Dana")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	ba, err := DecodeBlob(a)
	require.NoError(t, err)
	bb, err := DecodeBlob(b)
	require.NoError(t, err)
	assert.NotEqual(t, ba.Salt, bb.Salt)
	assert.NotEqual(t, ba.IV, bb.IV)
}

func TestFieldCipher_RandomFailure(t *testing.T) {
	c := newTestCipher(t, WithRandom(failingReader{}))

	_, err := c.Encrypt("Dana")
	require.ErrorIs(t, err, ErrEncryption)
	assert.NotContains(t, err.Error(), "Dana")
}

// ── tamper detection ─────────────────────────────────────────────────────────

func TestFieldCipher_TamperDetection(t *testing.T) {
	c := newTestCipher(t)

	plain := "secret phone"
	s, err := c.Encrypt(plain)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)

	// Every bit of the tag and ciphertext regions.
	for i := SaltLen + IVLen; i < len(raw); i++ {
		for bit := 0; bit < 8; bit++ {
			mutated := append([]byte(nil), raw...)
			mutated[i] ^= 1 << bit

			got, err := c.Decrypt(base64.StdEncoding.EncodeToString(mutated))
			require.ErrorIs(t, err, ErrAuthentication, "byte %d bit %d", i, bit)
			require.Empty(t, got)
		}
	}
}

func TestFieldCipher_TamperedSaltAndIV(t *testing.T) {
	c := newTestCipher(t)

	s, err := c.Encrypt("city")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)

	for _, i := range []int{0, SaltLen - 1, SaltLen, SaltLen + IVLen - 1} {
		mutated := append([]byte(nil), raw...)
		mutated[i] ^= 0x80

		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(mutated))
		assert.ErrorIs(t, err, ErrAuthentication, "byte %d", i)
	}
}

func TestFieldCipher_WrongKey(t *testing.T) {
	s, err := newTestCipher(t).Encrypt("Dana")
	require.NoError(t, err)

	other := NewFieldCipher(strings.Repeat("z", 40), WithKDFParams(cheapKDF))
	_, err = other.Decrypt(s)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestFieldCipher_MalformedBlob(t *testing.T) {
	c := newTestCipher(t)

	cases := map[string]string{
		"not base64": "%%%not-base64%%%",
		"empty":      "",
		"too short":  base64.StdEncoding.EncodeToString(make([]byte, SaltLen+IVLen+TagLen-1)),
	}

	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decrypt(blob)
			assert.ErrorIs(t, err, ErrMalformedBlob)
			assert.ErrorIs(t, err, ErrAuthentication)
		})
	}
}

// ── configuration ────────────────────────────────────────────────────────────

func TestFieldCipher_MinimumKey(t *testing.T) {
	for _, key := range []string{"", "short", testMasterKey[:MinMasterKeyLen-1]} {
		rnd := &countingReader{}
		c := NewFieldCipher(key, WithKDFParams(cheapKDF), WithRandom(rnd))

		_, err := c.Encrypt("Dana")
		assert.ErrorIs(t, err, ErrConfiguration)

		_, err = c.Decrypt("anything")
		assert.ErrorIs(t, err, ErrConfiguration)

		_, err = c.DecryptBlob(EncryptedBlob{})
		assert.ErrorIs(t, err, ErrConfiguration)

		assert.Zero(t, rnd.n, "no random bytes may be drawn for key %q", key)
	}
}

func TestFieldCipher_ErrorsDoNotLeak(t *testing.T) {
	c := NewFieldCipher("short-but-secret")
	_, err := c.Encrypt("Dana")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "short-but-secret")
	assert.NotContains(t, err.Error(), "Dana")

	good := newTestCipher(t)
	_, err = good.Decrypt(base64.StdEncoding.EncodeToString(make([]byte, 80)))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testMasterKey)
}

func TestValidateMasterKey(t *testing.T) {
	assert.ErrorIs(t, ValidateMasterKey(""), ErrConfiguration)
	assert.ErrorIs(t, ValidateMasterKey(strings.Repeat("a", 31)), ErrConfiguration)
	assert.NoError(t, ValidateMasterKey(strings.Repeat("a", 32)))

	// 16 Hebrew letters are 32 bytes but only 16 characters.
	assert.ErrorIs(t, ValidateMasterKey(strings.Repeat("ש", 16)), ErrConfiguration)
	assert.NoError(t, ValidateMasterKey(strings.Repeat("ש", 32)))
}

func TestErrorKindsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrAuthentication, ErrConfiguration))
	assert.False(t, errors.Is(ErrEncryption, ErrAuthentication))
	assert.True(t, errors.Is(ErrMalformedBlob, ErrAuthentication))
}
