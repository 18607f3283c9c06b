package crypto

import (
	"encoding/base64"
	"fmt"
)

// Fixed widths of the blob segments. Changing any of them breaks every
// profile already stored.
const (
	SaltLen = 32
	IVLen   = 16
	TagLen  = 16

	headerLen = SaltLen + IVLen + TagLen
)

// EncryptedBlob is the decomposed form of a stored field value.
type EncryptedBlob struct {
	Salt       []byte
	IV         []byte
	Tag        []byte
	Ciphertext []byte
}

// Encode packs the blob as salt ‖ iv ‖ tag ‖ ciphertext and returns it in
// standard padded base64.
func (b EncryptedBlob) Encode() string {
	buf := make([]byte, 0, headerLen+len(b.Ciphertext))
	buf = append(buf, b.Salt...)
	buf = append(buf, b.IV...)
	buf = append(buf, b.Tag...)
	buf = append(buf, b.Ciphertext...)

	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeBlob is the inverse of [EncryptedBlob.Encode]. It fails with
// [ErrMalformedBlob] when s is not base64 or is shorter than the fixed header.
func DecodeBlob(s string) (EncryptedBlob, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: not base64", ErrMalformedBlob)
	}

	if len(raw) < headerLen {
		return EncryptedBlob{}, fmt.Errorf("%w: %d bytes, want at least %d", ErrMalformedBlob, len(raw), headerLen)
	}

	return EncryptedBlob{
		Salt:       raw[:SaltLen],
		IV:         raw[SaltLen : SaltLen+IVLen],
		Tag:        raw[SaltLen+IVLen : headerLen],
		Ciphertext: raw[headerLen:],
	}, nil
}

func (b EncryptedBlob) valid() bool {
	return len(b.Salt) == SaltLen && len(b.IV) == IVLen && len(b.Tag) == TagLen
}
