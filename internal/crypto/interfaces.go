package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/field_cipher_mock.go -package=mock

// FieldCipher encrypts and decrypts single string fields for storage.
//
// Implementations hold nothing but the immutable master key and KDF
// parameters, so one instance is shared by all requests without locking.
type FieldCipher interface {
	// Encrypt seals plaintext into a base64 blob
	// (salt ‖ iv ‖ tag ‖ ciphertext). Two calls with the same plaintext
	// never return the same blob.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a base64 blob produced by Encrypt. The tag is verified
	// before any plaintext is returned.
	Decrypt(blob string) (string, error)

	// DecryptBlob is Decrypt for an already decoded blob.
	DecryptBlob(blob EncryptedBlob) (string, error)
}
