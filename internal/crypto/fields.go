package crypto

import (
	"fmt"
	"strings"
)

// EncryptedSuffix is appended to a sensitive field name to form the key that
// holds its ciphertext.
const EncryptedSuffix = "Encrypted"

// FieldPair maps one plaintext document key to its ciphertext key.
type FieldPair struct {
	Plain     string
	Encrypted string
}

// FieldTable is an ordered, validated list of sensitive fields.
type FieldTable struct {
	pairs []FieldPair
}

// NewFieldTable validates pairs and returns a table over them. Keys must be
// non-empty, unique across both columns and distinct from each other.
func NewFieldTable(pairs ...FieldPair) (FieldTable, error) {
	seen := make(map[string]struct{}, len(pairs)*2)

	for _, p := range pairs {
		if p.Plain == "" || p.Encrypted == "" {
			return FieldTable{}, fmt.Errorf("field table: empty key in %+v", p)
		}
		if p.Plain == p.Encrypted {
			return FieldTable{}, fmt.Errorf("field table: %q maps onto itself", p.Plain)
		}
		for _, key := range []string{p.Plain, p.Encrypted} {
			if _, ok := seen[key]; ok {
				return FieldTable{}, fmt.Errorf("field table: duplicate key %q", key)
			}
			seen[key] = struct{}{}
		}
	}

	return FieldTable{pairs: append([]FieldPair(nil), pairs...)}, nil
}

// MustFieldTable is like [NewFieldTable] but panics on an invalid table.
// It is meant for package-level tables.
func MustFieldTable(pairs ...FieldPair) FieldTable {
	t, err := NewFieldTable(pairs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Pair builds the conventional pair for field: name → nameEncrypted.
func Pair(field string) FieldPair {
	return FieldPair{Plain: field, Encrypted: field + EncryptedSuffix}
}

// Pairs returns a copy of the table rows.
func (t FieldTable) Pairs() []FieldPair {
	return append([]FieldPair(nil), t.pairs...)
}

// Len reports the number of sensitive fields.
func (t FieldTable) Len() int {
	return len(t.pairs)
}

// EncryptedKey returns the ciphertext key for a plaintext key.
func (t FieldTable) EncryptedKey(plain string) (string, bool) {
	for _, p := range t.pairs {
		if p.Plain == plain {
			return p.Encrypted, true
		}
	}
	return "", false
}

// PlainKey returns the plaintext key for a ciphertext key.
func (t FieldTable) PlainKey(encrypted string) (string, bool) {
	for _, p := range t.pairs {
		if p.Encrypted == encrypted {
			return p.Plain, true
		}
	}
	return "", false
}

// IsPlain reports whether key is a sensitive plaintext key.
func (t FieldTable) IsPlain(key string) bool {
	_, ok := t.EncryptedKey(key)
	return ok
}

func (t FieldTable) String() string {
	names := make([]string, 0, len(t.pairs))
	for _, p := range t.pairs {
		names = append(names, p.Plain)
	}
	return "[" + strings.Join(names, " ") + "]"
}

// ProfileFields lists the user profile attributes that are stored encrypted.
var ProfileFields = MustFieldTable(
	Pair("firstName"),
	Pair("lastName"),
	Pair("phone"),
	Pair("birthDate"),
	Pair("city"),
)
