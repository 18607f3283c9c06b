package crypto

import (
	"errors"
	"maps"
)

// EncryptObject returns a copy of doc in which every string field listed in
// table is replaced by its encrypted counterpart. Unlisted keys are copied
// unchanged; listed keys that are absent or not strings are left alone.
//
// The operation is all-or-nothing: on the first failure it returns the error
// and a nil document, so no half-encrypted value can be written.
func EncryptObject(c FieldCipher, doc map[string]any, table FieldTable) (map[string]any, error) {
	out := maps.Clone(doc)
	if out == nil {
		return nil, nil
	}

	for _, p := range table.pairs {
		v, ok := out[p.Plain]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}

		blob, err := c.Encrypt(s)
		if err != nil {
			return nil, &FieldError{Field: p.Plain, Err: err}
		}

		delete(out, p.Plain)
		out[p.Encrypted] = blob
	}

	return out, nil
}

// DecryptObject is the inverse of [EncryptObject]. It always returns a
// document: a field whose ciphertext cannot be opened keeps its encrypted key
// and value, and the returned error joins one [*FieldError] per such field.
func DecryptObject(c FieldCipher, doc map[string]any, table FieldTable) (map[string]any, error) {
	out := maps.Clone(doc)
	if out == nil {
		return nil, nil
	}

	var errs []error
	for _, p := range table.pairs {
		v, ok := out[p.Encrypted]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}

		plain, err := c.Decrypt(s)
		if err != nil {
			errs = append(errs, &FieldError{Field: p.Encrypted, Err: err})
			continue
		}

		delete(out, p.Encrypted)
		out[p.Plain] = plain
	}

	return out, errors.Join(errs...)
}

// FailedFields extracts the field names from an error returned by
// [DecryptObject].
func FailedFields(err error) []string {
	if err == nil {
		return nil
	}

	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	var fields []string
	for _, e := range errs {
		var fe *FieldError
		if errors.As(e, &fe) {
			fields = append(fields, fe.Field)
		}
	}

	return fields
}
