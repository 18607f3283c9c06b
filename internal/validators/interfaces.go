// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the
// services. Failures are *FieldError values carrying an i18n key, so the
// transport can answer in the caller's language.
package validators

import "context"

// Validator validates v. When fields are given, only those fields are
// checked; the rest of v is ignored.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
