// Package i18n holds the Spanish and Hebrew message catalogs and the request
// language negotiation.
//
// Catalogs are YAML documents embedded in the binary. Keys are dot-separated
// paths into the nested maps ("errors.invalid_email") and values may carry
// named placeholders written as %{name}.
package i18n
