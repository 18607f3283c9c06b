package i18n

import "errors"

// ErrInvalidCatalog is returned when a catalog file cannot be parsed or a
// supported language has none.
var ErrInvalidCatalog = errors.New("invalid message catalog")
