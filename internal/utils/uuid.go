package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for ingested articles.
type UUIDGenerator struct {
}

// NewUUIDGenerator constructs a [UUIDGenerator].
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, falling back to v4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
