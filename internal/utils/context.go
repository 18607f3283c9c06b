// Package utils holds small helpers shared by the service and transport
// layers: request context values, password hashing, JSON responses, the
// outbound HTTP client, JWT signing and id generation.
package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return "aliyah/" + string(c)
}

const userIDKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the id stored by [WithUserID]. ok is false when
// the request was not authenticated.
func UserIDFromContext(ctx context.Context) (userID int64, ok bool) {
	userID, ok = ctx.Value(userIDKey).(int64)
	return userID, ok
}
