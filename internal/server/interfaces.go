package server

import "context"

// Server is the lifecycle of the process.
type Server interface {
	// RunServer serves until ctx is cancelled or a stop signal arrives, then
	// shuts down and returns.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting requests and waits for in-flight ones until
	// ctx expires.
	Shutdown(ctx context.Context) error
}
