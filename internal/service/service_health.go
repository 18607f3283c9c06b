package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/store"
)

// PingFunc adapts a function to store.HealthChecker.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

type healthService struct {
	checks map[string]store.HealthChecker
}

// NewHealthService checks every named dependency on each call.
func NewHealthService(checks map[string]store.HealthChecker) HealthService {
	return &healthService{checks: checks}
}

func (s *healthService) Check(ctx context.Context) error {
	for name, check := range s.checks {
		if err := check.PingContext(ctx); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDependencyUnhealthy, name, err)
		}
	}

	return nil
}
