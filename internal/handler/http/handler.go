package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/metrics"
	"github.com/MKhiriev/go-aliyah/internal/service"
	"github.com/jonboulle/clockwork"
)

// Options carries the transport settings of [Handler]. Zero values disable
// the corresponding feature.
type Options struct {
	// DefaultLanguage is used when a request names no supported language.
	DefaultLanguage string

	// RequestTimeout bounds every request.
	RequestTimeout time.Duration

	// ContactRateLimit is the number of contact messages accepted per client
	// address per minute.
	ContactRateLimit int

	// Metrics records request counts and latencies.
	Metrics *metrics.HTTPMetrics

	// MetricsHandler serves GET /metrics.
	MetricsHandler http.Handler

	Clock clockwork.Clock
}

type Handler struct {
	services *service.Services
	catalog  *i18n.Catalog
	options  Options

	contactLimiter *ipRateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, catalog *i18n.Catalog, options Options, logger *logger.Logger) *Handler {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if !i18n.IsSupported(options.DefaultLanguage) {
		options.DefaultLanguage = i18n.DefaultLanguage
	}

	h := &Handler{
		services: services,
		catalog:  catalog,
		options:  options,
		logger:   logger,
	}
	if options.ContactRateLimit > 0 {
		h.contactLimiter = newIPRateLimiter(options.ContactRateLimit, time.Minute, options.Clock)
	}

	logger.Info().Msg("http handler created")
	return h
}
