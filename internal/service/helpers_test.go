package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/email"
	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/internal/metrics"
	"github.com/MKhiriev/go-aliyah/internal/validators"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T, sender email.Sender) *Mailer {
	t.Helper()

	composer, err := email.NewComposer(i18n.MustLoad())
	require.NoError(t, err)

	return &Mailer{
		Composer: composer,
		Sender:   sender,
		Metrics:  metrics.NewEmailMetrics(prometheus.NewRegistry()),
	}
}

func newTestValidator() validators.Validator {
	return validators.NewAliyahValidator(clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func ptr[T any](v T) *T { return &v }
