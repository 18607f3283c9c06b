package service

import (
	"context"

	"github.com/MKhiriev/go-aliyah/internal/email"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/metrics"
)

// Mailer renders and sends messages and counts the outcome per template.
type Mailer struct {
	Composer *email.Composer
	Sender   email.Sender
	Metrics  *metrics.EmailMetrics
}

// deliver sends msg and records the outcome.
func (m *Mailer) deliver(ctx context.Context, msg email.Message) error {
	log := logger.FromContext(ctx)

	if err := m.Sender.SendEmail(ctx, msg); err != nil {
		m.Metrics.Sent.WithLabelValues(msg.Tag, "error").Inc()
		log.Err(err).
			Str("func", "*Mailer.deliver").
			Str("tag", msg.Tag).
			Str("to", logger.MaskEmail(msg.To)).
			Msg("email was not sent")
		return err
	}

	m.Metrics.Sent.WithLabelValues(msg.Tag, "ok").Inc()
	log.Debug().Str("tag", msg.Tag).Str("to", logger.MaskEmail(msg.To)).Msg("email sent")
	return nil
}
