package email

import (
	"github.com/MKhiriev/go-aliyah/internal/config"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/jonboulle/clockwork"
)

// DefaultOutboxDir is used when neither Postmark nor an outbox is configured.
const DefaultOutboxDir = "outbox"

// NewSender picks the delivery backend from cfg: Postmark when a server token
// is set, the local outbox otherwise.
func NewSender(cfg config.Email, clock clockwork.Clock, log *logger.Logger) (Sender, error) {
	if cfg.PostmarkServerToken != "" {
		log.Info().Msg("email: delivering through postmark")
		return NewPostmarkSender(cfg)
	}

	dir := cfg.OutboxDir
	if dir == "" {
		dir = DefaultOutboxDir
	}
	log.Warn().Str("dir", dir).Msg("email: postmark is not configured, writing messages to the outbox")

	return NewOutboxSender(dir, clock), nil
}
