package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// outboxSender writes each message as an HTML file plus a JSON file with the
// envelope, for local runs without a mail provider.
type outboxSender struct {
	dir   string
	clock clockwork.Clock
}

// NewOutboxSender returns a [Sender] that stores messages under dir. The
// directory is created on first use.
func NewOutboxSender(dir string, clock clockwork.Clock) Sender {
	return &outboxSender{dir: dir, clock: clock}
}

type outboxEnvelope struct {
	Timestamp string `json:"timestamp"`
	Message
}

// SendEmail implements [Sender].
func (s *outboxSender) SendEmail(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create outbox: %w", ErrFailedToSendEmail, err)
	}

	now := s.clock.Now()
	identifier := msg.Tag
	if identifier == "" {
		identifier = msg.Subject
	}
	// the random suffix keeps same-tag messages of one instant apart
	base := filepath.Join(s.dir, fmt.Sprintf("%s_%s_%s",
		now.Format("2006_01_02_150405.000000"), sanitizeFilename(identifier), uuid.NewString()[:8]))

	if err := os.WriteFile(base+".html", []byte(msg.HTMLBody), 0o644); err != nil {
		return fmt.Errorf("%w: write html: %w", ErrFailedToSendEmail, err)
	}

	envelope, err := json.MarshalIndent(outboxEnvelope{Timestamp: now.Format(time.RFC3339), Message: msg}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal envelope: %w", ErrFailedToSendEmail, err)
	}

	if err := os.WriteFile(base+".json", envelope, 0o644); err != nil {
		return fmt.Errorf("%w: write envelope: %w", ErrFailedToSendEmail, err)
	}

	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
