package email

//go:generate mockgen -source=interfaces.go -destination=../mock/email_sender_mock.go -package=mock

import (
	"context"
	"fmt"
)

// Sender delivers one message.
type Sender interface {
	SendEmail(ctx context.Context, msg Message) error
}

// Message is a rendered email.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"-"`
	// Tag groups messages in the provider's statistics ("welcome", "digest").
	Tag string `json:"tag,omitempty"`
	// ReplyTo overrides the configured reply address.
	ReplyTo string `json:"reply_to,omitempty"`
}

// Validate checks the fields every backend needs.
func (m Message) Validate() error {
	switch {
	case m.To == "":
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	case m.Subject == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	case m.HTMLBody == "":
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}
