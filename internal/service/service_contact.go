package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/validators"
	"github.com/MKhiriev/go-aliyah/models"
)

type contactService struct {
	mailer         *Mailer
	supportAddress string
	logger         *logger.Logger
}

func NewContactService(mailer *Mailer, supportAddress string, logger *logger.Logger) ContactService {
	return &contactService{
		mailer:         mailer,
		supportAddress: supportAddress,
		logger:         logger,
	}
}

// SendContactMessage forwards message to the support address. Unlike the
// welcome email, a delivery failure is returned to the caller.
func (s *contactService) SendContactMessage(ctx context.Context, message models.ContactMessage) error {
	if s.supportAddress == "" {
		return ErrContactNotConfigured
	}

	msg, err := s.mailer.Composer.Contact(s.supportAddress, message)
	if err != nil {
		return err
	}

	if err := s.mailer.deliver(ctx, msg); err != nil {
		return fmt.Errorf("forwarding contact message: %w", err)
	}

	logger.FromContext(ctx).Info().Str("from", logger.MaskEmail(message.Email)).Str("language", message.Language).Msg("contact message forwarded")
	return nil
}

type ContactValidationService struct {
	inner     ContactService
	validator validators.Validator
}

func NewContactValidationService(validator validators.Validator) ContactServiceWrapper {
	return &ContactValidationService{validator: validator}
}

func (v *ContactValidationService) SendContactMessage(ctx context.Context, message models.ContactMessage) error {
	if err := v.validator.Validate(ctx, message); err != nil {
		return fmt.Errorf("contact message validation: %w", err)
	}

	return v.inner.SendContactMessage(ctx, message)
}

func (v *ContactValidationService) Wrap(inner ContactService) ContactService {
	v.inner = inner
	return v
}
