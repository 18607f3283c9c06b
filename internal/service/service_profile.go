package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/crypto"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/store"
	"github.com/MKhiriev/go-aliyah/models"
)

// profileService reads and updates the caller's profile through the
// encrypting repository decorator.
type profileService struct {
	profileRepository store.ProfileRepository
	logger            *logger.Logger
}

func NewProfileService(profileRepository store.ProfileRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		logger:            logger,
	}
}

// GetProfile returns the decrypted profile. Sensitive fields that could not
// be decrypted are empty and listed in UnavailableFields.
func (s *profileService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	doc, err := s.profileRepository.FindProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return s.toProfile(ctx, userID, doc), nil
}

// UpdateProfile applies the fields present in update and returns the result.
func (s *profileService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.Profile, error) {
	doc := update.ToDocument()
	if len(doc) == 0 {
		return models.Profile{}, ErrInvalidDataProvided
	}

	updated, err := s.profileRepository.UpdateProfile(ctx, userID, doc)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileService.UpdateProfile").Int64("user_id", userID).Msg("profile update failed")
		return models.Profile{}, fmt.Errorf("profile update failed: %w", err)
	}

	return s.toProfile(ctx, userID, updated), nil
}

func (s *profileService) toProfile(ctx context.Context, userID int64, doc models.ProfileDocument) models.Profile {
	profile := models.ProfileFromDocument(doc)
	profile.UserID = userID
	profile.UnavailableFields = store.UnavailableFields(doc, crypto.ProfileFields)

	if len(profile.UnavailableFields) > 0 {
		logger.FromContext(ctx).Warn().Object("profile", profile).Msg("profile served with unavailable fields")
	}

	return profile
}
