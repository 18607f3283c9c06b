package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/validators"
	"github.com/MKhiriev/go-aliyah/models"
)

type ProfileValidationService struct {
	inner     ProfileService
	validator validators.Validator
}

func NewProfileValidationService(validator validators.Validator) ProfileServiceWrapper {
	return &ProfileValidationService{validator: validator}
}

func (v *ProfileValidationService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	if userID <= 0 {
		return models.Profile{}, ErrInvalidDataProvided
	}

	return v.inner.GetProfile(ctx, userID)
}

func (v *ProfileValidationService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.Profile, error) {
	if userID <= 0 {
		return models.Profile{}, ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Profile{}, fmt.Errorf("profile update validation: %w", err)
	}

	return v.inner.UpdateProfile(ctx, userID, update)
}

func (v *ProfileValidationService) Wrap(inner ProfileService) ProfileService {
	v.inner = inner
	return v
}
