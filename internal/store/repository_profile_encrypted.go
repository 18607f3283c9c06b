// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/crypto"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/models"
)

// FieldFailureRecorder counts field encryption failures. *metrics.FieldMetrics
// satisfies it.
type FieldFailureRecorder interface {
	FieldDecryptFailed(field string)
	FieldEncryptFailed()
}

type nopRecorder struct{}

func (nopRecorder) FieldDecryptFailed(string) {}
func (nopRecorder) FieldEncryptFailed() {}

// encryptedProfileRepository wraps a [ProfileRepository] so that callers
// exchange plain documents while the inner repository only ever sees the
// "...Encrypted" keys of the field table.
//
// Writes are all-or-nothing: if any field fails to encrypt, nothing reaches
// the inner repository. Reads tolerate per-field failures: the field keeps
// its encrypted key and value, a warning is logged and the read succeeds.
type encryptedProfileRepository struct {
	inner    ProfileRepository
	cipher   crypto.FieldCipher
	fields   crypto.FieldTable
	recorder FieldFailureRecorder
	logger   *logger.Logger
}

// NewEncryptedProfileRepository decorates inner with field encryption over
// fields. recorder may be nil.
func NewEncryptedProfileRepository(
	inner ProfileRepository,
	cipher crypto.FieldCipher,
	fields crypto.FieldTable,
	recorder FieldFailureRecorder,
	logger *logger.Logger,
) ProfileRepository {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	logger.Debug().Stringer("fields", fields).Msg("creating encrypted profile repository")

	return &encryptedProfileRepository{
		inner:    inner,
		cipher:   cipher,
		fields:   fields,
		recorder: recorder,
		logger:   logger,
	}
}

func (r *encryptedProfileRepository) CreateProfile(ctx context.Context, doc models.ProfileDocument) (models.ProfileDocument, error) {
	enc, err := r.encrypt(ctx, doc, "CreateProfile")
	if err != nil {
		return nil, err
	}

	stored, err := r.inner.CreateProfile(ctx, enc)
	if err != nil {
		return nil, err
	}

	return r.decrypt(ctx, stored), nil
}

func (r *encryptedProfileRepository) UpdateProfile(ctx context.Context, userID int64, doc models.ProfileDocument) (models.ProfileDocument, error) {
	enc, err := r.encrypt(ctx, doc, "UpdateProfile")
	if err != nil {
		return nil, err
	}

	stored, err := r.inner.UpdateProfile(ctx, userID, enc)
	if err != nil {
		return nil, err
	}

	return r.decrypt(ctx, stored), nil
}

func (r *encryptedProfileRepository) FindProfile(ctx context.Context, userID int64) (models.ProfileDocument, error) {
	stored, err := r.inner.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return r.decrypt(ctx, stored), nil
}

func (r *encryptedProfileRepository) ListProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.ProfileDocument, error) {
	stored, err := r.inner.ListProfiles(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]models.ProfileDocument, len(stored))
	for i, doc := range stored {
		out[i] = r.decrypt(ctx, doc)
	}

	return out, nil
}

func (r *encryptedProfileRepository) encrypt(ctx context.Context, doc models.ProfileDocument, op string) (models.ProfileDocument, error) {
	enc, err := crypto.EncryptObject(r.cipher, doc, r.fields)
	if err != nil {
		r.recorder.FieldEncryptFailed()
		logger.FromContext(ctx).Err(err).
			Str("func", "*encryptedProfileRepository."+op).
			Msg("profile write aborted: field encryption failed")
		return nil, fmt.Errorf("%w: %w", ErrProfileEncryption, err)
	}

	return enc, nil
}

// decrypt never fails; fields that cannot be opened stay encrypted.
func (r *encryptedProfileRepository) decrypt(ctx context.Context, doc models.ProfileDocument) models.ProfileDocument {
	dec, err := crypto.DecryptObject(r.cipher, doc, r.fields)
	if err == nil {
		return dec
	}

	log := logger.FromContext(ctx)
	for _, field := range crypto.FailedFields(err) {
		r.recorder.FieldDecryptFailed(field)
		log.Warn().
			Str("func", "*encryptedProfileRepository.decrypt").
			Interface("user_id", doc[models.ProfileKeyUserID]).
			Str("field", field).
			Msg("profile field left encrypted")
	}

	return dec
}

// UnavailableFields lists the plain names of sensitive fields that are still
// encrypted in a document returned by the decorator.
func UnavailableFields(doc models.ProfileDocument, fields crypto.FieldTable) []string {
	var names []string
	for _, p := range fields.Pairs() {
		if _, ok := doc[p.Encrypted]; ok {
			names = append(names, p.Plain)
		}
	}
	return names
}
