package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/models"
)

// profileRepository is the SQL implementation of [ProfileRepository] over
// "user_profiles". It stores whatever ciphertext it is given and refuses
// plaintext sensitive keys.
type profileRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewProfileRepository constructs the raw profile repository. Wrap it with
// [NewEncryptedProfileRepository] before handing it to services.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateProfile inserts a profile row and returns it as stored.
func (r *profileRepository) CreateProfile(ctx context.Context, doc models.ProfileDocument) (models.ProfileDocument, error) {
	log := logger.FromContext(ctx)

	userID, ok := doc[models.ProfileKeyUserID].(int64)
	if !ok || userID <= 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrUnknownProfileField, models.ProfileKeyUserID)
	}

	set, err := profileSetMap(doc)
	if err != nil {
		return nil, err
	}

	query, args, err := buildCreateProfileQuery(r.db.builder, userID, set)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.CreateProfile").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		if r.db.isUniqueViolation(err) {
			return nil, ErrProfileAlreadyExists
		}
		log.Err(err).Str("func", "*profileRepository.CreateProfile").Int64("user_id", userID).Msg("error inserting profile")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return r.FindProfile(ctx, userID)
}

// UpdateProfile sets the columns present in doc and returns the row as
// stored. An empty doc only reads the row back.
func (r *profileRepository) UpdateProfile(ctx context.Context, userID int64, doc models.ProfileDocument) (models.ProfileDocument, error) {
	log := logger.FromContext(ctx)

	set, err := profileSetMap(doc)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return r.FindProfile(ctx, userID)
	}

	query, args, err := buildUpdateProfileQuery(r.db.builder, userID, set)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.UpdateProfile").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var res sql.Result
	err = r.db.withRetry(ctx, func() error {
		var execErr error
		res, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.UpdateProfile").Int64("user_id", userID).Msg("error updating profile")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrProfileNotFound
	}

	return r.FindProfile(ctx, userID)
}

// FindProfile returns the stored document of one user.
func (r *profileRepository) FindProfile(ctx context.Context, userID int64) (models.ProfileDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindProfileQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.FindProfile").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.FindProfile").Int64("user_id", userID).Msg("error scanning profile")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return doc, nil
}

// ListProfiles returns the stored documents matching filter, ordered by user.
func (r *profileRepository) ListProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.ProfileDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListProfilesQuery(r.db.builder, filter)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.ListProfiles").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.ListProfiles").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.ProfileDocument, 0)
	for rows.Next() {
		doc, err := scanProfile(rows)
		if err != nil {
			log.Err(err).Str("func", "*profileRepository.ListProfiles").Msg("error scanning profile")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProfile reads one row in profileColumns order. NULL columns are left
// out of the document.
func scanProfile(row rowScanner) (models.ProfileDocument, error) {
	var (
		userID     int64
		newsletter bool
		createdAt  time.Time
		updatedAt  sql.NullTime
	)

	texts := make([]sql.NullString, len(profileColumns))
	dest := make([]any, len(profileColumns))
	for i, c := range profileColumns {
		switch c.key {
		case models.ProfileKeyUserID:
			dest[i] = &userID
		case models.ProfileKeyNewsletter:
			dest[i] = &newsletter
		case models.ProfileKeyCreatedAt:
			dest[i] = &createdAt
		case models.ProfileKeyUpdatedAt:
			dest[i] = &updatedAt
		default:
			dest[i] = &texts[i]
		}
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	doc := models.ProfileDocument{
		models.ProfileKeyUserID:     userID,
		models.ProfileKeyNewsletter: newsletter,
		models.ProfileKeyCreatedAt:  createdAt,
	}
	if updatedAt.Valid {
		doc[models.ProfileKeyUpdatedAt] = updatedAt.Time
	}

	for i, c := range profileColumns {
		if texts[i].Valid {
			doc[c.key] = texts[i].String
		}
	}

	return doc, nil
}
