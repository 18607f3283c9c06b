package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/models"
)

type quizAttemptRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewQuizAttemptRepository constructs a [QuizAttemptRepository].
func NewQuizAttemptRepository(db *DB, logger *logger.Logger) QuizAttemptRepository {
	logger.Debug().Msg("creating quiz attempt repository")
	return &quizAttemptRepository{
		db:     db,
		logger: logger,
	}
}

func (r *quizAttemptRepository) SaveAttempt(ctx context.Context, attempt models.QuizAttempt) (models.QuizAttempt, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveAttemptQuery(r.db.builder, attempt)
	if err != nil {
		log.Err(err).Str("func", "*quizAttemptRepository.SaveAttempt").Msg("error building query")
		return models.QuizAttempt{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&attempt.ID, &attempt.CreatedAt)
	})
	if err != nil {
		log.Err(err).
			Str("func", "*quizAttemptRepository.SaveAttempt").
			Int64("user_id", attempt.UserID).
			Str("quiz", attempt.QuizSlug).
			Msg("error saving attempt")
		return models.QuizAttempt{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return attempt, nil
}

func (r *quizAttemptRepository) ListAttempts(ctx context.Context, userID int64, limit int) ([]models.QuizAttempt, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAttemptsQuery(r.db.builder, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*quizAttemptRepository.ListAttempts").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*quizAttemptRepository.ListAttempts").Int64("user_id", userID).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	attempts := make([]models.QuizAttempt, 0)
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizSlug, &a.Score, &a.Total, &a.Percentage, &a.Passed, &a.Language, &a.CreatedAt); err != nil {
			log.Err(err).Str("func", "*quizAttemptRepository.ListAttempts").Msg("error scanning attempt")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return attempts, nil
}
