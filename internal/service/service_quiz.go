package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/quiz"
	"github.com/MKhiriev/go-aliyah/internal/store"
	"github.com/MKhiriev/go-aliyah/internal/validators"
	"github.com/MKhiriev/go-aliyah/models"
)

type quizService struct {
	catalog           *quiz.Catalog
	attemptRepository store.QuizAttemptRepository
	validator         validators.Validator
	logger            *logger.Logger
}

func NewQuizService(catalog *quiz.Catalog, attemptRepository store.QuizAttemptRepository, validator validators.Validator, logger *logger.Logger) QuizService {
	return &quizService{
		catalog:           catalog,
		attemptRepository: attemptRepository,
		validator:         validator,
		logger:            logger,
	}
}

func (s *quizService) ListQuizzes(ctx context.Context, lang string) []models.QuizSummary {
	return s.catalog.List(lang)
}

func (s *quizService) GetQuiz(ctx context.Context, slug, lang string) (models.QuizView, error) {
	q, err := s.catalog.Get(slug)
	if err != nil {
		return models.QuizView{}, err
	}

	return q.View(lang), nil
}

// SubmitQuiz scores the submission and stores the attempt. The result is
// returned only once the attempt is persisted.
func (s *quizService) SubmitQuiz(ctx context.Context, userID int64, slug, lang string, submission models.QuizSubmission) (models.QuizResult, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.QuizResult{}, ErrInvalidDataProvided
	}
	if err := s.validator.Validate(ctx, submission); err != nil {
		return models.QuizResult{}, fmt.Errorf("quiz submission validation: %w", err)
	}

	q, err := s.catalog.Get(slug)
	if err != nil {
		return models.QuizResult{}, err
	}

	result, err := quiz.Score(q, submission, lang)
	if err != nil {
		log.Info().Err(err).Str("quiz", slug).Int64("user_id", userID).Msg("quiz submission rejected")
		return models.QuizResult{}, err
	}

	_, err = s.attemptRepository.SaveAttempt(ctx, models.QuizAttempt{
		UserID:     userID,
		QuizSlug:   slug,
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		Passed:     result.Passed,
		Language:   lang,
	})
	if err != nil {
		log.Err(err).Str("func", "*quizService.SubmitQuiz").Str("quiz", slug).Int64("user_id", userID).Msg("quiz attempt was not saved")
		return models.QuizResult{}, fmt.Errorf("saving quiz attempt: %w", err)
	}

	return result, nil
}

func (s *quizService) ListAttempts(ctx context.Context, userID int64, limit int) ([]models.QuizAttempt, error) {
	if userID <= 0 {
		return nil, ErrInvalidDataProvided
	}

	return s.attemptRepository.ListAttempts(ctx, userID, limit)
}
