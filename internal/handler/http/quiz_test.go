package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-aliyah/internal/quiz"
	"github.com/MKhiriev/go-aliyah/internal/service"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuizzes_UsesRequestLanguage(t *testing.T) {
	quizzes := &stubQuizService{
		listFn: func(_ context.Context, lang string) []models.QuizSummary {
			return []models.QuizSummary{{Slug: "aliyah-basics", Title: "title-" + lang, QuestionCount: 3}}
		},
	}
	h := newTestHandler(t, &service.Services{QuizService: quizzes}, Options{})

	rec := serve(t, h, http.MethodGet, "/api/quizzes", nil, "Accept-Language", "he")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.QuizSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "title-he", got[0].Title)
}

func TestGetQuiz(t *testing.T) {
	quizzes := &stubQuizService{
		getFn: func(_ context.Context, slug, lang string) (models.QuizView, error) {
			if slug != "aliyah-basics" {
				return models.QuizView{}, quiz.ErrQuizNotFound
			}
			return models.QuizView{QuizSummary: models.QuizSummary{Slug: slug, Title: lang}}, nil
		},
	}
	h := newTestHandler(t, &service.Services{QuizService: quizzes}, Options{})

	rec := serve(t, h, http.MethodGet, "/api/quizzes/aliyah-basics?lang=es", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view models.QuizView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "es", view.Title)

	rec = serve(t, h, http.MethodGet, "/api/quizzes/unknown", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, keyQuizNotFound, decodeErrorResponse(t, rec).Code)
}

func TestSubmitQuiz(t *testing.T) {
	quizzes := &stubQuizService{
		submitFn: func(_ context.Context, userID int64, slug, lang string, submission models.QuizSubmission) (models.QuizResult, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, "aliyah-basics", slug)
			assert.Equal(t, "he", lang)
			assert.Equal(t, []string{"b"}, submission.Answers["q1"])
			return models.QuizResult{Slug: slug, Score: 1, Total: 1, Percentage: 100, Passed: true}, nil
		},
	}
	h := newTestHandler(t, &service.Services{QuizService: quizzes}, Options{})

	body := models.QuizSubmission{Answers: map[string][]string{"q1": {"b"}}}
	rec := serve(t, h, http.MethodPost, "/api/quizzes/aliyah-basics/submit?lang=he", body, bearer()...)

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.QuizResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Passed)
}

func TestSubmitQuiz_InvalidAnswer(t *testing.T) {
	quizzes := &stubQuizService{
		submitFn: func(context.Context, int64, string, string, models.QuizSubmission) (models.QuizResult, error) {
			return models.QuizResult{}, &quiz.AnswerError{QuestionID: "q2", Err: quiz.ErrUnknownOption}
		},
	}
	h := newTestHandler(t, &service.Services{QuizService: quizzes}, Options{})

	rec := serve(t, h, http.MethodPost, "/api/quizzes/aliyah-basics/submit", models.QuizSubmission{}, bearer()...)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, keyInvalidAnswer, resp.Code)
	assert.Equal(t, "q2", resp.Field)
	assert.Contains(t, resp.Message, "q2")
}

func TestListAttempts(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		attempts   []models.QuizAttempt
		wantLimit  int
		wantStatus int
		wantBody   string
	}{
		{name: "default limit", wantLimit: 0, wantStatus: http.StatusOK, wantBody: "[]"},
		{name: "explicit limit", query: "?limit=5", wantLimit: 5, attempts: []models.QuizAttempt{{ID: 1, QuizSlug: "aliyah-basics"}}, wantStatus: http.StatusOK},
		{name: "negative limit", query: "?limit=-1", wantStatus: http.StatusBadRequest},
		{name: "garbage limit", query: "?limit=ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quizzes := &stubQuizService{
				attemptsFn: func(_ context.Context, userID int64, limit int) ([]models.QuizAttempt, error) {
					assert.Equal(t, int64(42), userID)
					assert.Equal(t, tt.wantLimit, limit)
					return tt.attempts, nil
				},
			}
			h := newTestHandler(t, &service.Services{QuizService: quizzes}, Options{})

			rec := serve(t, h, http.MethodGet, "/api/quizzes/attempts"+tt.query, nil, bearer()...)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
