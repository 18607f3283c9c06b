package http

import (
	"net/http"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())
	h.writeJSON(w, r, h.services.QuizService.ListQuizzes(r.Context(), lang), http.StatusOK)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())

	view, err := h.services.QuizService.GetQuiz(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, view, http.StatusOK)
}

func (h *Handler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.writeStatus(w, r, http.StatusUnauthorized, keyUnauthorized)
		return
	}

	var submission models.QuizSubmission
	if !h.decodeJSON(w, r, &submission) {
		return
	}

	lang := i18n.FromContext(r.Context())
	result, err := h.services.QuizService.SubmitQuiz(r.Context(), userID, chi.URLParam(r, "slug"), lang, submission)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, result, http.StatusOK)
}

func (h *Handler) listAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.writeStatus(w, r, http.StatusUnauthorized, keyUnauthorized)
		return
	}

	limit, ok := queryLimit(r)
	if !ok {
		h.writeStatus(w, r, http.StatusBadRequest, keyInvalidRequest)
		return
	}

	attempts, err := h.services.QuizService.ListAttempts(r.Context(), userID, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if attempts == nil {
		attempts = []models.QuizAttempt{}
	}

	h.writeJSON(w, r, attempts, http.StatusOK)
}
