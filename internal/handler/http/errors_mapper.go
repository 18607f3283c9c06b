package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/quiz"
	"github.com/MKhiriev/go-aliyah/internal/service"
	"github.com/MKhiriev/go-aliyah/internal/store"
	"github.com/MKhiriev/go-aliyah/internal/utils"
	"github.com/MKhiriev/go-aliyah/internal/validators"
)

// Message keys of errors produced by the transport itself.
const (
	keyInvalidJSON     = "errors.invalid_json"
	keyUnauthorized    = "errors.unauthorized"
	keyRateLimited     = "errors.rate_limited"
	keyInvalidRequest  = "errors.invalid_request"
	keyNotFound        = "errors.not_found"
	keyUnavailable     = "errors.unavailable"
	keyInternal        = "errors.internal"
	keyInvalidAnswer   = "errors.invalid_answer"
	keyEmailTaken      = "errors.email_taken"
	keyInvalidCreds    = "errors.invalid_credentials"
	keyProfileNotFound = "errors.profile_not_found"
	keyQuizNotFound    = "errors.quiz_not_found"
)

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorMapping struct {
	target error
	status int
	key    string
}

// errorStatusMap is checked in order; the first match wins.
var errorStatusMap = []errorMapping{
	{validators.ErrValidation, http.StatusBadRequest, keyInvalidRequest},
	{quiz.ErrInvalidAnswer, http.StatusBadRequest, keyInvalidAnswer},
	{quiz.ErrQuizNotFound, http.StatusNotFound, keyQuizNotFound},
	{store.ErrEmailAlreadyExists, http.StatusConflict, keyEmailTaken},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, keyInvalidCreds},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, keyUnauthorized},
	{store.ErrProfileNotFound, http.StatusNotFound, keyProfileNotFound},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, keyInvalidRequest},
	{service.ErrContactNotConfigured, http.StatusServiceUnavailable, keyUnavailable},
	{service.ErrDependencyUnhealthy, http.StatusServiceUnavailable, keyUnavailable},
}

func statusFromError(err error) (int, string) {
	for _, m := range errorStatusMap {
		if errors.Is(err, m.target) {
			return m.status, m.key
		}
	}
	return http.StatusInternalServerError, keyInternal
}

// writeError maps err to a status code and writes a message localized to the
// request language. Internal details never reach the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	lang := i18n.FromContext(r.Context())
	status, key := statusFromError(err)

	resp := errorResponse{Code: key, Message: h.catalog.T(lang, key)}

	var fieldErr *validators.FieldError
	var answerErr *quiz.AnswerError
	switch {
	case errors.As(err, &fieldErr):
		resp.Code = fieldErr.Key
		resp.Field = fieldErr.Field
		resp.Message = h.catalog.T(lang, fieldErr.Key, fieldErr.Args...)
	case errors.As(err, &answerErr):
		resp.Field = answerErr.QuestionID
		resp.Message = h.catalog.T(lang, key, "question", answerErr.QuestionID)
	}

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	h.writeMessage(w, r, status, resp)
}

// writeStatus writes a bare transport error such as a malformed body.
func (h *Handler) writeStatus(w http.ResponseWriter, r *http.Request, status int, key string) {
	lang := i18n.FromContext(r.Context())
	h.writeMessage(w, r, status, errorResponse{Code: key, Message: h.catalog.T(lang, key)})
}

func (h *Handler) writeMessage(w http.ResponseWriter, r *http.Request, status int, resp errorResponse) {
	if _, err := utils.WriteJSON(w, resp, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing error response")
	}
}
