package http

import (
	"net/http"

	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var request models.RegisterRequest
	if !h.decodeJSON(w, r, &request) {
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeToken(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var request models.LoginRequest
	if !h.decodeJSON(w, r, &request) {
		return
	}

	user, err := h.services.AuthService.Login(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeToken(w, r, user, http.StatusOK)
}

// writeToken issues a token for user and returns it both in the
// Authorization header and in the body.
func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, user models.User, status int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Int64("user_id", user.UserID).Msg("creation of token failed")
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", token.BearerHeader())
	h.writeJSON(w, r, models.AuthResponse{Token: token.SignedString, Language: user.Language}, status)
}
