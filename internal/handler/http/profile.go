package http

import (
	"net/http"

	"github.com/MKhiriev/go-aliyah/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.writeStatus(w, r, http.StatusUnauthorized, keyUnauthorized)
		return
	}

	profile, err := h.services.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, profile, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		h.writeStatus(w, r, http.StatusUnauthorized, keyUnauthorized)
		return
	}

	var update models.ProfileUpdate
	if !h.decodeJSON(w, r, &update) {
		return
	}

	profile, err := h.services.ProfileService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, profile, http.StatusOK)
}
