package http

import (
	"net/http"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/models"
)

type contactResponse struct {
	Message string `json:"message"`
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	var message models.ContactMessage
	if !h.decodeJSON(w, r, &message) {
		return
	}

	lang := i18n.FromContext(r.Context())
	message.Language = lang

	if err := h.services.ContactService.SendContactMessage(r.Context(), message); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, contactResponse{Message: h.catalog.T(lang, "contact.sent")}, http.StatusAccepted)
}
