package http

import (
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
}

// health answers 200 when every dependency responds and 503 otherwise. The
// failing dependency is only logged.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.services.HealthService.Check(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, healthResponse{Status: "ok"}, http.StatusOK)
}
