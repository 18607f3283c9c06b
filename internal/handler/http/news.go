package http

import (
	"net/http"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/models"
)

func (h *Handler) latestNews(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r)
	if !ok {
		h.writeStatus(w, r, http.StatusBadRequest, keyInvalidRequest)
		return
	}

	articles, err := h.services.NewsService.LatestNews(r.Context(), i18n.FromContext(r.Context()), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if articles == nil {
		articles = []models.ArticleView{}
	}

	h.writeJSON(w, r, articles, http.StatusOK)
}
