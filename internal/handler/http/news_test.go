package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-aliyah/internal/service"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestNews(t *testing.T) {
	var gotLang string
	var gotLimit int
	news := &stubNewsService{
		latestFn: func(_ context.Context, lang string, limit int) ([]models.ArticleView, error) {
			gotLang, gotLimit = lang, limit
			return []models.ArticleView{{ID: "a1", Title: "Nueva oficina", Language: lang, Original: "he", Translated: true}}, nil
		},
	}
	h := newTestHandler(t, &service.Services{NewsService: news}, Options{})

	rec := serve(t, h, http.MethodGet, "/api/news?limit=3", nil, "Accept-Language", "es-AR,es;q=0.9")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "es", gotLang)
	assert.Equal(t, 3, gotLimit)

	var got []models.ArticleView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.True(t, got[0].Translated)
}

func TestLatestNews_Empty(t *testing.T) {
	news := &stubNewsService{
		latestFn: func(context.Context, string, int) ([]models.ArticleView, error) {
			return nil, nil
		},
	}
	h := newTestHandler(t, &service.Services{NewsService: news}, Options{})

	rec := serve(t, h, http.MethodGet, "/api/news", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestLatestNews_Errors(t *testing.T) {
	news := &stubNewsService{
		latestFn: func(context.Context, string, int) ([]models.ArticleView, error) {
			return nil, errors.New("db down")
		},
	}
	h := newTestHandler(t, &service.Services{NewsService: news}, Options{})

	rec := serve(t, h, http.MethodGet, "/api/news?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, h, http.MethodGet, "/api/news", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, keyInternal, decodeErrorResponse(t, rec).Code)
}
