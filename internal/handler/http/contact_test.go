package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-aliyah/internal/service"
	"github.com/MKhiriev/go-aliyah/internal/validators"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactBody = models.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "¿Cuándo abre el ulpán?"}

func TestContact_Accepted(t *testing.T) {
	var got models.ContactMessage
	contact := &stubContactService{
		sendFn: func(_ context.Context, message models.ContactMessage) error {
			got = message
			return nil
		},
	}
	h := newTestHandler(t, &service.Services{ContactService: contact}, Options{})

	rec := serve(t, h, http.MethodPost, "/api/contact?lang=he", contactBody)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "he", got.Language)
	assert.Equal(t, contactBody.Message, got.Message)

	var resp contactResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, h.catalog.T("he", "contact.sent"), resp.Message)
}

func TestContact_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not configured", err: service.ErrContactNotConfigured, wantStatus: http.StatusServiceUnavailable, wantCode: keyUnavailable},
		{name: "missing message", err: &validators.FieldError{Field: "message", Key: validators.KeyRequired, Args: []string{"field", "message"}}, wantStatus: http.StatusBadRequest, wantCode: validators.KeyRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contact := &stubContactService{
				sendFn: func(context.Context, models.ContactMessage) error { return tt.err },
			}
			h := newTestHandler(t, &service.Services{ContactService: contact}, Options{})

			rec := serve(t, h, http.MethodPost, "/api/contact", contactBody)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeErrorResponse(t, rec).Code)
		})
	}
}

func TestContact_RateLimited(t *testing.T) {
	sent := 0
	contact := &stubContactService{
		sendFn: func(context.Context, models.ContactMessage) error {
			sent++
			return nil
		},
	}
	h := newTestHandler(t, &service.Services{ContactService: contact}, Options{ContactRateLimit: 2})

	for range 2 {
		rec := serve(t, h, http.MethodPost, "/api/contact", contactBody)
		require.Equal(t, http.StatusAccepted, rec.Code)
	}

	rec := serve(t, h, http.MethodPost, "/api/contact", contactBody)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, keyRateLimited, decodeErrorResponse(t, rec).Code)
	assert.Equal(t, 2, sent)

	// other routes are not limited
	rec = serve(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
