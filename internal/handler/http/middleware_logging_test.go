package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/service"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, body: `{"a":1}`, wantLevel: "info"},
		{name: "implicit ok", status: 0, body: "hello", wantLevel: "info"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "info"},
		{name: "server error", status: http.StatusBadGateway, body: "x", wantLevel: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			clock := clockwork.NewFakeClock()
			h := NewHandler(&service.Services{}, i18n.MustLoad(), Options{Clock: clock}, logger.New("test", &buf))

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				clock.Advance(150 * time.Millisecond)
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/api/news?limit=3", nil)
			// the access log reads the logger attached by withTraceID
			rec := httptest.NewRecorder()
			buf.Reset()
			h.withTraceID(h.withLogging(next)).ServeHTTP(rec, req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			wantStatus := tt.status
			if wantStatus == 0 {
				wantStatus = http.StatusOK
			}
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "/api/news", entry["path"])
			assert.Equal(t, http.MethodGet, entry["method"])
			assert.EqualValues(t, wantStatus, entry["status"])
			assert.EqualValues(t, len(tt.body), entry["size"])
			assert.EqualValues(t, 150, entry["duration"])
			assert.NotEmpty(t, entry["trace_id"])
		})
	}
}
