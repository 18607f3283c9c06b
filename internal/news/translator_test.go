package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/config"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/metrics"
	"github.com/MKhiriev/go-aliyah/internal/utils"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type translatorFunc func(ctx context.Context, text, source, target string) (string, error)

func (f translatorFunc) Translate(ctx context.Context, text, source, target string) (string, error) {
	return f(ctx, text, source, target)
}

func TestNewTranslator_WithoutURL(t *testing.T) {
	tr := NewTranslator(config.News{}, nil, metrics.NewNewsMetrics(prometheus.NewRegistry()), logger.Nop())

	assert.IsType(t, NopTranslator{}, tr)

	out, err := tr.Translate(context.Background(), "hola", "es", "he")
	require.NoError(t, err)
	assert.Equal(t, "hola", out)
}

func TestLibreTranslator_Translate(t *testing.T) {
	var got libreRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translatedText":"שלום עולם"}`))
	}))
	defer srv.Close()

	tr := NewLibreTranslator(utils.NewHTTPClient(time.Second), srv.URL+"/", "key-1")

	out, err := tr.Translate(context.Background(), "hola mundo", "es", "he")

	require.NoError(t, err)
	assert.Equal(t, "שלום עולם", out)
	assert.Equal(t, libreRequest{Q: "hola mundo", Source: "es", Target: "he", Format: "text", APIKey: "key-1"}, got)
}

func TestLibreTranslator_PassThrough(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	tr := NewLibreTranslator(utils.NewHTTPClient(time.Second), srv.URL, "")
	ctx := context.Background()

	out, err := tr.Translate(ctx, "  ", "es", "he")
	require.NoError(t, err)
	assert.Equal(t, "  ", out)

	out, err = tr.Translate(ctx, "hola", "es", "es")
	require.NoError(t, err)
	assert.Equal(t, "hola", out)

	assert.Zero(t, calls.Load())
}

func TestLibreTranslator_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"unsupported language"}`},
		{name: "empty result", status: http.StatusOK, body: `{"translatedText":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tr := NewLibreTranslator(utils.NewHTTPClient(time.Second), srv.URL, "")

			_, err := tr.Translate(context.Background(), "hola", "es", "he")

			assert.ErrorIs(t, err, ErrTranslate)
		})
	}
}

func TestBreakerTranslator_OpensAfterConsecutiveFailures(t *testing.T) {
	m := metrics.NewNewsMetrics(prometheus.NewRegistry())
	apiErr := errors.New("api down")

	var calls int
	next := translatorFunc(func(context.Context, string, string, string) (string, error) {
		calls++
		return "", apiErr
	})

	tr := NewBreakerTranslator(next, m, logger.Nop())
	ctx := context.Background()

	for range breakerFailureThreshold {
		_, err := tr.Translate(ctx, "hola", "es", "he")
		assert.ErrorIs(t, err, apiErr)
	}

	_, err := tr.Translate(ctx, "hola", "es", "he")

	assert.ErrorIs(t, err, ErrTranslatorOpen)
	assert.Equal(t, breakerFailureThreshold, calls, "open breaker must not call the API")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues(breakerName)))
}

func TestBreakerTranslator_SuccessResetsCount(t *testing.T) {
	m := metrics.NewNewsMetrics(prometheus.NewRegistry())

	var calls int
	next := translatorFunc(func(_ context.Context, text, _, _ string) (string, error) {
		calls++
		if calls%breakerFailureThreshold == 0 {
			return "ok:" + text, nil
		}
		return "", errors.New("flaky")
	})

	tr := NewBreakerTranslator(next, m, logger.Nop())

	for range 3 * breakerFailureThreshold {
		_, _ = tr.Translate(context.Background(), "hola", "es", "he")
	}

	assert.Equal(t, 3*breakerFailureThreshold, calls)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BreakerState.WithLabelValues(breakerName)))
}

func TestCachedTranslator(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cm := metrics.NewCacheMetrics(prometheus.NewRegistry())
	cache := NewMemoryCache(time.Hour, clock, cm)

	var calls int
	next := translatorFunc(func(_ context.Context, text, _, target string) (string, error) {
		calls++
		return target + ":" + text, nil
	})

	tr := NewCachedTranslator(next, cache)
	ctx := context.Background()

	for range 3 {
		out, err := tr.Translate(ctx, "hola", "es", "he")
		require.NoError(t, err)
		assert.Equal(t, "he:hola", out)
	}
	assert.Equal(t, 1, calls)

	clock.Advance(2 * time.Hour)

	_, err := tr.Translate(ctx, "hola", "es", "he")
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "expired entry is translated again")

	assert.Equal(t, 2.0, testutil.ToFloat64(cm.Hits.WithLabelValues(backendMemory)))
	assert.Equal(t, 2.0, testutil.ToFloat64(cm.Misses.WithLabelValues(backendMemory)))
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool, error) {
	return "", false, ErrCacheUnavailable
}

func (failingCache) Set(context.Context, string, string) error {
	return ErrCacheUnavailable
}

func TestCachedTranslator_CacheErrorsAreMisses(t *testing.T) {
	next := translatorFunc(func(_ context.Context, text, _, _ string) (string, error) {
		return "tr:" + text, nil
	})

	out, err := NewCachedTranslator(next, failingCache{}).Translate(context.Background(), "hola", "es", "he")

	require.NoError(t, err)
	assert.Equal(t, "tr:hola", out)
}

func TestCachedTranslator_ErrorsAreNotCached(t *testing.T) {
	cache := NewMemoryCache(time.Hour, clockwork.NewFakeClock(), metrics.NewCacheMetrics(prometheus.NewRegistry()))

	var calls int
	next := translatorFunc(func(context.Context, string, string, string) (string, error) {
		calls++
		return "", ErrTranslate
	})
	tr := NewCachedTranslator(next, cache)

	for range 2 {
		_, err := tr.Translate(context.Background(), "hola", "es", "he")
		assert.ErrorIs(t, err, ErrTranslate)
	}
	assert.Equal(t, 2, calls)
}

func TestCacheKey(t *testing.T) {
	k := CacheKey("hola", "es", "he")

	assert.Regexp(t, `^es:he:[0-9a-f]{64}$`, k)
	assert.NotEqual(t, k, CacheKey("hola", "he", "es"))
	assert.Equal(t, k, CacheKey("hola", "es", "he"))
}
