package news

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/config"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/metrics"
	"github.com/MKhiriev/go-aliyah/internal/utils"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

// NewTranslator assembles the translation chain from cfg: a
// LibreTranslate-compatible client behind a circuit breaker and a cache, or
// the pass-through translator when no API URL is configured.
func NewTranslator(cfg config.News, cache TranslationCache, m *metrics.NewsMetrics, log *logger.Logger) Translator {
	if cfg.TranslateURL == "" {
		log.Warn().Msg("news: translation API is not configured, articles are kept in their source language")
		return NopTranslator{}
	}

	client := utils.NewHTTPClient(cfg.TranslateTimeout)
	api := NewLibreTranslator(client, cfg.TranslateURL, cfg.TranslateAPIKey)

	return NewCachedTranslator(NewBreakerTranslator(api, m, log), cache)
}

// NopTranslator returns every text unchanged.
type NopTranslator struct{}

// Translate implements [Translator].
func (NopTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}

type libreTranslator struct {
	client *utils.HTTPClient
	url    string
	apiKey string
}

// NewLibreTranslator returns a [Translator] for the LibreTranslate
// "/translate" endpoint under baseURL.
func NewLibreTranslator(client *utils.HTTPClient, baseURL, apiKey string) Translator {
	return &libreTranslator{
		client: client,
		url:    strings.TrimRight(baseURL, "/") + "/translate",
		apiKey: apiKey,
	}
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
}

type libreError struct {
	Error string `json:"error"`
}

// Translate implements [Translator].
func (t *libreTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" || source == target {
		return text, nil
	}

	var (
		result libreResponse
		apiErr libreError
	)

	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(libreRequest{Q: text, Source: source, Target: target, Format: "text", APIKey: t.apiKey}).
		SetResult(&result).
		SetError(&apiErr).
		Post(t.url)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslate, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d: %s", ErrTranslate, resp.StatusCode(), apiErr.Error)
	}
	if result.TranslatedText == "" {
		return "", fmt.Errorf("%w: empty result", ErrTranslate)
	}

	return result.TranslatedText, nil
}

// Breaker settings for the translation API.
const (
	breakerName             = "translator"
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 60 * time.Second
	breakerCountInterval    = 2 * time.Minute
)

type breakerTranslator struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerTranslator wraps next in a circuit breaker that opens after
// consecutive failures and fails fast with [ErrTranslatorOpen] while open.
// The state is exported as a gauge.
func NewBreakerTranslator(next Translator, m *metrics.NewsMetrics, log *logger.Logger) Translator {
	m.BreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    breakerCountInterval,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("news: translation circuit breaker changed state")
			m.BreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	})

	return &breakerTranslator{next: next, cb: cb}
}

// Translate implements [Translator].
func (t *breakerTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	out, err := t.cb.Execute(func() (interface{}, error) {
		return t.next.Translate(ctx, text, source, target)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %w", ErrTranslatorOpen, err)
		}
		return "", err
	}

	return out.(string), nil
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

type cachedTranslator struct {
	next  Translator
	cache TranslationCache
	group singleflight.Group
}

// NewCachedTranslator serves repeated translations from cache and collapses
// concurrent identical requests into one call to next. Cache errors are
// treated as misses.
func NewCachedTranslator(next Translator, cache TranslationCache) Translator {
	return &cachedTranslator{next: next, cache: cache}
}

// Translate implements [Translator].
func (t *cachedTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" || source == target {
		return text, nil
	}

	key := CacheKey(text, source, target)
	log := logger.FromContext(ctx)

	if cached, ok, err := t.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("func", "*cachedTranslator.Translate").Msg("translation cache read failed")
	} else if ok {
		return cached, nil
	}

	out, err, _ := t.group.Do(key, func() (interface{}, error) {
		translated, err := t.next.Translate(ctx, text, source, target)
		if err != nil {
			return "", err
		}

		if err := t.cache.Set(ctx, key, translated); err != nil {
			log.Warn().Err(err).Str("func", "*cachedTranslator.Translate").Msg("translation cache write failed")
		}

		return translated, nil
	})
	if err != nil {
		return "", err
	}

	return out.(string), nil
}

// CacheKey derives the cache key of one translation.
func CacheKey(text, source, target string) string {
	sum := sha256.Sum256([]byte(source + "\x00" + target + "\x00" + text))
	return source + ":" + target + ":" + hex.EncodeToString(sum[:])
}
