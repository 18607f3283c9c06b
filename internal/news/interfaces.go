package news

import (
	"context"

	"github.com/MKhiriev/go-aliyah/internal/config"
	"github.com/MKhiriev/go-aliyah/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/news_mock.go -package=mock

// FeedFetcher downloads and parses one feed.
type FeedFetcher interface {
	// Fetch returns at most limit of the newest items of feed as articles
	// in the feed's language, fingerprinted and without translations.
	Fetch(ctx context.Context, feed config.FeedSource, limit int) ([]models.Article, error)
}

// Translator translates plain text between two languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// TranslationCache stores finished translations by key.
type TranslationCache interface {
	// Get reports a miss with ok == false and a nil error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
