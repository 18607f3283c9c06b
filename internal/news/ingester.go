package news

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-aliyah/internal/config"
	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/metrics"
	"github.com/MKhiriev/go-aliyah/internal/store"
	"github.com/MKhiriev/go-aliyah/models"
)

// Report summarizes one ingestion run.
type Report struct {
	Feeds             int
	FeedErrors        int
	Fetched           int
	Duplicates        int
	TranslationErrors int
	Stored            int
}

// Ingester runs the fetch, dedup, translate and store pipeline.
type Ingester struct {
	feeds        []config.FeedSource
	itemsPerFeed int

	fetcher    FeedFetcher
	translator Translator
	articles   store.ArticleRepository
	metrics    *metrics.NewsMetrics
	logger     *logger.Logger
}

// NewIngester constructs an [Ingester] for the given feeds.
func NewIngester(
	feeds []config.FeedSource,
	itemsPerFeed int,
	fetcher FeedFetcher,
	translator Translator,
	articles store.ArticleRepository,
	m *metrics.NewsMetrics,
	log *logger.Logger,
) *Ingester {
	return &Ingester{
		feeds:        feeds,
		itemsPerFeed: itemsPerFeed,
		fetcher:      fetcher,
		translator:   translator,
		articles:     articles,
		metrics:      m,
		logger:       log,
	}
}

// Run performs one ingestion pass. Only storage failures abort the run.
func (i *Ingester) Run(ctx context.Context) (Report, error) {
	log := i.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	report := Report{Feeds: len(i.feeds)}

	var batch []models.Article
	seen := make(map[string]struct{})

	for _, feed := range i.feeds {
		items, err := i.fetcher.Fetch(ctx, feed, i.itemsPerFeed)
		if err != nil {
			report.FeedErrors++
			i.metrics.FeedFetches.WithLabelValues("error").Inc()
			log.Warn().Err(err).Str("feed", feed.URL).Msg("news: feed skipped")
			continue
		}
		i.metrics.FeedFetches.WithLabelValues("ok").Inc()

		for _, item := range items {
			report.Fetched++
			if _, dup := seen[item.Fingerprint]; dup {
				report.Duplicates++
				continue
			}
			seen[item.Fingerprint] = struct{}{}
			batch = append(batch, item)
		}
	}

	if len(batch) == 0 {
		i.metrics.Duplicates.Add(float64(report.Duplicates))
		return report, nil
	}

	fingerprints := make([]string, 0, len(batch))
	for _, a := range batch {
		fingerprints = append(fingerprints, a.Fingerprint)
	}

	known, err := i.articles.KnownFingerprints(ctx, fingerprints)
	if err != nil {
		return report, fmt.Errorf("news: load known fingerprints: %w", err)
	}

	fresh := batch[:0]
	for _, a := range batch {
		if _, ok := known[a.Fingerprint]; ok {
			report.Duplicates++
			continue
		}
		fresh = append(fresh, a)
	}
	i.metrics.Duplicates.Add(float64(report.Duplicates))

	for idx := range fresh {
		report.TranslationErrors += i.translate(ctx, &fresh[idx])
	}

	stored, err := i.articles.SaveArticles(ctx, fresh)
	if err != nil {
		return report, fmt.Errorf("news: save articles: %w", err)
	}
	report.Stored = stored

	for _, a := range fresh {
		i.metrics.ArticlesIngested.WithLabelValues(a.Language).Inc()
	}

	log.Info().
		Int("feeds", report.Feeds).
		Int("feed_errors", report.FeedErrors).
		Int("fetched", report.Fetched).
		Int("duplicates", report.Duplicates).
		Int("translation_errors", report.TranslationErrors).
		Int("stored", report.Stored).
		Msg("news: ingestion finished")

	return report, nil
}

// translate fills a.Translations for every other platform language and
// returns how many languages failed. A result equal to the source title is
// not stored, so readers fall back to the original.
func (i *Ingester) translate(ctx context.Context, a *models.Article) int {
	log := logger.FromContext(ctx)
	failures := 0

	for _, target := range i18n.Others(a.Language) {
		tr, err := i.translateTo(ctx, a, target)
		if err != nil {
			failures++
			i.metrics.Translations.WithLabelValues("error").Inc()
			log.Warn().Err(err).
				Str("article", a.ID).
				Str("target", target).
				Msg("news: article kept without translation")
			continue
		}

		if tr.Title == a.Title {
			i.metrics.Translations.WithLabelValues("skipped").Inc()
			continue
		}

		if a.Translations == nil {
			a.Translations = make(map[string]models.Translation)
		}
		a.Translations[target] = tr
		i.metrics.Translations.WithLabelValues("ok").Inc()
	}

	return failures
}

func (i *Ingester) translateTo(ctx context.Context, a *models.Article, target string) (models.Translation, error) {
	title, err := i.translator.Translate(ctx, a.Title, a.Language, target)
	if err != nil {
		return models.Translation{}, err
	}

	var summary string
	if a.Summary != "" {
		if summary, err = i.translator.Translate(ctx, a.Summary, a.Language, target); err != nil {
			return models.Translation{}, err
		}
	}

	return models.Translation{Title: title, Summary: summary}, nil
}
