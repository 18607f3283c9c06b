package metrics

import "github.com/prometheus/client_golang/prometheus"

// FieldMetrics tracks profile field encryption outcomes.
type FieldMetrics struct {
	DecryptFailures *prometheus.CounterVec
	EncryptFailures prometheus.Counter
}

// NewFieldMetrics creates and registers field encryption metrics.
func NewFieldMetrics(reg prometheus.Registerer) *FieldMetrics {
	m := &FieldMetrics{
		DecryptFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "field_decrypt_failures_total",
			Help:      "Sensitive profile fields left encrypted on read, by field.",
		}, []string{"field"}),
		EncryptFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "encrypt_failures_total",
			Help:      "Profile writes aborted because a field could not be encrypted.",
		}),
	}

	reg.MustRegister(m.DecryptFailures, m.EncryptFailures)
	return m
}

// FieldDecryptFailed implements the store's failure recorder.
func (m *FieldMetrics) FieldDecryptFailed(field string) {
	m.DecryptFailures.WithLabelValues(field).Inc()
}

// FieldEncryptFailed implements the store's failure recorder.
func (m *FieldMetrics) FieldEncryptFailed() {
	m.EncryptFailures.Inc()
}

// NewsMetrics tracks the news ingestion pipeline.
type NewsMetrics struct {
	FeedFetches      *prometheus.CounterVec
	ArticlesIngested *prometheus.CounterVec
	Duplicates       prometheus.Counter
	Translations     *prometheus.CounterVec
	BreakerState     *prometheus.GaugeVec
}

// NewNewsMetrics creates and registers news pipeline metrics.
func NewNewsMetrics(reg prometheus.Registerer) *NewsMetrics {
	m := &NewsMetrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "news",
			Name:      "feed_fetches_total",
			Help:      "Feed fetch attempts by outcome.",
		}, []string{"status"}),
		ArticlesIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "news",
			Name:      "articles_ingested_total",
			Help:      "Articles stored, by source language.",
		}, []string{"language"}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "news",
			Name:      "duplicates_skipped_total",
			Help:      "Feed items skipped because their fingerprint was already known.",
		}),
		Translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "news",
			Name:      "translations_total",
			Help:      "Translation requests by outcome.",
		}, []string{"status"}),
		BreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "news",
			Name:      "circuit_breaker_state",
			Help:      "Translation circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"name"}),
	}

	reg.MustRegister(m.FeedFetches, m.ArticlesIngested, m.Duplicates, m.Translations, m.BreakerState)
	return m
}

// CacheMetrics tracks translation cache performance.
type CacheMetrics struct {
	Hits   *prometheus.CounterVec
	Misses *prometheus.CounterVec
}

// NewCacheMetrics creates and registers cache metrics on the given registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "translation_cache",
			Name:      "hits_total",
			Help:      "Total number of translation cache hits, by backend.",
		}, []string{"backend"}),
		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "translation_cache",
			Name:      "misses_total",
			Help:      "Total number of translation cache misses, by backend.",
		}, []string{"backend"}),
	}

	reg.MustRegister(m.Hits, m.Misses)
	return m
}

// EmailMetrics tracks outgoing mail.
type EmailMetrics struct {
	Sent *prometheus.CounterVec
}

// NewEmailMetrics creates and registers email metrics.
func NewEmailMetrics(reg prometheus.Registerer) *EmailMetrics {
	m := &EmailMetrics{
		Sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "messages_total",
			Help:      "Outgoing messages by template and outcome.",
		}, []string{"template", "status"}),
	}

	reg.MustRegister(m.Sent)
	return m
}
