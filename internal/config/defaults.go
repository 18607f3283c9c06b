package config

import "time"

// Defaults applied by [StructuredConfig.applyDefaults].
const (
	DefaultHTTPAddress      = "localhost:8080"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultTokenDuration    = 24 * time.Hour
	DefaultTokenIssuer      = "go-aliyah"
	DefaultLanguage         = "es"
	DefaultLogLevel         = "info"
	DefaultContactRateLimit = 5
	DefaultNewsInterval     = 30 * time.Minute
	DefaultItemsPerFeed     = 20
	DefaultTranslateTimeout = 10 * time.Second
	DefaultCacheTTL         = 7 * 24 * time.Hour
	DefaultOutboxDir        = "outbox"
	DefaultDSN              = "file:aliyah.db?_foreign_keys=on"
)

func (cfg *StructuredConfig) applyDefaults() {
	setDefault(&cfg.Server.HTTPAddress, DefaultHTTPAddress)
	setDefault(&cfg.Server.RequestTimeout, DefaultRequestTimeout)
	setDefault(&cfg.Server.ContactRateLimit, DefaultContactRateLimit)

	setDefault(&cfg.App.TokenDuration, DefaultTokenDuration)
	setDefault(&cfg.App.TokenIssuer, DefaultTokenIssuer)
	setDefault(&cfg.App.DefaultLanguage, DefaultLanguage)
	setDefault(&cfg.App.LogLevel, DefaultLogLevel)

	setDefault(&cfg.Storage.DB.DSN, DefaultDSN)

	setDefault(&cfg.Email.OutboxDir, DefaultOutboxDir)

	setDefault(&cfg.News.Interval, DefaultNewsInterval)
	setDefault(&cfg.News.ItemsPerFeed, DefaultItemsPerFeed)
	setDefault(&cfg.News.TranslateTimeout, DefaultTranslateTimeout)
	setDefault(&cfg.News.CacheTTL, DefaultCacheTTL)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
