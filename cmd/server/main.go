package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/config"
	"github.com/MKhiriev/go-aliyah/internal/crypto"
	"github.com/MKhiriev/go-aliyah/internal/email"
	httpHandler "github.com/MKhiriev/go-aliyah/internal/handler/http"
	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/metrics"
	"github.com/MKhiriev/go-aliyah/internal/news"
	"github.com/MKhiriev/go-aliyah/internal/quiz"
	"github.com/MKhiriev/go-aliyah/internal/server"
	"github.com/MKhiriev/go-aliyah/internal/service"
	"github.com/MKhiriev/go-aliyah/internal/store"
	"github.com/MKhiriev/go-aliyah/internal/utils"
	"github.com/MKhiriev/go-aliyah/internal/validators"
	"github.com/MKhiriev/go-aliyah/internal/workers"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/jonboulle/clockwork"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// feedTimeout bounds one RSS download.
const feedTimeout = 20 * time.Second

func main() {
	printBuildInfo()

	log := logger.NewLogger("aliyah-server")
	if err := run(log); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	ctx := log.WithContext(context.Background())
	clock := clockwork.NewRealClock()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	if log, err = log.WithLevel(cfg.App.LogLevel); err != nil {
		return err
	}
	ctx = log.WithContext(ctx)

	// the field key is checked before anything touches personal data
	if err = crypto.ValidateMasterKey(cfg.App.FieldEncryptionKey); err != nil {
		return err
	}

	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	storages := store.NewStorages(db, crypto.NewFieldCipher(cfg.App.FieldEncryptionKey), m.Fields, log)
	healthChecks := map[string]store.HealthChecker{"database": storages.HealthChecker}

	catalog, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("error loading translations: %w", err)
	}

	quizzes, err := quiz.Load()
	if err != nil {
		return fmt.Errorf("error loading quizzes: %w", err)
	}

	sender, err := email.NewSender(cfg.Email, clock, log)
	if err != nil {
		return fmt.Errorf("error creating email sender: %w", err)
	}
	composer, err := email.NewComposer(catalog)
	if err != nil {
		return fmt.Errorf("error creating email composer: %w", err)
	}
	mailer := &service.Mailer{Composer: composer, Sender: sender, Metrics: m.Email}

	cache := news.NewMemoryCache(cfg.News.CacheTTL, clock, m.Cache)
	if cfg.Storage.Redis.URL != "" {
		rdb, err := news.NewRedisClient(cfg.Storage.Redis.URL)
		if err != nil {
			return fmt.Errorf("error creating redis client: %w", err)
		}
		defer rdb.Close()

		cache = news.NewRedisCache(rdb, cfg.News.CacheTTL, m.Cache)
		healthChecks["redis"] = service.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	feeds, err := cfg.News.Sources()
	if err != nil {
		return err
	}
	ingester := news.NewIngester(
		feeds,
		cfg.News.ItemsPerFeed,
		news.NewFeedFetcher(utils.NewHTTPClient(feedTimeout), clock),
		news.NewTranslator(cfg.News, cache, m.News, log),
		storages.ArticleRepository,
		m.News,
		log,
	)

	services, err := service.NewServices(
		storages,
		quizzes,
		mailer,
		validators.NewAliyahValidator(clock),
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		healthChecks,
		cfg,
		log,
	)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handler := httpHandler.NewHandler(services, catalog, httpHandler.Options{
		DefaultLanguage:  cfg.App.DefaultLanguage,
		RequestTimeout:   cfg.Server.RequestTimeout,
		ContactRateLimit: cfg.Server.ContactRateLimit,
		Metrics:          m.HTTP,
		MetricsHandler:   metrics.Handler(registry),
		Clock:            clock,
	}, log)

	background := workers.NewWorkers(
		workers.NewTickerWorker("news-ingester", cfg.News.Interval, func(ctx context.Context) error {
			_, err := ingester.Run(ctx)
			return err
		}, log, workers.WithRunOnStart()),
		workers.NewTickerWorker("newsletter-digest", cfg.Email.DigestInterval, func(ctx context.Context) error {
			_, err := services.DigestService.SendDigest(ctx)
			return err
		}, log),
	)

	srv, err := server.NewServer(handler.Init(), background, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer(ctx)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
