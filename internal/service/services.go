package service

import (
	"github.com/MKhiriev/go-aliyah/internal/config"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/quiz"
	"github.com/MKhiriev/go-aliyah/internal/store"
	"github.com/MKhiriev/go-aliyah/internal/validators"
	"github.com/MKhiriev/go-aliyah/models"
)

type Services struct {
	AuthService    AuthService
	ProfileService ProfileService
	QuizService    QuizService
	NewsService    NewsService
	ContactService ContactService
	DigestService  DigestService
	AppInfoService AppInfoService
	HealthService  HealthService
}

// NewServices wires every service over storages. Services that accept
// untrusted input are wrapped in validation.
func NewServices(
	storages *store.Storages,
	quizzes *quiz.Catalog,
	mailer *Mailer,
	validator validators.Validator,
	buildInfo models.AppBuildInfo,
	healthChecks map[string]store.HealthChecker,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthValidationService(validator).Wrap(
		NewAuthService(storages.UserRepository, storages.ProfileRepository, mailer, cfg.App, logger),
	)
	profileService := NewProfileValidationService(validator).Wrap(
		NewProfileService(storages.ProfileRepository, logger),
	)
	contactService := NewContactValidationService(validator).Wrap(
		NewContactService(mailer, cfg.Email.SupportAddress, logger),
	)

	return &Services{
		AuthService:    authService,
		ProfileService: profileService,
		QuizService:    NewQuizService(quizzes, storages.QuizAttemptRepository, validator, logger),
		NewsService:    NewNewsService(storages.ArticleRepository, logger),
		ContactService: contactService,
		DigestService: NewDigestService(
			storages.UserRepository,
			storages.ProfileRepository,
			storages.ArticleRepository,
			mailer,
			logger,
		),
		AppInfoService: appInfoService,
		HealthService:  NewHealthService(healthChecks),
	}, nil
}
