package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-aliyah/internal/crypto"
	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/store"
	"github.com/MKhiriev/go-aliyah/models"
)

// DigestArticles is the number of latest articles included in a digest.
const DigestArticles = 5

type digestService struct {
	userRepository    store.UserRepository
	profileRepository store.ProfileRepository
	articleRepository store.ArticleRepository
	mailer            *Mailer
	logger            *logger.Logger
}

func NewDigestService(
	userRepository store.UserRepository,
	profileRepository store.ProfileRepository,
	articleRepository store.ArticleRepository,
	mailer *Mailer,
	logger *logger.Logger,
) DigestService {
	return &digestService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		articleRepository: articleRepository,
		mailer:            mailer,
		logger:            logger,
	}
}

// SendDigest emails the latest news to every newsletter subscriber in their
// own language. A subscriber whose first name cannot be decrypted still gets
// the digest with a generic greeting. Individual delivery failures are
// counted, not returned.
func (s *digestService) SendDigest(ctx context.Context) (models.DigestReport, error) {
	log := logger.FromContext(ctx)
	var report models.DigestReport

	articles, err := s.articleRepository.LatestArticles(ctx, DigestArticles)
	if err != nil {
		return report, fmt.Errorf("loading digest articles: %w", err)
	}
	if len(articles) == 0 {
		log.Info().Msg("digest skipped: no articles")
		return report, nil
	}

	profiles, err := s.profileRepository.ListProfiles(ctx, models.ProfileFilter{NewsletterOnly: true})
	if err != nil {
		return report, fmt.Errorf("loading subscribers: %w", err)
	}
	if len(profiles) == 0 {
		return report, nil
	}

	ids := make([]int64, 0, len(profiles))
	for _, doc := range profiles {
		ids = append(ids, models.ProfileFromDocument(doc).UserID)
	}

	users, err := s.userRepository.FindUsersByIDs(ctx, ids)
	if err != nil {
		return report, fmt.Errorf("loading subscriber accounts: %w", err)
	}
	byID := make(map[int64]models.User, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}

	views := make(map[string][]models.ArticleView, len(i18n.Supported))

	for _, doc := range profiles {
		if err = ctx.Err(); err != nil {
			return report, err
		}

		profile := models.ProfileFromDocument(doc)
		user, ok := byID[profile.UserID]
		if !ok {
			log.Warn().Int64("user_id", profile.UserID).Msg("subscriber without account skipped")
			continue
		}
		report.Recipients++

		lang := user.Language
		if !i18n.IsSupported(lang) {
			lang = i18n.DefaultLanguage
		}
		if _, ok = views[lang]; !ok {
			views[lang] = renderArticles(articles, lang)
		}

		firstName := profile.FirstName
		if slices.Contains(store.UnavailableFields(doc, crypto.ProfileFields), models.ProfileKeyFirstName) {
			firstName = ""
			report.GenericGreetings++
		}

		msg, err := s.mailer.Composer.Digest(lang, user.Email, firstName, views[lang])
		if err != nil {
			log.Err(err).Str("func", "*digestService.SendDigest").Int64("user_id", user.UserID).Msg("digest was not rendered")
			report.Failed++
			continue
		}

		if err = s.mailer.deliver(ctx, msg); err != nil {
			report.Failed++
			continue
		}
		report.Sent++
	}

	log.Info().
		Int("recipients", report.Recipients).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("generic_greetings", report.GenericGreetings).
		Msg("digest finished")

	return report, nil
}

func renderArticles(articles []models.Article, lang string) []models.ArticleView {
	views := make([]models.ArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, a.View(lang))
	}
	return views
}
