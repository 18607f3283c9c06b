package service

import (
	"context"

	"github.com/MKhiriev/go-aliyah/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.Profile, error)
}

type QuizService interface {
	ListQuizzes(ctx context.Context, lang string) []models.QuizSummary
	GetQuiz(ctx context.Context, slug, lang string) (models.QuizView, error)
	SubmitQuiz(ctx context.Context, userID int64, slug, lang string, submission models.QuizSubmission) (models.QuizResult, error)
	ListAttempts(ctx context.Context, userID int64, limit int) ([]models.QuizAttempt, error)
}

type NewsService interface {
	LatestNews(ctx context.Context, lang string, limit int) ([]models.ArticleView, error)
}

type ContactService interface {
	SendContactMessage(ctx context.Context, message models.ContactMessage) error
}

type DigestService interface {
	SendDigest(ctx context.Context) (models.DigestReport, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}

type HealthService interface {
	Check(ctx context.Context) error
}

// AuthServiceWrapper decorates an AuthService, for example with input
// validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// ProfileServiceWrapper decorates a ProfileService.
type ProfileServiceWrapper interface {
	Wrap(ProfileService) ProfileService
}

// ContactServiceWrapper decorates a ContactService.
type ContactServiceWrapper interface {
	Wrap(ContactService) ContactService
}
