package store

import (
	"context"

	"github.com/MKhiriev/go-aliyah/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUsersByIDs(ctx context.Context, userIDs []int64) ([]models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// ProfileRepository persists profile documents keyed by field name.
//
// The SQL implementation only accepts encrypted sensitive keys. Services use
// the decorator returned by [NewEncryptedProfileRepository], which accepts
// and returns plain keys.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, doc models.ProfileDocument) (models.ProfileDocument, error)
	UpdateProfile(ctx context.Context, userID int64, doc models.ProfileDocument) (models.ProfileDocument, error)
	FindProfile(ctx context.Context, userID int64) (models.ProfileDocument, error)
	ListProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.ProfileDocument, error)
}

// QuizAttemptRepository persists scored quiz submissions.
type QuizAttemptRepository interface {
	SaveAttempt(ctx context.Context, attempt models.QuizAttempt) (models.QuizAttempt, error)
	ListAttempts(ctx context.Context, userID int64, limit int) ([]models.QuizAttempt, error)
}

// ArticleRepository persists aggregated news.
type ArticleRepository interface {
	// SaveArticles inserts articles whose fingerprint is not stored yet and
	// returns how many were inserted.
	SaveArticles(ctx context.Context, articles []models.Article) (int, error)
	// KnownFingerprints returns the subset of fingerprints already stored.
	KnownFingerprints(ctx context.Context, fingerprints []string) (map[string]struct{}, error)
	LatestArticles(ctx context.Context, limit int) ([]models.Article, error)
}

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}
