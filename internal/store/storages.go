package store

import (
	"github.com/MKhiriev/go-aliyah/internal/crypto"
	"github.com/MKhiriev/go-aliyah/internal/logger"
)

// Storages aggregates the repositories handed to the service layer.
type Storages struct {
	UserRepository        UserRepository
	ProfileRepository     ProfileRepository
	QuizAttemptRepository QuizAttemptRepository
	ArticleRepository     ArticleRepository
	HealthChecker         HealthChecker
}

// NewStorages builds every repository over db. The profile repository is
// always returned wrapped in field encryption.
func NewStorages(db *DB, cipher crypto.FieldCipher, recorder FieldFailureRecorder, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		ProfileRepository: NewEncryptedProfileRepository(
			NewProfileRepository(db, logger),
			cipher,
			crypto.ProfileFields,
			recorder,
			logger,
		),
		QuizAttemptRepository: NewQuizAttemptRepository(db, logger),
		ArticleRepository:     NewArticleRepository(db, logger),
		HealthChecker:         db,
	}
}
