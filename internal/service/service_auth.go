package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-aliyah/internal/config"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/store"
	"github.com/MKhiriev/go-aliyah/internal/utils"
	"github.com/MKhiriev/go-aliyah/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration (account plus encrypted profile), credential
// verification and the JWT token lifecycle.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// profileRepository must be the encrypting decorator: it receives the
	// plain profile document.
	profileRepository store.ProfileRepository

	mailer *Mailer

	// hashKey is the HMAC secret used when hashing user passwords before
	// storage or comparison. Must match the value used at registration time.
	hashKey string

	// signer is nil when the token settings are incomplete; signerErr says why.
	signer    *utils.JWTSigner
	signerErr error

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	profileRepository store.ProfileRepository,
	mailer *Mailer,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	signer, signerErr := utils.NewJWTSigner(cfg.TokenIssuer, cfg.TokenSignKey, cfg.TokenDuration, nil)

	return &authService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		mailer:            mailer,
		hashKey:           cfg.PasswordHashKey,
		signer:            signer,
		signerErr:         signerErr,
		logger:            logger,
	}
}

// RegisterUser creates the account and its encrypted profile.
//
// The password is stored as its HMAC-SHA256. If the profile cannot be
// stored, the account is deleted again so the email can be reused. The
// welcome email is best effort: a delivery failure is logged only.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - store.ErrEmailAlreadyExists (wrapped) if the email is taken.
//   - ErrRegistrationFailed wrapping the profile error otherwise.
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" || request.Password == "" {
		log.Error().Str("func", "*authService.RegisterUser").Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user := request.User()
	user.Email = normalizeEmail(user.Email)
	user.PasswordHash = a.hashPassword(request.Password)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Str("email", logger.MaskEmail(user.Email)).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	profile := request.Profile()
	profile.UserID = registeredUser.UserID

	if _, err = a.profileRepository.CreateProfile(ctx, profile.ToDocument()); err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Int64("user_id", registeredUser.UserID).Msg("profile creation failed, removing account")

		if delErr := a.userRepository.DeleteUser(ctx, registeredUser.UserID); delErr != nil {
			log.Err(delErr).Str("func", "*authService.RegisterUser").Int64("user_id", registeredUser.UserID).Msg("account removal after failed profile creation failed")
		}

		return models.User{}, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	a.sendWelcome(ctx, registeredUser, profile.FirstName)

	log.Info().Int64("user_id", registeredUser.UserID).Str("language", registeredUser.Language).Msg("user registered")
	return registeredUser, nil
}

func (a *authService) sendWelcome(ctx context.Context, user models.User, firstName string) {
	if a.mailer == nil {
		return
	}

	msg, err := a.mailer.Composer.Welcome(user.Language, user.Email, firstName)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.sendWelcome").Msg("welcome email was not rendered")
		return
	}

	_ = a.mailer.deliver(ctx, msg)
}

// Login authenticates an existing user.
//
// An unknown email and a wrong password both return ErrInvalidCredentials so
// that callers cannot probe for registered addresses.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" || request.Password == "" {
		log.Error().Str("func", "*authService.Login").Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, normalizeEmail(request.Email))
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("email", logger.MaskEmail(request.Email)).Msg("login for unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.EqualHashes(foundUser.PasswordHash, a.hashPassword(request.Password)) {
		log.Info().Int64("user_id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if a.signerErr != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, a.signerErr)
	}

	token, err := a.signer.Sign(user.UserID)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if a.signer == nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	token, err := a.signer.Parse(tokenString)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// hashPassword returns the HMAC-SHA256 of password under the service's
// hashKey.
func (a *authService) hashPassword(password string) string {
	return utils.HashString(password, a.hashKey)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
