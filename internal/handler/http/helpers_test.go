package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/service"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

const testToken = "signed.jwt.token"

// stubAuthService implements service.AuthService. Unset funcs panic, so a
// test fails loudly when it reaches a call it did not expect.
type stubAuthService struct {
	registerFn    func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	loginFn       func(ctx context.Context, request models.LoginRequest) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (s *stubAuthService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	return s.registerFn(ctx, request)
}

func (s *stubAuthService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	return s.loginFn(ctx, request)
}

func (s *stubAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if s.createTokenFn == nil {
		return models.Token{SignedString: testToken, UserID: user.UserID}, nil
	}
	return s.createTokenFn(ctx, user)
}

// ParseToken accepts testToken as user 42 unless overridden.
func (s *stubAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if s.parseTokenFn != nil {
		return s.parseTokenFn(ctx, tokenString)
	}
	if tokenString != testToken {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{SignedString: tokenString, UserID: 42}, nil
}

type stubProfileService struct {
	getFn    func(ctx context.Context, userID int64) (models.Profile, error)
	updateFn func(ctx context.Context, userID int64, update models.ProfileUpdate) (models.Profile, error)
}

func (s *stubProfileService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	return s.getFn(ctx, userID)
}

func (s *stubProfileService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.Profile, error) {
	return s.updateFn(ctx, userID, update)
}

type stubQuizService struct {
	listFn     func(ctx context.Context, lang string) []models.QuizSummary
	getFn      func(ctx context.Context, slug, lang string) (models.QuizView, error)
	submitFn   func(ctx context.Context, userID int64, slug, lang string, submission models.QuizSubmission) (models.QuizResult, error)
	attemptsFn func(ctx context.Context, userID int64, limit int) ([]models.QuizAttempt, error)
}

func (s *stubQuizService) ListQuizzes(ctx context.Context, lang string) []models.QuizSummary {
	return s.listFn(ctx, lang)
}

func (s *stubQuizService) GetQuiz(ctx context.Context, slug, lang string) (models.QuizView, error) {
	return s.getFn(ctx, slug, lang)
}

func (s *stubQuizService) SubmitQuiz(ctx context.Context, userID int64, slug, lang string, submission models.QuizSubmission) (models.QuizResult, error) {
	return s.submitFn(ctx, userID, slug, lang, submission)
}

func (s *stubQuizService) ListAttempts(ctx context.Context, userID int64, limit int) ([]models.QuizAttempt, error) {
	return s.attemptsFn(ctx, userID, limit)
}

type stubNewsService struct {
	latestFn func(ctx context.Context, lang string, limit int) ([]models.ArticleView, error)
}

func (s *stubNewsService) LatestNews(ctx context.Context, lang string, limit int) ([]models.ArticleView, error) {
	return s.latestFn(ctx, lang, limit)
}

type stubContactService struct {
	sendFn func(ctx context.Context, message models.ContactMessage) error
}

func (s *stubContactService) SendContactMessage(ctx context.Context, message models.ContactMessage) error {
	return s.sendFn(ctx, message)
}

type stubAppInfoService struct {
	version models.VersionResponse
}

func (s *stubAppInfoService) GetAppVersion(context.Context) models.VersionResponse {
	return s.version
}

type stubHealthService struct {
	err error
}

func (s *stubHealthService) Check(context.Context) error {
	return s.err
}

// newTestHandler fills services the test did not set with stubs that need no
// configuration.
func newTestHandler(t *testing.T, services *service.Services, options Options) *Handler {
	t.Helper()

	if services == nil {
		services = &service.Services{}
	}
	if services.AuthService == nil {
		services.AuthService = &stubAuthService{}
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &stubAppInfoService{version: models.VersionResponse{Version: "test"}}
	}
	if services.HealthService == nil {
		services.HealthService = &stubHealthService{}
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	}

	return NewHandler(services, i18n.MustLoad(), options, logger.Nop())
}

// serve sends a request through the full router.
func serve(t *testing.T, h *Handler, method, target string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func bearer() []string {
	return []string{"Authorization", "Bearer " + testToken}
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func ptr[T any](v T) *T {
	return &v
}
