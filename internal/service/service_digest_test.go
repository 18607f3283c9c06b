package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-aliyah/internal/email"
	"github.com/MKhiriev/go-aliyah/internal/logger"
	"github.com/MKhiriev/go-aliyah/internal/mock"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type digestMocks struct {
	users    *mock.MockUserRepository
	profiles *mock.MockProfileRepository
	articles *mock.MockArticleRepository
	sender   *mock.MockSender
}

func newTestDigestService(t *testing.T, ctrl *gomock.Controller) (DigestService, digestMocks) {
	t.Helper()

	m := digestMocks{
		users:    mock.NewMockUserRepository(ctrl),
		profiles: mock.NewMockProfileRepository(ctrl),
		articles: mock.NewMockArticleRepository(ctrl),
		sender:   mock.NewMockSender(ctrl),
	}

	return NewDigestService(m.users, m.profiles, m.articles, newTestMailer(t, m.sender), logger.Nop()), m
}

func digestArticles() []models.Article {
	return []models.Article{{
		ID:       "a1",
		Link:     "https://news.example/1",
		Language: "es",
		Title:    "Nueva oficina de Aliá",
		Translations: map[string]models.Translation{
			"he": {Title: "משרד עלייה חדש", Summary: "תקציר"},
		},
	}}
}

func TestDigestService_SendDigest(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestDigestService(t, ctrl)
	ctx := context.Background()

	m.articles.EXPECT().LatestArticles(ctx, DigestArticles).Return(digestArticles(), nil)
	m.profiles.EXPECT().
		ListProfiles(ctx, models.ProfileFilter{NewsletterOnly: true}).
		Return([]models.ProfileDocument{
			{models.ProfileKeyUserID: int64(1), models.ProfileKeyFirstName: "Dana"},
			{models.ProfileKeyUserID: int64(2), "firstNameEncrypted": "AAAA"},
			{models.ProfileKeyUserID: int64(3), models.ProfileKeyFirstName: "Ori"},
			{models.ProfileKeyUserID: int64(4), models.ProfileKeyFirstName: "Gone"},
		}, nil)
	m.users.EXPECT().
		FindUsersByIDs(ctx, []int64{1, 2, 3, 4}).
		Return([]models.User{
			{UserID: 1, Email: "dana@example.com", Language: "es"},
			{UserID: 2, Email: "noa@example.com", Language: "he"},
			{UserID: 3, Email: "ori@example.com", Language: "he"},
		}, nil)

	m.sender.EXPECT().
		SendEmail(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, msg email.Message) error {
			assert.Equal(t, email.TagDigest, msg.Tag)
			switch msg.To {
			case "dana@example.com":
				assert.Contains(t, msg.HTMLBody, "¡Hola, Dana!")
				assert.Contains(t, msg.HTMLBody, "Nueva oficina de Aliá")
				return nil
			case "noa@example.com":
				assert.Contains(t, msg.HTMLBody, "שלום!")
				assert.Contains(t, msg.HTMLBody, "משרד עלייה חדש")
				return nil
			default:
				return email.ErrFailedToSendEmail
			}
		}).
		Times(3)

	report, err := svc.SendDigest(ctx)

	require.NoError(t, err)
	assert.Equal(t, models.DigestReport{Recipients: 3, Sent: 2, Failed: 1, GenericGreetings: 1}, report)
}

func TestDigestService_SendDigest_NoArticles(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestDigestService(t, ctrl)
	ctx := context.Background()

	m.articles.EXPECT().LatestArticles(ctx, DigestArticles).Return(nil, nil)

	report, err := svc.SendDigest(ctx)

	require.NoError(t, err)
	assert.Zero(t, report)
}

func TestDigestService_SendDigest_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestDigestService(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	m.articles.EXPECT().LatestArticles(ctx, DigestArticles).Return(digestArticles(), nil)
	m.profiles.EXPECT().ListProfiles(ctx, gomock.Any()).Return([]models.ProfileDocument{
		{models.ProfileKeyUserID: int64(1), models.ProfileKeyFirstName: "Dana"},
	}, nil)
	m.users.EXPECT().
		FindUsersByIDs(ctx, []int64{1}).
		DoAndReturn(func(context.Context, []int64) ([]models.User, error) {
			cancel()
			return []models.User{{UserID: 1, Email: "dana@example.com", Language: "es"}}, nil
		})

	_, err := svc.SendDigest(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
