package validators

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-aliyah/models"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestValidator() Validator {
	return NewAliyahValidator(clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:        "dana@example.com",
		Password:     "s3cret-pass",
		Language:     "es",
		FirstName:    "Dana",
		LastName:     "Levi",
		Phone:        "+972 50-123-4567",
		BirthDate:    "1990-05-17",
		City:         "Haifa",
		HebrewLevel:  models.HebrewBeginner,
		AliyahStatus: models.AliyahPlanning,
		Newsletter:   true,
	}
}

func requireFieldError(t *testing.T, err error, field, key string) *FieldError {
	t.Helper()

	require.ErrorIs(t, err, ErrValidation)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, field, fe.Field)
	assert.Equal(t, key, fe.Key)
	return fe
}

func TestValidate_Dispatch(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("register value and pointer", func(t *testing.T) {
		r := validRegisterRequest()
		assert.NoError(t, v.Validate(ctx, r))
		assert.NoError(t, v.Validate(ctx, &r))
	})

	t.Run("login", func(t *testing.T) {
		assert.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "a@b.co", Password: "x"}))
	})

	t.Run("contact pointer", func(t *testing.T) {
		assert.NoError(t, v.Validate(ctx, &models.ContactMessage{Name: "Ana", Email: "a@b.co", Message: "hola"}))
	})

	t.Run("quiz submission", func(t *testing.T) {
		assert.NoError(t, v.Validate(ctx, models.QuizSubmission{Answers: map[string][]string{}}))
		requireFieldError(t, v.Validate(ctx, &models.QuizSubmission{}), FieldAnswers, KeyRequired)
	})
}

func TestValidate_RegisterRequest(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *models.RegisterRequest)
		field  string
		key    string
	}{
		{"empty email", func(r *models.RegisterRequest) { r.Email = "" }, FieldEmail, KeyInvalidEmail},
		{"email without at", func(r *models.RegisterRequest) { r.Email = "dana.example.com" }, FieldEmail, KeyInvalidEmail},
		{"email with display name", func(r *models.RegisterRequest) { r.Email = "Dana <dana@example.com>" }, FieldEmail, KeyInvalidEmail},
		{"email too long", func(r *models.RegisterRequest) { r.Email = strings.Repeat("a", 250) + "@b.co" }, FieldEmail, KeyInvalidEmail},
		{"short password", func(r *models.RegisterRequest) { r.Password = "1234567" }, FieldPassword, KeyPasswordTooShort},
		{"long password", func(r *models.RegisterRequest) { r.Password = strings.Repeat("p", 129) }, FieldPassword, KeyTooLong},
		{"unsupported language", func(r *models.RegisterRequest) { r.Language = "en" }, FieldLanguage, KeyUnsupportedLanguage},
		{"blank first name", func(r *models.RegisterRequest) { r.FirstName = "   " }, FieldFirstName, KeyRequired},
		{"missing last name", func(r *models.RegisterRequest) { r.LastName = "" }, FieldLastName, KeyRequired},
		{"long first name", func(r *models.RegisterRequest) { r.FirstName = strings.Repeat("ש", 101) }, FieldFirstName, KeyTooLong},
		{"bad phone", func(r *models.RegisterRequest) { r.Phone = "call me" }, FieldPhone, KeyInvalidPhone},
		{"short phone", func(r *models.RegisterRequest) { r.Phone = "12345" }, FieldPhone, KeyInvalidPhone},
		{"bad birth date format", func(r *models.RegisterRequest) { r.BirthDate = "17/05/1990" }, FieldBirthDate, KeyInvalidBirthDate},
		{"birth date in the future", func(r *models.RegisterRequest) { r.BirthDate = "2026-03-02" }, FieldBirthDate, KeyInvalidBirthDate},
		{"birth date too old", func(r *models.RegisterRequest) { r.BirthDate = "1890-01-01" }, FieldBirthDate, KeyInvalidBirthDate},
		{"long city", func(r *models.RegisterRequest) { r.City = strings.Repeat("c", 101) }, FieldCity, KeyTooLong},
		{"unknown hebrew level", func(r *models.RegisterRequest) { r.HebrewLevel = "fluent" }, FieldHebrewLevel, KeyInvalidHebrewLevel},
		{"unknown aliyah status", func(r *models.RegisterRequest) { r.AliyahStatus = "done" }, FieldAliyahStatus, KeyInvalidAliyahStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegisterRequest()
			tt.mutate(&r)
			requireFieldError(t, v.Validate(ctx, r), tt.field, tt.key)
		})
	}

	t.Run("optional fields may be empty", func(t *testing.T) {
		r := validRegisterRequest()
		r.Phone, r.BirthDate, r.City, r.HebrewLevel, r.AliyahStatus = "", "", "", "", ""
		assert.NoError(t, v.Validate(ctx, r))
	})

	t.Run("hebrew names", func(t *testing.T) {
		r := validRegisterRequest()
		r.FirstName, r.LastName, r.Language = "נועה", "כהן", "he"
		assert.NoError(t, v.Validate(ctx, r))
	})

	t.Run("password message carries the minimum", func(t *testing.T) {
		r := validRegisterRequest()
		r.Password = "short"
		fe := requireFieldError(t, v.Validate(ctx, r), FieldPassword, KeyPasswordTooShort)
		assert.Equal(t, []string{"min", "8"}, fe.Args)
	})

	t.Run("error text never echoes the value", func(t *testing.T) {
		r := validRegisterRequest()
		r.Phone = "secret-phone-value"
		err := v.Validate(ctx, r)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "secret-phone-value")
	})

	t.Run("scoped to one field", func(t *testing.T) {
		r := validRegisterRequest()
		r.Password = ""
		assert.NoError(t, v.Validate(ctx, r, FieldEmail))
		assert.NoError(t, v.Validate(ctx, r, FieldCity))
	})

	t.Run("unknown field", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, validRegisterRequest(), "nope"), ErrUnknownField)
	})
}

func TestValidate_LoginRequest(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	requireFieldError(t, v.Validate(ctx, models.LoginRequest{Email: "bad", Password: "x"}), FieldEmail, KeyInvalidEmail)
	requireFieldError(t, v.Validate(ctx, models.LoginRequest{Email: "a@b.co"}), FieldPassword, KeyRequired)
	// short passwords are not rejected on login
	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "a@b.co", Password: "1"}))
}

func TestValidate_ProfileUpdate(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		update  models.ProfileUpdate
		field   string
		key     string
		wantErr bool
	}{
		{name: "empty", update: models.ProfileUpdate{}, field: "update", key: KeyNothingToUpdate, wantErr: true},
		{name: "newsletter only", update: models.ProfileUpdate{Newsletter: ptr(false)}},
		{name: "city", update: models.ProfileUpdate{City: ptr("Tel Aviv")}},
		{name: "clear phone", update: models.ProfileUpdate{Phone: ptr("")}},
		{name: "blank first name", update: models.ProfileUpdate{FirstName: ptr(" ")}, field: FieldFirstName, key: KeyRequired, wantErr: true},
		{name: "bad level", update: models.ProfileUpdate{HebrewLevel: ptr("x")}, field: FieldHebrewLevel, key: KeyInvalidHebrewLevel, wantErr: true},
		{name: "bad date", update: models.ProfileUpdate{City: ptr("Eilat"), BirthDate: ptr("yesterday")}, field: FieldBirthDate, key: KeyInvalidBirthDate, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, &tt.update)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			requireFieldError(t, err, tt.field, tt.key)
		})
	}
}

func TestValidate_ContactMessage(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	valid := models.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "¿Cómo empiezo?"}

	m := valid
	m.Name = ""
	requireFieldError(t, v.Validate(ctx, m), FieldName, KeyRequired)

	m = valid
	m.Email = "ana"
	requireFieldError(t, v.Validate(ctx, m), FieldEmail, KeyInvalidEmail)

	m = valid
	m.Message = strings.Repeat("m", MaxMessageLen+1)
	requireFieldError(t, v.Validate(ctx, m), FieldMessage, KeyTooLong)
}
