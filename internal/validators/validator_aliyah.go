package validators

import (
	"context"
	"net/mail"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-aliyah/internal/i18n"
	"github.com/MKhiriev/go-aliyah/models"
	"github.com/jonboulle/clockwork"
)

// Field name constants used to scope validation to a subset of fields. They
// match the JSON names of the request bodies.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldLanguage     = "language"
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldPhone        = "phone"
	FieldBirthDate    = "birthDate"
	FieldCity         = "city"
	FieldHebrewLevel  = "hebrewLevel"
	FieldAliyahStatus = "aliyahStatus"
	FieldName         = "name"
	FieldMessage      = "message"
	FieldAnswers      = "answers"
)

// Input limits.
const (
	MinPasswordLen   = 8
	MaxPasswordLen   = 128
	MaxEmailLen      = 254
	MaxNameLen       = 100
	MaxCityLen       = 100
	MaxMessageLen    = 5000
	birthDateLayout  = time.DateOnly
	oldestBirthYears = 130
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,18}[0-9]$`)

var (
	hebrewLevels = []string{
		models.HebrewNone,
		models.HebrewBeginner,
		models.HebrewIntermediate,
		models.HebrewAdvanced,
		models.HebrewNative,
	}
	aliyahStatuses = []string{
		models.AliyahExploring,
		models.AliyahPlanning,
		models.AliyahApplied,
		models.AliyahArrived,
	}
)

// AliyahValidator implements [Validator] for the request models of the
// accounts, profile, contact and quiz endpoints.
type AliyahValidator struct {
	clock clockwork.Clock
}

// NewAliyahValidator returns a [Validator]; clock decides what "in the past"
// means for birth dates.
func NewAliyahValidator(clock clockwork.Clock) Validator {
	return &AliyahValidator{clock: clock}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms of
// models.RegisterRequest, models.LoginRequest, models.Profile,
// models.ProfileUpdate, models.ContactMessage and models.QuizSubmission are
// accepted. Fields restrict the checks to the named subset.
func (v *AliyahValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)
	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)
	case models.Profile:
		return v.validateProfile(ctx, value, fields...)
	case *models.Profile:
		return v.validateProfile(ctx, *value, fields...)
	case models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, value)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, *value)
	case models.ContactMessage:
		return v.validateContactMessage(ctx, value, fields...)
	case *models.ContactMessage:
		return v.validateContactMessage(ctx, *value, fields...)
	case models.QuizSubmission:
		return v.validateQuizSubmission(value)
	case *models.QuizSubmission:
		return v.validateQuizSubmission(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *AliyahValidator) validateRegisterRequest(ctx context.Context, r models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldLanguage}
		if err := v.validateProfile(ctx, r.Profile()); err != nil {
			return err
		}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = checkEmail(r.Email)
		case FieldPassword:
			err = checkPassword(r.Password)
		case FieldLanguage:
			err = checkLanguage(r.Language)
		default:
			err = v.validateProfile(ctx, r.Profile(), f)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AliyahValidator) validateLoginRequest(_ context.Context, r models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := checkEmail(r.Email); err != nil {
				return err
			}
		case FieldPassword:
			// Only presence: a login must not leak the password policy.
			if r.Password == "" {
				return fieldError(FieldPassword, KeyRequired, "field", FieldPassword)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AliyahValidator) validateProfile(_ context.Context, p models.Profile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFirstName, FieldLastName, FieldPhone, FieldBirthDate, FieldCity, FieldHebrewLevel, FieldAliyahStatus}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldFirstName:
			err = checkRequiredText(FieldFirstName, p.FirstName, MaxNameLen)
		case FieldLastName:
			err = checkRequiredText(FieldLastName, p.LastName, MaxNameLen)
		case FieldPhone:
			err = checkPhone(p.Phone)
		case FieldBirthDate:
			err = v.checkBirthDate(p.BirthDate)
		case FieldCity:
			err = checkMaxLen(FieldCity, p.City, MaxCityLen)
		case FieldHebrewLevel:
			err = checkOneOf(FieldHebrewLevel, p.HebrewLevel, hebrewLevels, KeyInvalidHebrewLevel)
		case FieldAliyahStatus:
			err = checkOneOf(FieldAliyahStatus, p.AliyahStatus, aliyahStatuses, KeyInvalidAliyahStatus)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateProfileUpdate checks only the fields present in u. A present name
// must not be blank; any other present field may be cleared with "".
func (v *AliyahValidator) validateProfileUpdate(ctx context.Context, u models.ProfileUpdate) error {
	if u.IsEmpty() {
		return fieldError("update", KeyNothingToUpdate)
	}

	var (
		p      models.Profile
		fields []string
	)

	take := func(field string, src *string, dst *string) {
		if src != nil {
			*dst = *src
			fields = append(fields, field)
		}
	}
	take(FieldFirstName, u.FirstName, &p.FirstName)
	take(FieldLastName, u.LastName, &p.LastName)
	take(FieldPhone, u.Phone, &p.Phone)
	take(FieldBirthDate, u.BirthDate, &p.BirthDate)
	take(FieldCity, u.City, &p.City)
	take(FieldHebrewLevel, u.HebrewLevel, &p.HebrewLevel)
	take(FieldAliyahStatus, u.AliyahStatus, &p.AliyahStatus)

	if len(fields) == 0 {
		// newsletter only
		return nil
	}

	return v.validateProfile(ctx, p, fields...)
}

func (v *AliyahValidator) validateContactMessage(_ context.Context, m models.ContactMessage, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldMessage}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			err = checkRequiredText(FieldName, m.Name, MaxNameLen)
		case FieldEmail:
			err = checkEmail(m.Email)
		case FieldMessage:
			err = checkRequiredText(FieldMessage, m.Message, MaxMessageLen)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AliyahValidator) validateQuizSubmission(s models.QuizSubmission) error {
	if s.Answers == nil {
		return fieldError(FieldAnswers, KeyRequired, "field", FieldAnswers)
	}
	return nil
}

func (v *AliyahValidator) checkBirthDate(s string) error {
	if s == "" {
		return nil
	}

	date, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return fieldError(FieldBirthDate, KeyInvalidBirthDate)
	}

	now := v.clock.Now().UTC()
	if !date.Before(now) || date.Before(now.AddDate(-oldestBirthYears, 0, 0)) {
		return fieldError(FieldBirthDate, KeyInvalidBirthDate)
	}

	return nil
}

func checkEmail(s string) error {
	if s == "" || len(s) > MaxEmailLen {
		return fieldError(FieldEmail, KeyInvalidEmail)
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return fieldError(FieldEmail, KeyInvalidEmail)
	}

	return nil
}

func checkPassword(s string) error {
	n := utf8.RuneCountInString(s)
	if n < MinPasswordLen {
		return fieldError(FieldPassword, KeyPasswordTooShort, "min", strconv.Itoa(MinPasswordLen))
	}
	if n > MaxPasswordLen {
		return fieldError(FieldPassword, KeyTooLong, "field", FieldPassword, "max", strconv.Itoa(MaxPasswordLen))
	}
	return nil
}

func checkLanguage(s string) error {
	if !i18n.IsSupported(s) {
		return fieldError(FieldLanguage, KeyUnsupportedLanguage)
	}
	return nil
}

func checkRequiredText(field, s string, maxLen int) error {
	if strings.TrimSpace(s) == "" {
		return fieldError(field, KeyRequired, "field", field)
	}
	return checkMaxLen(field, s, maxLen)
}

func checkMaxLen(field, s string, maxLen int) error {
	if utf8.RuneCountInString(s) > maxLen {
		return fieldError(field, KeyTooLong, "field", field, "max", strconv.Itoa(maxLen))
	}
	return nil
}

func checkPhone(s string) error {
	if s == "" {
		return nil
	}
	if !phonePattern.MatchString(s) {
		return fieldError(FieldPhone, KeyInvalidPhone)
	}
	return nil
}

func checkOneOf(field, s string, allowed []string, key string) error {
	if s == "" || slices.Contains(allowed, s) {
		return nil
	}
	return fieldError(field, key)
}
