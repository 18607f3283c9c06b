package models

import (
	"time"

	"github.com/rs/zerolog"
)

// Hebrew proficiency levels accepted in [Profile.HebrewLevel].
const (
	HebrewNone         = "none"
	HebrewBeginner     = "beginner"
	HebrewIntermediate = "intermediate"
	HebrewAdvanced     = "advanced"
	HebrewNative       = "native"
)

// Aliyah process stages accepted in [Profile.AliyahStatus].
const (
	AliyahExploring = "exploring"
	AliyahPlanning  = "planning"
	AliyahApplied   = "applied"
	AliyahArrived   = "arrived"
)

// Document keys of the non-sensitive profile attributes. The sensitive keys
// are defined by crypto.ProfileFields.
const (
	ProfileKeyUserID       = "userId"
	ProfileKeyFirstName    = "firstName"
	ProfileKeyLastName     = "lastName"
	ProfileKeyPhone        = "phone"
	ProfileKeyBirthDate    = "birthDate"
	ProfileKeyCity         = "city"
	ProfileKeyHebrewLevel  = "hebrewLevel"
	ProfileKeyAliyahStatus = "aliyahStatus"
	ProfileKeyNewsletter   = "newsletter"
	ProfileKeyCreatedAt    = "createdAt"
	ProfileKeyUpdatedAt    = "updatedAt"
)

// Profile is the personal data a user gives during registration.
//
// FirstName, LastName, Phone, BirthDate and City are stored encrypted. They
// are never written to logs: see [Profile.MarshalZerologObject].
type Profile struct {
	UserID       int64      `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Phone        string     `json:"phone,omitempty"`
	BirthDate    string     `json:"birthDate,omitempty"`
	City         string     `json:"city,omitempty"`
	HebrewLevel  string     `json:"hebrewLevel,omitempty"`
	AliyahStatus string     `json:"aliyahStatus,omitempty"`
	Newsletter   bool       `json:"newsletter"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`

	// UnavailableFields lists sensitive fields that could not be decrypted
	// on read. Their values are left empty.
	UnavailableFields []string `json:"unavailableFields,omitempty"`
}

// MarshalZerologObject logs only non-sensitive attributes.
func (p Profile) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("user_id", p.UserID).
		Str("hebrew_level", p.HebrewLevel).
		Str("aliyah_status", p.AliyahStatus).
		Bool("newsletter", p.Newsletter).
		Strs("unavailable_fields", p.UnavailableFields)
}

// ProfileDocument is the field map exchanged with the profile storage. Plain
// sensitive keys go in; the storage only ever sees their "...Encrypted"
// counterparts.
type ProfileDocument map[string]any

// ToDocument converts p into a document with plain keys. Empty optional
// sensitive strings are omitted so they are not stored as ciphertext of "".
func (p Profile) ToDocument() ProfileDocument {
	doc := ProfileDocument{
		ProfileKeyUserID:     p.UserID,
		ProfileKeyFirstName:  p.FirstName,
		ProfileKeyLastName:   p.LastName,
		ProfileKeyNewsletter: p.Newsletter,
	}

	optional := map[string]string{
		ProfileKeyPhone:        p.Phone,
		ProfileKeyBirthDate:    p.BirthDate,
		ProfileKeyCity:         p.City,
		ProfileKeyHebrewLevel:  p.HebrewLevel,
		ProfileKeyAliyahStatus: p.AliyahStatus,
	}
	for k, v := range optional {
		if v != "" {
			doc[k] = v
		}
	}

	return doc
}

// ProfileFromDocument is the inverse of [Profile.ToDocument]. Keys it does
// not know, including still-encrypted ones, are ignored.
func ProfileFromDocument(doc ProfileDocument) Profile {
	p := Profile{
		UserID:       docInt64(doc, ProfileKeyUserID),
		FirstName:    docString(doc, ProfileKeyFirstName),
		LastName:     docString(doc, ProfileKeyLastName),
		Phone:        docString(doc, ProfileKeyPhone),
		BirthDate:    docString(doc, ProfileKeyBirthDate),
		City:         docString(doc, ProfileKeyCity),
		HebrewLevel:  docString(doc, ProfileKeyHebrewLevel),
		AliyahStatus: docString(doc, ProfileKeyAliyahStatus),
	}

	if b, ok := doc[ProfileKeyNewsletter].(bool); ok {
		p.Newsletter = b
	}
	if t, ok := doc[ProfileKeyCreatedAt].(time.Time); ok {
		p.CreatedAt = &t
	}
	if t, ok := doc[ProfileKeyUpdatedAt].(time.Time); ok {
		p.UpdatedAt = &t
	}

	return p
}

// ProfileUpdate is a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	BirthDate    *string `json:"birthDate,omitempty"`
	City         *string `json:"city,omitempty"`
	HebrewLevel  *string `json:"hebrewLevel,omitempty"`
	AliyahStatus *string `json:"aliyahStatus,omitempty"`
	Newsletter   *bool   `json:"newsletter,omitempty"`
}

// ToDocument returns only the keys set in u.
func (u ProfileUpdate) ToDocument() ProfileDocument {
	doc := ProfileDocument{}

	set := func(key string, v *string) {
		if v != nil {
			doc[key] = *v
		}
	}
	set(ProfileKeyFirstName, u.FirstName)
	set(ProfileKeyLastName, u.LastName)
	set(ProfileKeyPhone, u.Phone)
	set(ProfileKeyBirthDate, u.BirthDate)
	set(ProfileKeyCity, u.City)
	set(ProfileKeyHebrewLevel, u.HebrewLevel)
	set(ProfileKeyAliyahStatus, u.AliyahStatus)

	if u.Newsletter != nil {
		doc[ProfileKeyNewsletter] = *u.Newsletter
	}

	return doc
}

// IsEmpty reports whether u changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return len(u.ToDocument()) == 0
}

func docString(doc ProfileDocument, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docInt64(doc ProfileDocument, key string) int64 {
	switch v := doc[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// ProfileFilter selects profiles for multi-record reads.
type ProfileFilter struct {
	// UserIDs restricts the result when non-empty.
	UserIDs []int64
	// NewsletterOnly keeps profiles that opted in to the newsletter.
	NewsletterOnly bool
	// Limit caps the result; zero means no cap.
	Limit int
}
