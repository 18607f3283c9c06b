package i18n

import (
	"context"
	"slices"

	"golang.org/x/text/language"
)

// Platform languages.
const (
	Spanish = "es"
	Hebrew  = "he"
)

// DefaultLanguage is used when nothing better is known.
const DefaultLanguage = Spanish

// Supported lists the platform languages in matcher order.
var Supported = []string{Spanish, Hebrew}

var matcher = language.NewMatcher([]language.Tag{language.Spanish, language.Hebrew})

// IsSupported reports whether lang is one of [Supported].
func IsSupported(lang string) bool {
	return slices.Contains(Supported, lang)
}

// Direction returns the text direction of lang for HTML rendering.
func Direction(lang string) string {
	if lang == Hebrew {
		return "rtl"
	}
	return "ltr"
}

// Others returns the supported languages except lang.
func Others(lang string) []string {
	out := make([]string, 0, len(Supported))
	for _, l := range Supported {
		if l != lang {
			out = append(out, l)
		}
	}
	return out
}

// Negotiate picks the best supported language for an Accept-Language header.
// It returns fallback when the header is empty, malformed or matches nothing.
func Negotiate(acceptLanguage, fallback string) string {
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}

	return Supported[index]
}

type langContextKey struct{}

// WithLanguage stores lang in ctx.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langContextKey{}, lang)
}

// FromContext returns the request language, or [DefaultLanguage].
func FromContext(ctx context.Context) string {
	lang, _ := ctx.Value(langContextKey{}).(string)
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}
