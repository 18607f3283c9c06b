package i18n

import (
	"net/http"
	"strings"
)

// QueryParam overrides header negotiation when set to a supported language.
const QueryParam = "lang"

// Middleware resolves the request language from ?lang=, then
// Accept-Language, then fallback. The result is stored in the request
// context and echoed in the Content-Language header.
func Middleware(fallback string) func(http.Handler) http.Handler {
	if !IsSupported(fallback) {
		fallback = DefaultLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(QueryParam)))
			if !IsSupported(lang) {
				lang = Negotiate(r.Header.Get("Accept-Language"), fallback)
			}

			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}
