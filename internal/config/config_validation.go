// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// minFieldEncryptionKeyLen mirrors crypto.MinMasterKeyLen; config must not
// import the cipher package.
const minFieldEncryptionKeyLen = 32

var supportedLanguages = map[string]struct{}{"es": {}, "he": {}}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. All violations are
// reported together.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.PasswordHashKey == "" || cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: password hash key and token sign key are required", ErrInvalidAppConfigs))
	}

	if utf8.RuneCountInString(cfg.App.FieldEncryptionKey) < minFieldEncryptionKeyLen {
		errs = append(errs, fmt.Errorf("%w: field encryption key must be at least %d characters",
			ErrInvalidAppConfigs, minFieldEncryptionKeyLen))
	}

	if _, ok := supportedLanguages[cfg.App.DefaultLanguage]; !ok {
		errs = append(errs, fmt.Errorf("%w: unsupported default language %q", ErrInvalidAppConfigs, cfg.App.DefaultLanguage))
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel))
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		errs = append(errs, ErrInvalidStorageConfigs)
	}

	if cfg.Email.PostmarkServerToken != "" && cfg.Email.From == "" {
		errs = append(errs, fmt.Errorf("%w: sender address is required with postmark", ErrInvalidEmailConfigs))
	}

	if _, err := cfg.News.Sources(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// FeedSource is one parsed entry of [News.Feeds].
type FeedSource struct {
	Language string
	URL      string
}

// Sources parses [News.Feeds].
func (n News) Sources() ([]FeedSource, error) {
	sources := make([]FeedSource, 0, len(n.Feeds))

	for _, raw := range n.Feeds {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		lang, rawURL, ok := strings.Cut(raw, "|")
		if !ok {
			return nil, fmt.Errorf("%w: feed %q is not in lang|url form", ErrInvalidNewsConfigs, raw)
		}

		lang = strings.TrimSpace(lang)
		if _, ok := supportedLanguages[lang]; !ok {
			return nil, fmt.Errorf("%w: feed %q has unsupported language", ErrInvalidNewsConfigs, raw)
		}

		u, err := url.Parse(strings.TrimSpace(rawURL))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: feed %q has invalid url", ErrInvalidNewsConfigs, raw)
		}

		sources = append(sources, FeedSource{Language: lang, URL: u.String()})
	}

	return sources, nil
}
