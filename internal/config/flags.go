package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress is a host:port pair accepted by the -a flag.
type NetAddress struct {
	Host string
	Port int
}

// String returns host:port, or an empty string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts "host:port", "[ipv6]:port" and ":port". The host may be an IP
// or a DNS name; the port must be in 1..65535.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("port %q is not a number", rawPort)
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if strings.ContainsAny(host, " /") {
		return fmt.Errorf("invalid host %q", host)
	}

	a.Host = host
	a.Port = port
	return nil
}

// feedList collects repeated -feed flags.
type feedList []string

func (f *feedList) String() string {
	return strings.Join(*f, ",")
}

func (f *feedList) Set(s string) error {
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*f = append(*f, part)
		}
	}
	return nil
}

// parseFlags parses args (without the program name) into a partial config.
//
//	-a               listen address host:port
//	-d               database DSN
//	-redis           redis URL
//	-c, -config      JSON config file
//	-lang            default language (es, he)
//	-log-level       log level
//	-field-key       profile field master key
//	-token-duration  JWT lifetime
//	-request-timeout per-request timeout
//	-contact-limit   contact submissions per client per minute
//	-outbox          development email outbox directory
//	-digest-interval newsletter digest period
//	-feed            lang|url, repeatable
//	-news-interval   ingestion period
//	-translate-url   LibreTranslate base URL
func parseFlags(name string, args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var (
		address NetAddress
		feeds   feedList
		cfg     StructuredConfig
	)

	fs.Var(&address, "a", "listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "database DSN (postgres:// or file:)")
	fs.StringVar(&cfg.Storage.Redis.URL, "redis", "", "redis URL for the translation cache")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file (alias of -c)")
	fs.StringVar(&cfg.App.DefaultLanguage, "lang", "", "default language")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&cfg.App.PasswordHashKey, "password-hash-key", "", "password HMAC key")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "JWT signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "JWT issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "JWT lifetime, e.g. 24h")
	fs.StringVar(&cfg.App.FieldEncryptionKey, "field-key", "", "profile field master key (>= 32 chars)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "per-request timeout, e.g. 30s")
	fs.IntVar(&cfg.Server.ContactRateLimit, "contact-limit", 0, "contact submissions per client per minute")
	fs.StringVar(&cfg.Email.OutboxDir, "outbox", "", "development email outbox directory")
	fs.DurationVar(&cfg.Email.DigestInterval, "digest-interval", 0, "newsletter digest period, 0 disables")
	fs.Var(&feeds, "feed", "news feed as lang|url, repeatable")
	fs.DurationVar(&cfg.News.Interval, "news-interval", 0, "news ingestion period")
	fs.StringVar(&cfg.News.TranslateURL, "translate-url", "", "LibreTranslate base URL")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.Server.HTTPAddress = address.String()
	cfg.News.Feeds = feeds

	return &cfg, nil
}
