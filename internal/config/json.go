package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		PasswordHashKey    string   `json:"password_hash_key"`
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		FieldEncryptionKey string   `json:"field_encryption_key"`
		DefaultLanguage    string   `json:"default_language"`
		LogLevel           string   `json:"log_level"`
		Version            string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			URL string `json:"url"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress      string   `json:"http_address"`
		RequestTimeout   Duration `json:"request_timeout"`
		ContactRateLimit int      `json:"contact_rate_limit"`
	} `json:"server,omitempty"`

	Email struct {
		PostmarkServerToken  string   `json:"postmark_server_token"`
		PostmarkAccountToken string   `json:"postmark_account_token"`
		From                 string   `json:"from"`
		ReplyTo              string   `json:"reply_to"`
		SupportAddress       string   `json:"support_address"`
		OutboxDir            string   `json:"outbox_dir"`
		DigestInterval       Duration `json:"digest_interval"`
	} `json:"email,omitempty"`

	News struct {
		Feeds            []string `json:"feeds"`
		Interval         Duration `json:"interval"`
		ItemsPerFeed     int      `json:"items_per_feed"`
		TranslateURL     string   `json:"translate_url"`
		TranslateAPIKey  string   `json:"translate_api_key"`
		TranslateTimeout Duration `json:"translate_timeout"`
		CacheTTL         Duration `json:"cache_ttl"`
	} `json:"news,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordHashKey:    jsonCfg.App.PasswordHashKey,
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenIssuer:        jsonCfg.App.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.App.TokenDuration),
			FieldEncryptionKey: jsonCfg.App.FieldEncryptionKey,
			DefaultLanguage:    jsonCfg.App.DefaultLanguage,
			LogLevel:           jsonCfg.App.LogLevel,
			Version:            jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				URL: jsonCfg.Storage.Redis.URL,
			},
		},
		Server: Server{
			HTTPAddress:      jsonCfg.Server.HTTPAddress,
			RequestTimeout:   time.Duration(jsonCfg.Server.RequestTimeout),
			ContactRateLimit: jsonCfg.Server.ContactRateLimit,
		},
		Email: Email{
			PostmarkServerToken:  jsonCfg.Email.PostmarkServerToken,
			PostmarkAccountToken: jsonCfg.Email.PostmarkAccountToken,
			From:                 jsonCfg.Email.From,
			ReplyTo:              jsonCfg.Email.ReplyTo,
			SupportAddress:       jsonCfg.Email.SupportAddress,
			OutboxDir:            jsonCfg.Email.OutboxDir,
			DigestInterval:       time.Duration(jsonCfg.Email.DigestInterval),
		},
		News: News{
			Feeds:            jsonCfg.News.Feeds,
			Interval:         time.Duration(jsonCfg.News.Interval),
			ItemsPerFeed:     jsonCfg.News.ItemsPerFeed,
			TranslateURL:     jsonCfg.News.TranslateURL,
			TranslateAPIKey:  jsonCfg.News.TranslateAPIKey,
			TranslateTimeout: time.Duration(jsonCfg.News.TranslateTimeout),
			CacheTTL:         time.Duration(jsonCfg.News.CacheTTL),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
