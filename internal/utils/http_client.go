package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// userAgent identifies outbound requests to feeds and translation APIs.
const userAgent = "go-aliyah/1.0 (+news aggregator)"

// HTTPClient is the outbound client for feeds and the translation API.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with its own connection pool. Transport
// errors and 5xx answers are retried twice.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	return &HTTPClient{Client: client}
}
