package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithRetries(2, 100*time.Millisecond))
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

type HTTPClientOption func(*resty.Client)

// WithRetries retries idempotent requests that failed at the transport level
// or were answered with 429, 502, 503 or 504. wait is the initial backoff; it
// doubles per attempt up to 10*wait.
func WithRetries(count int, wait time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetRetryCount(count).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(10 * wait).
			AddRetryCondition(retryableResponse)
	}
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetHeader("User-Agent", ua)
	}
}

func retryableResponse(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil {
		return err != nil
	}
	switch resp.Request.Method {
	case http.MethodGet, http.MethodHead:
	default:
		return false
	}
	if err != nil {
		return true
	}
	switch resp.StatusCode() {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// NewHTTPClient creates a new HTTPClient with its own resty.Client, connection
// pool and state, configured by opts.
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := resty.New()
	for _, opt := range opts {
		opt(c)
	}
	return &HTTPClient{Client: c}
}
