// Package provider fetches publication lists from public bibliographic APIs
// and normalizes them into publication.Publication records.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matsen/labsite/internal/publication"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single request when the caller sets no deadline.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is requests per second across all providers sharing a Client.
	DefaultRateLimit = 5.0

	// DefaultUserAgent identifies the site to the public APIs.
	DefaultUserAgent = "labsite/1.0"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 16 << 20
)

// Provider is one bibliographic source in the fallback chain.
type Provider interface {
	// Name identifies the provider in logs and results.
	Name() string

	// Fetch returns every publication the provider lists for an ORCID iD.
	// An empty slice with a nil error means the provider has no works for the iD.
	Fetch(ctx context.Context, orcidID string) ([]publication.Publication, error)
}

// Client is a rate-limited JSON-over-HTTP client shared by all providers.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     logrus.FieldLogger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the request rate in requests per second. Zero or less disables limiting.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithUserAgent sets the User-Agent header. A contact address makes
// Crossref and OpenAlex route requests to their polite pools.
func WithUserAgent(ua string, mailto string) ClientOption {
	return func(c *Client) {
		if ua == "" {
			ua = DefaultUserAgent
		}
		if mailto != "" {
			ua = fmt.Sprintf("%s (mailto:%s)", ua, mailto)
		}
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new provider client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		userAgent:  DefaultUserAgent,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON issues one GET request and decodes the JSON body into v.
// Errors wrap ErrNetwork, ErrDecode, or are an *HTTPStatusError.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.WithField("url", url).Debug("fetching")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// checkHTTPErrors returns an error if the HTTP response is not 2xx.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		url := ""
		if resp.Request != nil && resp.Request.URL != nil {
			url = resp.Request.URL.String()
		}
		return &HTTPStatusError{StatusCode: resp.StatusCode, URL: url}
	}
	return nil
}
