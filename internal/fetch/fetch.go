package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

const (
	// UserAgent identifies the archive-friendly crawler.
	UserAgent = "leaguetables/1.0 (github.com/tgreenwood/leaguetables)"

	defaultTimeout       = 30 * time.Second
	defaultRetryInterval = 2 * time.Second
	defaultMaxRetries    = 3
)

// DocumentFetcher returns the raw HTML or text body for an identifier
// (typically a URL). Implementations may be network-backed or canned.
type DocumentFetcher interface {
	Fetch(ctx context.Context, identifier string) (string, error)
}

// Client is the production fetcher: an HTTP client with constant-interval
// retry on transient failures.
type Client struct {
	http       *resty.Client
	interval   time.Duration
	maxRetries uint64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithRetry overrides the retry interval and attempt budget.
func WithRetry(interval time.Duration, maxRetries uint64) Option {
	return func(c *Client) {
		c.interval = interval
		c.maxRetries = maxRetries
	}
}

// NewClient builds the production fetcher.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("User-Agent", UserAgent),
		interval:   defaultRetryInterval,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves a document body, retrying transient failures. A
// non-success status after retries is an error; callers treat it as "no
// rows found" rather than aborting the run.
func (c *Client) Fetch(ctx context.Context, identifier string) (string, error) {
	var body string

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.interval), c.maxRetries),
		ctx,
	)
	err := backoff.Retry(func() error {
		resp, err := c.http.R().SetContext(ctx).Get(identifier)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", identifier, err)
		}
		if resp.StatusCode() == 404 {
			// Missing documents never heal; don't burn the retry budget.
			return backoff.Permanent(fmt.Errorf("fetching %s: status 404", identifier))
		}
		if resp.IsError() {
			return fmt.Errorf("fetching %s: status %d", identifier, resp.StatusCode())
		}
		body = resp.String()
		return nil
	}, policy)
	if err != nil {
		return "", err
	}
	return body, nil
}

// Static is a canned fetcher for tests and offline runs: identifier to body.
type Static map[string]string

// Fetch returns the canned body or an error for unknown identifiers.
func (s Static) Fetch(_ context.Context, identifier string) (string, error) {
	body, ok := s[identifier]
	if !ok {
		return "", fmt.Errorf("no document for %s", identifier)
	}
	return body, nil
}
