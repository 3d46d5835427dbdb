package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/vitos/coingecko_coins/internal/domain"
	"go.uber.org/zap"
)

const (
	CoinGeckoBaseURL    = "https://api.coingecko.com/api/v3"
	DefaultAPIKeyHeader = "x-cg-api-key"

	// Error bodies are only kept for diagnostics.
	maxErrorBody = 2 << 10
)

type Client struct {
	apiKey       string
	apiKeyHeader string
	client       *http.Client
	logger       *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client. The default sets no timeout;
// bound requests through the context instead.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAPIKeyHeader overrides the header carrying the key, e.g. x-cg-demo-api-key.
func WithAPIKeyHeader(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.apiKeyHeader = name
		}
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		apiKeyHeader: DefaultAPIKeyHeader,
		client:       &http.Client{},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildHeaders returns the headers sent with every CoinGecko request.
func BuildHeaders(apiKey string) (map[string]string, error) {
	return buildHeaders(apiKey, DefaultAPIKeyHeader)
}

func buildHeaders(apiKey, keyHeader string) (map[string]string, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is missing, check your environment variables", domain.ErrConfiguration)
	}
	return map[string]string{
		"accept":  "application/json",
		keyHeader: apiKey,
	}, nil
}

// FetchJSON performs a single GET and decodes the JSON body into out.
// It never retries; non-2xx responses come back as *domain.HTTPStatusError.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: API key is missing, check your environment variables", domain.ErrConfiguration)
	}
	if rawURL == "" {
		return fmt.Errorf("%w: URL can not be empty", domain.ErrInvalidArgument)
	}
	if len(headers) == 0 {
		return fmt.Errorf("%w: headers can not be empty", domain.ErrInvalidArgument)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		tErr := &domain.TransportError{URL: rawURL, Timeout: isTimeout(err), Err: err}
		if tErr.Timeout {
			c.logger.Error("API request timed out", zap.String("url", rawURL))
		} else {
			c.logger.Error("API request failed", zap.String("url", rawURL), zap.Error(err))
		}
		return tErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.HTTPStatusError{StatusCode: resp.StatusCode, URL: rawURL, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}

// ListCoins fetches /coins/list for cfg.
func (c *Client) ListCoins(ctx context.Context, cfg domain.ClientConfig) (domain.CoinCollection, error) {
	headers, err := buildHeaders(c.apiKey, c.apiKeyHeader)
	if err != nil {
		return nil, err
	}
	url, err := BuildCoinsListURL(cfg)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetching coins list", zap.String("url", url))

	var coins domain.CoinCollection
	if err := c.FetchJSON(ctx, url, headers, &coins); err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched coins list", zap.Int("count", len(coins)))
	return coins, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
