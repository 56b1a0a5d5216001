// Package algod provides a minimal REST client for the ledger node's v2 API.
package algod

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/algointent/atomix/internal/cache"
	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/metrics"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

const (
	// apiTokenHeader carries the node API token.
	apiTokenHeader = "X-Algo-API-Token" // #nosec G101 -- header name, not a credential

	// defaultTimeout bounds a single HTTP round trip. Confirmation waits
	// span many calls, each individually bounded.
	defaultTimeout = 30 * time.Second
)

var (
	// ErrURLRequired indicates the node URL was not provided.
	ErrURLRequired = &atomixerr.AtomixError{
		Code:     "NODE_URL_REQUIRED",
		Message:  "ledger node URL is required",
		ExitCode: atomixerr.ExitInput,
	}

	// ErrInvalidResponse indicates an undecodable node response.
	ErrInvalidResponse = &atomixerr.AtomixError{
		Code:     "NODE_INVALID_RESPONSE",
		Message:  "invalid ledger node response",
		ExitCode: atomixerr.ExitGeneral,
	}
)

// ClientOptions contains optional configuration for the node client.
type ClientOptions struct {
	// APIToken is sent with every request when set.
	APIToken string
	// HTTPClient overrides the default HTTP client. Useful for sharing a
	// transport across clients and for tests.
	HTTPClient *http.Client
	// RateLimiter overrides the default per-endpoint limiter.
	RateLimiter *ledger.RateLimiter
	// AssetCache, when set, serves repeat asset parameter lookups without
	// touching the node.
	AssetCache *cache.AssetCache
	// CacheStorage, when set together with AssetCache, persists the cache
	// across runs. Persistence failures are ignored.
	CacheStorage *cache.FileStorage
}

// Client is a ledger node REST client. It is stateless and safe for
// concurrent use by multiple in-flight calls.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	limiter    *ledger.RateLimiter
	assetCache *cache.AssetCache
	cacheStore *cache.FileStorage
}

// NewClient creates a new node client.
func NewClient(baseURL string, opts *ClientOptions) (*Client, error) {
	if baseURL == "" {
		return nil, ErrURLRequired
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    ledger.DefaultRateLimiter(),
	}

	if opts != nil {
		c.apiToken = opts.APIToken
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
		if opts.RateLimiter != nil {
			c.limiter = opts.RateLimiter
		}
		c.assetCache = opts.AssetCache
		c.cacheStore = opts.CacheStorage
	}

	return c, nil
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, path, endpoint, nil, "", out)
}

// post performs a POST request with the given body and decodes the JSON
// response into out.
func (c *Client) post(ctx context.Context, path, endpoint string, body []byte, contentType string, out any) error {
	return c.do(ctx, http.MethodPost, path, endpoint, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path, endpoint string, body []byte, contentType string, out any) error {
	if err := c.limiter.Wait(ctx, endpoint); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	if c.apiToken != "" {
		req.Header.Set(apiTokenHeader, c.apiToken)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.Global.RecordNodeCall(time.Since(start), err)
	if err != nil {
		return atomixerr.Wrap(ledger.WrapRetryable(err), "calling %s", endpoint)
	}
	// Body.Close error is intentionally ignored as it only fails if the
	// connection is already broken, and there's no recovery action.
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nodeError(resp.StatusCode, respBody, endpoint)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return atomixerr.Wrap(ErrInvalidResponse, "decoding %s response", endpoint)
	}
	return nil
}

// nodeError maps a non-200 node response to a structured error, surfacing
// the node's message verbatim.
func nodeError(status int, body []byte, endpoint string) error {
	msg := nodeMessage(body)

	details := map[string]string{
		"endpoint": endpoint,
		"status":   fmt.Sprintf("%d", status),
	}
	if msg != "" {
		details["node_message"] = msg
	}

	switch {
	case status == http.StatusNotFound:
		return atomixerr.WithDetails(atomixerr.ErrNotFound, details)
	case status == http.StatusTooManyRequests:
		return ledger.WrapRetryable(atomixerr.WithDetails(atomixerr.ErrNetworkError, details))
	case status >= 500:
		return ledger.WrapRetryable(atomixerr.WithDetails(atomixerr.ErrNetworkError, details))
	default:
		return atomixerr.WithDetails(atomixerr.ErrNetworkError, details)
	}
}

// nodeMessage extracts the "message" field from a node error body.
func nodeMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

// escapePath escapes a path segment.
func escapePath(s string) string {
	return url.PathEscape(s)
}
