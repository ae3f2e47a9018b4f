package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/ParthJhaveri10/Lumeo/config"
	"github.com/ParthJhaveri10/Lumeo/logger"
	"github.com/ParthJhaveri10/Lumeo/model"
)

// Store is a read-through cache for successful response payloads.
// Implemented by cache.CatalogCache; a nil Store disables caching.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Config configures a catalog Client. Zero values fall back to the
// defaults below.
type Config struct {
	BaseURL           string
	Timeout           time.Duration // per-attempt bound
	MaxRetries        int           // additional attempts beyond the first
	RetryBaseDelay    time.Duration
	MinRequestSpacing time.Duration
	HTTPClient        *http.Client
	Cache             Store
}

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
	defaultSpacing    = 100 * time.Millisecond
)

// Client performs calls against the upstream catalog API. All calls
// made through one Client share its request-spacing state, so one
// Client per logical upstream connection is the intended shape.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
	minSpacing time.Duration
	cache      Store

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a catalog client.
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
		minSpacing: cfg.MinRequestSpacing,
		cache:      cfg.Cache,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxRetries <= 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.baseDelay <= 0 {
		c.baseDelay = defaultBaseDelay
	}
	if c.minSpacing <= 0 {
		c.minSpacing = defaultSpacing
	}
	return c
}

// FromAppConfig builds a client from the application configuration.
func FromAppConfig(cfg *config.Config, store Store) *Client {
	return NewClient(Config{
		BaseURL:           cfg.UpstreamBaseURL,
		Timeout:           cfg.RequestTimeout,
		MaxRetries:        cfg.MaxRetries,
		RetryBaseDelay:    cfg.RetryBaseDelay,
		MinRequestSpacing: cfg.MinRequestSpacing,
		Cache:             store,
	})
}

// throttle enforces the minimum spacing between call starts. The slot
// is claimed under the lock so concurrent callers queue up at
// minSpacing intervals, then the wait happens outside it.
func (c *Client) throttle(ctx context.Context) error {
	if c.minSpacing <= 0 {
		return nil
	}
	c.mu.Lock()
	now := time.Now()
	wait := c.minSpacing - now.Sub(c.lastRequest)
	if wait < 0 {
		wait = 0
	}
	c.lastRequest = now.Add(wait)
	c.mu.Unlock()

	if wait > 0 {
		return sleep(ctx, wait)
	}
	return nil
}

// backoffDelay returns the wait before the given retry (1-based):
// D, 2D, 4D, ...
func (c *Client) backoffDelay(retry int) time.Duration {
	d := c.baseDelay
	for i := 1; i < retry; i++ {
		d *= 2
	}
	return d
}

// retryable reports whether a failed attempt may be repeated. Caller
// mistakes and upstream 4xx answers are final; transport failures,
// 5xx answers and unusable bodies are worth another try. KindGeneric
// retries because it only ever marks an unusable body on a 2xx
// status: empty, not JSON, wrong shape, or an envelope reporting
// failure without an error status.
func retryable(err error) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Kind {
	case KindNetwork, KindGeneric:
		return true
	case KindAPIResponse:
		return ce.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// get performs a GET against path, decoding the envelope's data field
// into out. It applies request spacing, the per-attempt timeout and
// the bounded retry schedule, and returns a classified *Error on
// terminal failure.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := path
	if len(params) > 0 {
		endpoint = path + "?" + params.Encode()
	}

	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, endpoint); ok {
			if err := json.Unmarshal(data, out); err == nil {
				logger.Debug("catalog cache hit", logger.String("endpoint", endpoint))
				return nil
			}
			// Unreadable cache entries fall through to the network.
		}
	}

	if err := c.throttle(ctx); err != nil {
		return networkError("request canceled while waiting for rate limit", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoffDelay(attempt)
			logger.Warn("catalog retrying",
				logger.String("endpoint", path),
				logger.Int("attempt", attempt+1),
				logger.Duration("backoff", delay),
				logger.ErrorField(lastErr),
			)
			if err := sleep(ctx, delay); err != nil {
				return networkError("request canceled during retry backoff", err)
			}
		}

		data, err := c.attempt(ctx, endpoint)
		if err != nil {
			lastErr = err
			if !retryable(err) {
				return c.annotate(err, endpoint)
			}
			continue
		}

		if err := json.Unmarshal(data, out); err != nil {
			lastErr = genericError("response data did not match the expected shape", err)
			continue
		}
		if c.cache != nil {
			c.cache.Set(ctx, endpoint, data)
		}
		return nil
	}

	logger.Error("catalog call failed after all attempts",
		logger.String("endpoint", path),
		logger.Int("attempts", c.maxRetries+1),
		logger.ErrorField(lastErr),
	)
	return c.annotate(lastErr, endpoint)
}

// attempt performs one bounded HTTP round trip and returns the
// envelope's raw data payload.
func (c *Client) attempt(ctx context.Context, endpoint string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, genericError("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() != nil {
			return nil, networkError(fmt.Sprintf("request timed out after %s", c.timeout), err)
		}
		return nil, networkError("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError("failed to read response body", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		var apiErr model.APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return nil, apiResponseError(resp.StatusCode, msg)
	}

	if len(body) == 0 {
		return nil, genericError("empty response body", nil)
	}

	var env model.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, genericError("response body is not valid JSON", err)
	}
	if !env.Success {
		return nil, genericError("upstream reported an unsuccessful response", nil)
	}
	return env.Data, nil
}

// annotate attaches the endpoint to a classified error's context.
func (c *Client) annotate(err error, endpoint string) error {
	var ce *Error
	if errors.As(err, &ce) {
		if ce.Context == nil {
			ce.Context = map[string]any{}
		}
		ce.Context["endpoint"] = endpoint
		return ce
	}
	return err
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
