package sender

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/prilive-com/tgcmd/internal/scrub"
	"github.com/prilive-com/tgcmd/tg"
)

const (
	maxResponseSize = 10 << 20 // 10MB
)

// Sleeper abstracts time-based waiting for testing.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// CircuitBreakerSettings configures the circuit breaker behavior.
type CircuitBreakerSettings struct {
	// MaxRequests is the maximum number of requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	// If 0, internal counts never reset in closed state.
	Interval time.Duration

	// Timeout is the duration of the open state before transitioning to half-open.
	Timeout time.Duration

	// ReadyToTrip determines if breaker should trip based on failure counts.
	// If nil, uses default (50% failure rate after 3 requests).
	ReadyToTrip func(counts gobreaker.Counts) bool
}

// DefaultCircuitBreakerSettings returns production-ready defaults.
func DefaultCircuitBreakerSettings() CircuitBreakerSettings {
	return CircuitBreakerSettings{
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 3 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.5
		},
	}
}

// realSleeper uses actual time.
type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Client is the Telegram Bot API client.
type Client struct {
	config          Config
	httpClient      *http.Client
	logger          *slog.Logger
	limiter         *rate.Limiter
	breaker         *gobreaker.CircuitBreaker[*apiResponse]
	breakerSettings CircuitBreakerSettings
	sleeper         Sleeper // For testing retry logic
}

type apiResponse struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *responseParameters `json:"parameters,omitempty"`
}

// responseParameters contains special parameters returned by Telegram API
type responseParameters struct {
	RetryAfter      int   `json:"retry_after,omitempty"`
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRateLimit sets rate limiting parameters.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.config.GlobalRPS = rps
		c.config.GlobalBurst = burst
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRetries sets retry parameters.
func WithRetries(max int) Option {
	return func(c *Client) {
		c.config.MaxRetries = max
	}
}

// WithBaseURL sets the API base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.config.BaseURL = url
	}
}

// WithSleeper sets a custom sleeper for retry timing (useful for testing).
func WithSleeper(s Sleeper) Option {
	return func(c *Client) {
		c.sleeper = s
	}
}

// WithCircuitBreakerSettings configures the circuit breaker.
func WithCircuitBreakerSettings(settings CircuitBreakerSettings) Option {
	return func(c *Client) {
		c.breakerSettings = settings
	}
}

func createHTTPClient(cfg Config) *http.Client {
	return &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: cfg.KeepAlive,
			}).DialContext,
			MaxIdleConns:          cfg.MaxIdleConns,
			IdleConnTimeout:       cfg.IdleTimeout,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			ForceAttemptHTTP2:     true,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// New creates a new Client with the given token and options.
func New(token string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Token = tg.SecretToken(token)
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a Client from a Config.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Token.IsEmpty() {
		return nil, tg.ErrInvalidToken
	}

	c := &Client{config: cfg}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.httpClient == nil {
		c.httpClient = createHTTPClient(c.config)
	}

	if c.limiter == nil {
		c.limiter = rate.NewLimiter(rate.Limit(c.config.GlobalRPS), c.config.GlobalBurst)
	}

	if c.sleeper == nil {
		c.sleeper = realSleeper{}
	}

	if c.breakerSettings.ReadyToTrip == nil {
		c.breakerSettings = CircuitBreakerSettings{
			MaxRequests: c.config.BreakerMaxRequests,
			Interval:    c.config.BreakerInterval,
			Timeout:     c.config.BreakerTimeout,
			ReadyToTrip: DefaultCircuitBreakerSettings().ReadyToTrip,
		}
	}

	c.breaker = gobreaker.NewCircuitBreaker[*apiResponse](gobreaker.Settings{
		Name:         "tgcmd-sender",
		MaxRequests:  c.breakerSettings.MaxRequests,
		Interval:     c.breakerSettings.Interval,
		Timeout:      c.breakerSettings.Timeout,
		ReadyToTrip:  c.breakerSettings.ReadyToTrip,
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return c, nil
}

// Close releases resources used by the client.
// It is safe to call Close concurrently with other methods;
// in-flight requests will complete normally or with context errors.
func (c *Client) Close() error {
	if t, ok := c.httpClient.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, method string, payload any) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.breaker.Execute(func() (*apiResponse, error) {
		return c.doRequest(ctx, method, payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", tg.ErrCircuitOpen, err)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) doRequest(ctx context.Context, method string, payload any) (*apiResponse, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.config.BaseURL, c.config.Token.Value(), method)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", scrub.TokenFromError(err, c.config.Token))
	}
	defer resp.Body.Close()

	// Read maxResponseSize+1 to detect overflow without a false positive
	limitedReader := io.LimitReader(resp.Body, maxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if int64(len(body)) > maxResponseSize {
		return nil, tg.ErrResponseTooLarge
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !apiResp.OK {
		// Parse retry_after: JSON body (primary) + HTTP header (fallback)
		retryAfter := parseRetryAfter(&apiResp, resp)
		if retryAfter > 0 {
			return nil, tg.NewAPIErrorWithRetry(method, apiResp.ErrorCode, apiResp.Description, retryAfter)
		}
		return nil, tg.NewAPIError(method, apiResp.ErrorCode, apiResp.Description)
	}

	return &apiResp, nil
}

// callJSON is the unified internal helper for all API calls.
// It wraps executeRequest() and provides consistent JSON decoding.
func (c *Client) callJSON(ctx context.Context, method string, payload any, out any) error {
	resp, err := c.executeRequest(ctx, method, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil // For methods that return bool/void
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("tgcmd: %s: failed to parse response: %w", method, err)
	}
	return nil
}

func withRetry[T any](c *Client, ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		// Non-retryable errors return immediately (not wrapped in ErrMaxRetries)
		if !isRetryable(err) {
			return zero, err
		}

		if attempt >= c.config.MaxRetries {
			break
		}

		backoff := calculateBackoff(c.config, attempt+1, err)

		if err := c.sleeper.Sleep(ctx, backoff); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w: %w", tg.ErrMaxRetries, lastErr)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	// Circuit breaker errors are not retryable
	if errors.Is(err, tg.ErrCircuitOpen) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *tg.APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}

	return false
}

func calculateBackoff(cfg Config, attempt int, err error) time.Duration {
	var apiErr *tg.APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter
	}

	backoff := float64(cfg.RetryBaseWait) * math.Pow(cfg.RetryFactor, float64(attempt-1))
	if backoff > float64(cfg.RetryMaxWait) {
		backoff = float64(cfg.RetryMaxWait)
	}

	// Add jitter
	jitterRange := int64(backoff * 0.2)
	if jitterRange > 0 {
		jitter, err := rand.Int(rand.Reader, big.NewInt(jitterRange*2))
		if err == nil {
			backoff += float64(jitter.Int64()) - float64(jitterRange)
		}
	}

	return time.Duration(backoff)
}

// isBreakerSuccess determines if an error should count as a circuit breaker failure.
// Only server errors (5xx) and network errors trip the breaker.
// Client errors (4xx) including 429 are NOT breaker failures.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *tg.APIError
	if errors.As(err, &apiErr) {
		// 429 is rate pressure, handled via retry_after, not the breaker.
		return apiErr.Code >= 400 && apiErr.Code < 500
	}
	// Context cancellation is not a service failure
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	// Network errors, timeouts trip the breaker
	return false
}

// parseRetryAfter extracts retry_after from JSON body (primary) or HTTP header (fallback).
func parseRetryAfter(apiResp *apiResponse, httpResp *http.Response) time.Duration {
	if apiResp.Parameters != nil && apiResp.Parameters.RetryAfter > 0 {
		return time.Duration(apiResp.Parameters.RetryAfter) * time.Second
	}

	if httpResp != nil {
		if retryHeader := httpResp.Header.Get("Retry-After"); retryHeader != "" {
			if seconds, err := strconv.Atoi(retryHeader); err == nil && seconds > 0 {
				return time.Duration(seconds) * time.Second
			}
		}
	}

	return 0
}
