package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jpillora/backoff"
	"github.com/raykavin/chartdraw/pkg/core"
)

const httpMaxAttempts = 4

// ClientConfig is the explicit configuration object for the HTTP candle
// client. Every field is visible at the call site; there is no implicit
// global configuration.
type ClientConfig struct {
	BaseURL string
	Headers map[string]string
	Timeout time.Duration
}

// HTTPClient fetches candles from a JSON HTTP endpoint serving
// `GET {base}/candles?pair=&timeframe=&...`. Transient failures are
// retried with exponential backoff.
type HTTPClient struct {
	config ClientConfig
	client *http.Client
}

// RequestOption overrides parts of the client configuration for a
// derived client, leaving the original untouched
type RequestOption func(*ClientConfig)

// WithHeader adds or replaces a request header
func WithHeader(key, value string) RequestOption {
	return func(config *ClientConfig) {
		config.Headers[key] = value
	}
}

// WithTimeout replaces the request timeout
func WithTimeout(timeout time.Duration) RequestOption {
	return func(config *ClientConfig) {
		config.Timeout = timeout
	}
}

// NewHTTPClient creates a candle client for the given endpoint
func NewHTTPClient(config ClientConfig) *HTTPClient {
	if config.Headers == nil {
		config.Headers = make(map[string]string)
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &HTTPClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Request returns a derived client with per-call overrides applied on
// top of the base configuration
func (c *HTTPClient) Request(options ...RequestOption) *HTTPClient {
	config := ClientConfig{
		BaseURL: c.config.BaseURL,
		Headers: make(map[string]string, len(c.config.Headers)),
		Timeout: c.config.Timeout,
	}
	for key, value := range c.config.Headers {
		config.Headers[key] = value
	}

	for _, option := range options {
		option(&config)
	}

	return NewHTTPClient(config)
}

// candlePayload is the wire representation, time as unix seconds
type candlePayload struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Volume float64 `json:"volume"`
}

// CandlesByLimit fetches the trailing candle window for a pair
func (c *HTTPClient) CandlesByLimit(ctx context.Context, pair, timeframe string, limit int) ([]core.Candle, error) {
	query := url.Values{}
	query.Set("pair", pair)
	query.Set("timeframe", timeframe)
	query.Set("limit", strconv.Itoa(limit))

	return c.fetch(ctx, pair, query)
}

// CandlesByPeriod fetches candles for a pair within a time range
func (c *HTTPClient) CandlesByPeriod(ctx context.Context, pair, timeframe string, start, end time.Time) ([]core.Candle, error) {
	query := url.Values{}
	query.Set("pair", pair)
	query.Set("timeframe", timeframe)
	query.Set("start", strconv.FormatInt(start.Unix(), 10))
	query.Set("end", strconv.FormatInt(end.Unix(), 10))

	return c.fetch(ctx, pair, query)
}

// fetch performs the request with retry on transient failures
func (c *HTTPClient) fetch(ctx context.Context, pair string, query url.Values) ([]core.Candle, error) {
	endpoint := fmt.Sprintf("%s/candles?%s", c.config.BaseURL, query.Encode())

	retry := &backoff.Backoff{
		Min: 100 * time.Millisecond,
		Max: 2 * time.Second,
	}

	var lastErr error
	for attempt := 0; attempt < httpMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retry.Duration()):
			}
		}

		payload, retryable, err := c.do(ctx, endpoint)
		if err == nil {
			return convertPayload(pair, payload), nil
		}

		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, fmt.Errorf("candle request failed: %w", lastErr)
}

// do performs a single request; the second result reports whether the
// failure is worth retrying
func (c *HTTPClient) do(ctx context.Context, endpoint string) ([]candlePayload, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}

	for key, value := range c.config.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("server error: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var payload []candlePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode candles: %w", err)
	}

	return payload, false, nil
}

func convertPayload(pair string, payload []candlePayload) []core.Candle {
	candles := make([]core.Candle, 0, len(payload))
	for _, p := range payload {
		candles = append(candles, core.Candle{
			Pair:   pair,
			Time:   time.Unix(p.Time, 0).UTC(),
			Open:   p.Open,
			Close:  p.Close,
			Low:    p.Low,
			High:   p.High,
			Volume: p.Volume,
		})
	}
	return candles
}
