// Package oddsapi is a read-only client for The Odds API v4 odds endpoint.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Aidan-usc/Game-Line/internal/logger"
)

var log = logger.Named("oddsapi")

// maxErrorBody caps how much of a failed response body is kept in a StatusError.
const maxErrorBody = 4 << 10

// StatusError is returned for non-2xx provider responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("odds api %d: %s", e.StatusCode, e.Body)
}

// ClientConfig holds request parameters and transport tuning.
type ClientConfig struct {
	Regions             string
	Markets             []string
	OddsFormat          string
	DateFormat          string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// Client provides access to the provider odds endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient creates a new odds API client.
func NewClient(baseURL, apiKey string, timeout time.Duration, cfg ClientConfig) *Client {
	if cfg.Regions == "" {
		cfg.Regions = "us"
	}
	if len(cfg.Markets) == 0 {
		cfg.Markets = []string{MarketH2H, MarketTotals}
	}
	if cfg.OddsFormat == "" {
		cfg.OddsFormat = "american"
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = "iso"
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = 10
	}
	if cfg.MaxIdleConnsPerHost <= 0 {
		cfg.MaxIdleConnsPerHost = 2
	}
	if cfg.IdleConnTimeout <= 0 {
		cfg.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		cfg:     cfg,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// FetchOdds retrieves all upcoming events with h2h and totals markets for a
// provider sport key. Non-2xx responses return a *StatusError; nothing is retried.
func (c *Client) FetchOdds(ctx context.Context, providerSportKey string) ([]Event, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("odds api: missing API key")
	}
	u, err := url.Parse(c.baseURL + "/sports/" + url.PathEscape(providerSportKey) + "/odds")
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	q := u.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("regions", c.cfg.Regions)
	q.Set("markets", strings.Join(c.cfg.Markets, ","))
	q.Set("oddsFormat", c.cfg.OddsFormat)
	q.Set("dateFormat", c.cfg.DateFormat)
	u.RawQuery = q.Encode()

	start := time.Now()
	resp, err := c.doRequest(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch odds for %s: %w", providerSportKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode odds for %s: %w", providerSportKey, err)
	}

	quota := quotaFrom(resp.Header)
	log.Info("Fetched %d events for %s in %v (requests remaining: %s, used: %s)",
		len(events), providerSportKey, time.Since(start), quota.Remaining, quota.Used)

	return events, nil
}

func quotaFrom(h http.Header) Quota {
	return Quota{
		Remaining: h.Get("x-requests-remaining"),
		Used:      h.Get("x-requests-used"),
		Last:      h.Get("x-requests-last"),
	}
}

func (c *Client) doRequest(ctx context.Context, urlStr string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}
