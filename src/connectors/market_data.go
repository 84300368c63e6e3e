// REST client for the market data provider.
// RESTY ONLY + INTERNAL RETRY
package connectors

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

const (
	// Default retry configuration
	defaultRetryAttempts   = 5
	defaultRetryBaseDelay  = 500 * time.Millisecond
	defaultRetryMaxBackoff = 8 * time.Second
)

// QuoteSnapshot is one point-in-time quote for a symbol.
type QuoteSnapshot struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	Volume        int64           `json:"volume"`
	AsOf          time.Time       `json:"as_of"`
}

// DailyBar is one daily OHLCV record from the provider.
type DailyBar struct {
	Date          time.Time        `json:"date"`
	Open          decimal.Decimal  `json:"open"`
	High          decimal.Decimal  `json:"high"`
	Low           decimal.Decimal  `json:"low"`
	Close         decimal.Decimal  `json:"close"`
	Volume        int64            `json:"volume"`
	AdjustedClose *decimal.Decimal `json:"adjusted_close,omitempty"`
}

// IndexSnapshot is one point-in-time value for a market index.
type IndexSnapshot struct {
	Symbol        string          `json:"symbol"`
	Value         decimal.Decimal `json:"value"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	AsOf          time.Time       `json:"as_of"`
}

type dailyBarsResponse struct {
	Symbol string     `json:"symbol"`
	Bars   []DailyBar `json:"bars"`
}

// MarketDataClient talks to the quote provider's REST API.
type MarketDataClient struct {
	apiKey  string
	baseURL string
	http    *resty.Client
}

func isRetryableResp(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}

	if r == nil {
		return false
	}

	code := r.StatusCode()

	if code >= 500 && code <= 599 {
		return true
	}
	if code == 429 {
		return true
	}
	if code == 408 {
		return true
	}
	return false
}

func NewMarketDataClient(cfg Config) *MarketDataClient {
	retryCount := defaultRetryAttempts - 1

	baseURL := cfg.MarketDataBaseURL
	if baseURL == "" {
		baseURL = "https://api.marketdata.test/v1"
		logger.Warnf("No base URL provided, using default: %s", baseURL)
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	return &MarketDataClient{
		apiKey:  cfg.MarketDataAPIKey,
		baseURL: baseURL,
		http:    httpClient,
	}
}

func (c *MarketDataClient) request(ctx context.Context, path string, query map[string]string, out interface{}) error {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(out)

	if c.apiKey != "" {
		req = req.SetHeader("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := req.Get(path)
	if err != nil {
		return err
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

// GetQuote fetches the current quote for one stock symbol.
func (c *MarketDataClient) GetQuote(ctx context.Context, symbol string) (*QuoteSnapshot, error) {
	var snap QuoteSnapshot
	if err := c.request(ctx, "/quote", map[string]string{"symbol": symbol}, &snap); err != nil {
		logger.WithFields(map[string]interface{}{
			"component": "MarketDataClient",
			"symbol":    symbol,
		}).WithError(err).Error("Failed to fetch quote")
		return nil, err
	}
	return &snap, nil
}

// GetDailyBars fetches daily OHLCV bars for a symbol inside [from, to].
func (c *MarketDataClient) GetDailyBars(
	ctx context.Context,
	symbol string,
	from, to time.Time,
) ([]DailyBar, error) {

	var parsed dailyBarsResponse
	query := map[string]string{
		"symbol": symbol,
		"from":   from.UTC().Format("2006-01-02"),
		"to":     to.UTC().Format("2006-01-02"),
	}
	if err := c.request(ctx, "/daily", query, &parsed); err != nil {
		logger.WithFields(map[string]interface{}{
			"component": "MarketDataClient",
			"symbol":    symbol,
		}).WithError(err).Error("Failed to fetch daily bars")
		return nil, err
	}
	return parsed.Bars, nil
}

// GetIndexValue fetches the current value of one market index.
func (c *MarketDataClient) GetIndexValue(ctx context.Context, symbol string) (*IndexSnapshot, error) {
	var snap IndexSnapshot
	if err := c.request(ctx, "/index", map[string]string{"symbol": symbol}, &snap); err != nil {
		logger.WithFields(map[string]interface{}{
			"component": "MarketDataClient",
			"symbol":    symbol,
		}).WithError(err).Error("Failed to fetch index value")
		return nil, err
	}
	return &snap, nil
}
