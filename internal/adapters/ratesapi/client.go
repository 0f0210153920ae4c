// Package ratesapi provides the external exchange rate provider used to
// refresh the rate table. Fetched rates are stored as approved api-sourced
// rows; conversions only ever read the stored table, never this client.
package ratesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
)

const providerName = "exchangerate-api"

// Client talks to the ExchangeRate-API "latest" endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New constructs a rate API client. baseURL may be empty to use the public
// endpoint.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://v6.exchangerate-api.com/v6"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

var _ portssvc.RateProvider = (*Client)(nil)

// Name identifies the provider in stored rate rows.
func (c *Client) Name() string {
	return providerName
}

// FetchLatestRates loads current conversion rates from the base currency to
// every currency the provider publishes.
func (c *Client) FetchLatestRates(ctx context.Context, baseCurrencyCode string) (map[string]decimal.Decimal, error) {
	type response struct {
		Result          string                     `json:"result"`
		ErrorType       string                     `json:"error-type"`
		BaseCode        string                     `json:"base_code"`
		ConversionRates map[string]json.RawMessage `json:"conversion_rates"`
	}

	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, baseCurrencyCode)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building rate request: %w", err)
	}
	httpResponse, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}
	defer httpResponse.Body.Close()

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading rate response: %w", err)
	}
	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", httpResponse.StatusCode)
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding rate response: %w", err)
	}
	if resp.Result != "success" {
		return nil, fmt.Errorf("rate provider error: %s", resp.ErrorType)
	}

	rates := make(map[string]decimal.Decimal, len(resp.ConversionRates))
	for code, raw := range resp.ConversionRates {
		// Rates arrive as JSON numbers; parse via string to avoid float64
		// round-tripping.
		rate, err := decimal.NewFromString(string(raw))
		if err != nil {
			return nil, fmt.Errorf("bad rate value for %s: %w", code, err)
		}
		rates[code] = rate
	}
	return rates, nil
}
