package fxprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"

	"github.com/remitbase/settlement/internal/entity"
)

const (
	defaultRetryMax     = 2
	defaultRetryWaitMax = time.Second * 2
	defaultTimeout      = time.Second * 3
)

// Client fetches mid-market rates from an external FX provider. The provider
// quotes a pair for a date; a 404 means the pair is not quoted at all.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = defaultRetryMax
	retryClient.RetryWaitMin = time.Second
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = defaultTimeout

	retryClient.Logger = nil

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    retryClient.StandardClient(),
	}
}

type RateResponse struct {
	Pair string          `json:"pair"`
	Rate decimal.Decimal `json:"rate"`
	Date string          `json:"date"`
}

func (c *Client) Rate(ctx context.Context, pair entity.CurrencyPair, at time.Time) (decimal.Decimal, error) {
	if err := pair.Validate(); err != nil {
		return decimal.Decimal{}, err
	}

	q := url.Values{}
	q.Set("pair", pair.String())
	q.Set("date", at.UTC().Format(time.DateOnly))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/rates?"+q.Encode(), nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("do request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return decimal.Decimal{}, fmt.Errorf("%w: no quote for %s", entity.ErrUnsupportedCurrency, pair)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return decimal.Decimal{}, fmt.Errorf("unexpected status code: %d\nbody: %s", resp.StatusCode, body)
	}

	var data RateResponse

	err = json.NewDecoder(resp.Body).Decode(&data)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode response: %w", err)
	}

	if !data.Rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("provider returned non-positive rate %s for %s", data.Rate, pair)
	}

	return data.Rate, nil
}
