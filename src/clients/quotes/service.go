package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tradesim/src/config"
	"tradesim/src/utils/requests"

	"github.com/sethvargo/go-retry"
)

var (
	// ErrSymbolNotFound means the provider does not know the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrUnavailable means the provider could not be reached or answered with
	// a server error; the same lookup may succeed on retry.
	ErrUnavailable = errors.New("quote provider unavailable")
)

type QuoteServiceClientI interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

type QuoteServiceClient struct {
	API        *requests.ExternalAPIService
	BaseURL    string
	APIKey     string
	maxRetries uint64
}

// NewClient creates a new instance of QuoteServiceClient
func NewClient(cfg *config.Config) *QuoteServiceClient {
	timeout := time.Duration(cfg.ExternalClients.Quotes.TimeoutSeconds) * time.Second
	return &QuoteServiceClient{
		API:        requests.NewExternalAPIService(timeout),
		BaseURL:    cfg.ExternalClients.Quotes.BaseURL,
		APIKey:     cfg.ExternalClients.Quotes.APIKey,
		maxRetries: uint64(cfg.ExternalClients.Quotes.MaxRetries),
	}
}

// Lookup fetches a live quote for symbol. Unknown symbols return
// ErrSymbolNotFound; transient provider failures are retried with fibonacci
// backoff and surface as ErrUnavailable once retries are exhausted.
func (c *QuoteServiceClient) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrSymbolNotFound
	}

	endpoint := fmt.Sprintf("%s/v1/quote", c.BaseURL)
	params := url.Values{}
	params.Add("symbol", symbol)

	backoff := retry.NewFibonacci(250 * time.Millisecond)
	backoff = retry.WithMaxRetries(c.maxRetries, backoff)

	var quote Quote
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.API.Get(ctx, endpoint, c.APIKey, params)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return ErrSymbolNotFound
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("provider returned %d", resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("provider returned %d", resp.StatusCode)
		}

		responseBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		return json.Unmarshal(responseBody, &quote)
	})
	if err != nil {
		if errors.Is(err, ErrSymbolNotFound) {
			return nil, ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Providers answer 200 with an empty payload for some delisted symbols.
	if quote.Symbol == "" || !quote.Price.IsPositive() {
		return nil, ErrSymbolNotFound
	}
	return &quote, nil
}
