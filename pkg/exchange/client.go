package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"go.uber.org/zap"
)

// maxResponseBytes bounds how much of a rate response is read.
const maxResponseBytes = 1 << 20

type ratesResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Base     string             `json:"base"`
	Rates    map[string]float64 `json:"rates"`
}

// Client fetches rate tables from an HTTP endpoint queried as GET {apiURL}?base=CODE.
type Client struct {
	apiURL     string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient creates a rate client. An empty apiURL or non-positive timeout uses the defaults.
func NewClient(apiURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = constants.DefaultExchangeAPIURL
	}
	if timeout <= 0 {
		timeout = constants.DefaultExchangeTimeout
	}
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

// Fetch retrieves the rate table for base. Transport failures, non-2xx responses and
// bodies without a rates object all wrap ErrRatesUnavailable.
func (c *Client) Fetch(ctx context.Context, base string) (RateTable, error) {
	base = NormalizeCode(base)
	if base == "" {
		return RateTable{}, fmt.Errorf("%w: empty base currency", ErrRatesUnavailable)
	}

	endpoint, err := url.Parse(c.apiURL)
	if err != nil {
		return RateTable{}, fmt.Errorf("%w: invalid api url %q: %v", ErrRatesUnavailable, c.apiURL, err)
	}
	query := endpoint.Query()
	query.Set("base", base)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return RateTable{}, fmt.Errorf("%w: %v", ErrRatesUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RateTable{}, fmt.Errorf("%w: %w", ErrRatesUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close rate response body",
				zap.String("op", "exchange.Fetch"),
				zap.Error(closeErr),
			)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return RateTable{}, fmt.Errorf("%w: rate source returned status %d", ErrRatesUnavailable, resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return RateTable{}, fmt.Errorf("%w: malformed response: %v", ErrRatesUnavailable, err)
	}
	if strings.EqualFold(payload.Result, "error") {
		return RateTable{}, fmt.Errorf("%w: rate source reported an error", ErrRatesUnavailable)
	}
	if len(payload.Rates) == 0 {
		return RateTable{}, fmt.Errorf("%w: response has no rates", ErrRatesUnavailable)
	}
	reported := payload.BaseCode
	if reported == "" {
		reported = payload.Base
	}
	if reported != "" && NormalizeCode(reported) != base {
		return RateTable{}, fmt.Errorf("%w: requested base %s but received %s", ErrRatesUnavailable, base, reported)
	}

	table := RateTable{Base: base, Rates: payload.Rates, FetchedAt: c.now()}

	c.logger.Debug("fetched exchange rates",
		zap.String("op", "exchange.Fetch"),
		zap.String("base", base),
		zap.Int("rates", len(table.Rates)),
		zap.Duration("duration", c.now().Sub(start)),
	)

	return table, nil
}
