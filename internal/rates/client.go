// Package rates reads daily cash exchange rates from the PrivatBank public API.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is one currency's buy/sell price in BaseCurrency units.
type Quote struct {
	Currency     string          `json:"ccy"`
	BaseCurrency string          `json:"base_ccy"`
	Buy          decimal.Decimal `json:"buy"`
	Sell         decimal.Decimal `json:"sale"`
}

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{url: url, httpClient: httpClient}
}

func (c *Client) FetchToday(ctx context.Context) ([]Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates provider returned %s", resp.Status)
	}
	var quotes []Quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	return quotes, nil
}
