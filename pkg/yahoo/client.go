// Package yahoo is the structured market-data provider: descriptive info and
// the earnings calendar from quoteSummary, the earnings-dates page for a
// symbol, and daily closes from the chart API.
package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"earnscan/pkg/market"
)

const (
	DefaultQuoteURL = "https://query2.finance.yahoo.com"
	DefaultChartURL = "https://query1.finance.yahoo.com"
	DefaultSiteURL  = "https://finance.yahoo.com"
	DefaultTimeout  = 30 * time.Second

	// DesktopUserAgent is sent on every request; the site serves reduced
	// pages to unknown agents.
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client talks to the Yahoo Finance endpoints. It satisfies market.Provider.
type Client struct {
	quoteURL   string
	chartURL   string
	siteURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

var _ market.Provider = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithBaseURLs overrides the quoteSummary, chart and website hosts. Empty
// values keep the defaults.
func WithBaseURLs(quote, chart, site string) Option {
	return func(c *Client) {
		if quote != "" {
			c.quoteURL = quote
		}
		if chart != "" {
			c.chartURL = chart
		}
		if site != "" {
			c.siteURL = site
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithClock replaces time.Now, used for the chart lookback window.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		quoteURL:   DefaultQuoteURL,
		chartURL:   DefaultChartURL,
		siteURL:    DefaultSiteURL,
		userAgent:  DesktopUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fetch performs a GET and returns the body of a 200 response.
func (c *Client) fetch(ctx context.Context, symbol, op, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, market.NewFetchError(market.NetworkFailure, symbol, op, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	c.logger.Debug("yahoo request", zap.String("op", op), zap.String("symbol", symbol), zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, market.NewFetchError(market.NetworkFailure, symbol, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, market.NewFetchError(market.NetworkFailure, symbol, op,
			&market.StatusError{StatusCode: resp.StatusCode, URL: url})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, market.NewFetchError(market.NetworkFailure, symbol, op, err)
	}
	return body, nil
}

// getJSON decodes a JSON response into out. A body that does not decode gets
// one pass through jsonrepair before being reported as a parse failure.
func (c *Client) getJSON(ctx context.Context, symbol, op, url string, out any) error {
	body, err := c.fetch(ctx, symbol, op, url, "application/json")
	if err != nil {
		return err
	}

	decodeErr := json.Unmarshal(body, out)
	if decodeErr == nil {
		return nil
	}
	c.logger.Debug("repairing provider json", zap.String("symbol", symbol), zap.String("op", op), zap.Error(decodeErr))

	repaired, err := jsonrepair.JSONRepair(string(body))
	if err != nil {
		return market.NewFetchError(market.ParseFailure, symbol, op, err)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return market.NewFetchError(market.ParseFailure, symbol, op, fmt.Errorf("decode repaired body: %w", err))
	}
	return nil
}

// getHTML parses an HTML response.
func (c *Client) getHTML(ctx context.Context, symbol, op, url string) (*goquery.Document, error) {
	body, err := c.fetch(ctx, symbol, op, url, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, market.NewFetchError(market.ParseFailure, symbol, op, err)
	}
	return doc, nil
}
