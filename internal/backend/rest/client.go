// Package rest reads customers and transactions from the JSON REST service.
package rest

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

	"ledgerview/internal/core"
	applog "ledgerview/internal/log"
)

const (
	CustomersPath    = "/customers"
	TransactionsPath = "/transactions"

	// maxBodyBytes bounds a collection response.
	maxBodyBytes = 32 << 20
)

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: http %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: http %d: %s", e.URL, e.StatusCode, e.Body)
}

// ErrDecode wraps payloads that are not the expected JSON array.
var ErrDecode = errors.New("decode response")

type Client struct {
	base   string
	cli    *http.Client
	logger *applog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(cli *http.Client) Option {
	return func(c *Client) {
		if cli != nil {
			c.cli = cli
		}
	}
}

func WithLogger(logger *applog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a client for the service rooted at baseURL, for example
// http://localhost:5000.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: unsupported scheme %q", baseURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}
	c := &Client{
		base:   strings.TrimRight(u.String(), "/"),
		cli:    &http.Client{Timeout: 10 * time.Second},
		logger: applog.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListCustomers fetches and validates GET {base}/customers.
func (c *Client) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	var out []core.Customer
	if err := c.getJSON(ctx, CustomersPath, &out); err != nil {
		return nil, err
	}
	if err := core.ValidateCustomers(out); err != nil {
		return nil, fmt.Errorf("customers: %w", err)
	}
	return out, nil
}

// ListTransactions fetches and validates GET {base}/transactions.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var out []core.Transaction
	if err := c.getJSON(ctx, TransactionsPath, &out); err != nil {
		return nil, err
	}
	if err := core.ValidateTransactions(out); err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	return out, nil
}

// CloseIdleConnections releases pooled connections on shutdown.
func (c *Client) CloseIdleConnections() {
	c.cli.CloseIdleConnections()
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	target := c.base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", target, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ledgerview/1.0")

	start := time.Now()
	resp, err := c.cli.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &StatusError{URL: target, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w from %s: %v", ErrDecode, target, err)
	}

	c.logger.DebugContext(ctx, "Fetched collection",
		applog.FieldOperation, applog.OpFetch,
		applog.FieldURL, target,
		applog.FieldDuration, time.Since(start).Milliseconds())
	return nil
}
