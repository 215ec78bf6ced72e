// Package api is the HTTP client for the platform REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks JSON to the platform API.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	log     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests inject a
// transport that serves the fixture app in-process).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l.Named("api") }
}

// New creates a client for baseURL. timeout bounds every request.
func New(baseURL, token string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: u,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches one page of resource. The query is sent as q and omitted when
// blank.
func List[E any](ctx context.Context, c *Client, resource string, p ListParams) (Page[E], error) {
	if p.Page < 1 || p.Limit < 1 {
		return Page[E]{}, fmt.Errorf("%w: page=%d limit=%d", ErrInvalidParams, p.Page, p.Limit)
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	if query := strings.TrimSpace(p.Query); query != "" {
		q.Set("q", query)
	}

	var page Page[E]
	if err := c.do(ctx, http.MethodGet, "/"+resource, q, nil, &page); err != nil {
		return Page[E]{}, fmt.Errorf("listing %s: %w", resource, err)
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return page, nil
}

// CreateCoupon posts a new coupon and returns the stored record.
func (c *Client) CreateCoupon(ctx context.Context, in CouponInput) (Coupon, error) {
	var out Coupon
	if err := c.do(ctx, http.MethodPost, "/"+ResourceCoupons, nil, in, &out); err != nil {
		return Coupon{}, fmt.Errorf("creating coupon: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("url", u.String()), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
