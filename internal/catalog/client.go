package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ListingsPath is the backend route serving the product catalog.
const ListingsPath = "/customer/getProductListings"

// ProductFetcher defines the interface for fetching the product catalog.
// This interface is implemented by *Client and can be replaced in tests.
type ProductFetcher interface {
	FetchProductListings(ctx context.Context, token string) ([]Product, error)
}

// Ensure Client implements ProductFetcher at compile time.
var _ ProductFetcher = (*Client)(nil)

// Client talks to the storefront backend over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBackendURL = "http://127.0.0.1:5000"
	defaultUserAgent  = "farmstand/0.1"
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given backend base URL.
//
// The default http.Client carries no timeout: a listing request is a single
// best-effort attempt and is only abandoned when ctx is cancelled.
func NewClient(backendURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(backendURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised backend URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchProductListings retrieves the full product catalog on behalf of the
// bearer token.
func (c *Client) FetchProductListings(ctx context.Context, token string) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}
	var payload []Product
	if err := c.do(ctx, http.MethodGet, ListingsPath, token, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []Product{}
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, dest any) error {
	rel := &url.URL{Path: strings.TrimPrefix(path, "/")}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("execute request %s: %w", requestID, err)
		}
		return &TransportError{RequestID: requestID, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: path, Code: resp.StatusCode, RequestID: requestID}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &DecodeError{RequestID: requestID, Err: err}
	}
	return nil
}

// parseBaseURL keeps the path of the configured URL so the backend may be
// mounted under a prefix, but always ends it with a slash so relative
// resolution appends instead of replacing the last segment.
func parseBaseURL(backendURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(backendURL)
	if trimmed == "" {
		trimmed = defaultBackendURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend_url %q: %w", backendURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse backend_url %q: missing host", backendURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
