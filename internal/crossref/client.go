// Package crossref queries the Crossref works API for journal and
// book metadata.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/engine"
)

const (
	// Name identifies the engine in provenance fields and logs.
	Name = "Crossref"

	// BaseURL is the Crossref REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit is 10 requests per second, the polite-pool ceiling.
	RateLimit = 10.0

	// DefaultRows is how many works a search requests.
	DefaultRows = 5
)

// Client is a rate-limited HTTP client for the Crossref works API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithMailto sets the contact address sent with every request, which
// routes traffic into Crossref's polite pool.
func WithMailto(addr string) ClientOption {
	return func(c *Client) {
		c.mailto = addr
	}
}

// NewClient creates a new Crossref client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if addr := os.Getenv("CROSSREF_MAILTO"); addr != "" {
		c.mailto = addr
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a rate-limited GET against path and decodes the JSON
// body into out. params must be non-nil.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if c.mailto != "" {
		params.Set("mailto", c.mailto)
	}
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := engine.CheckStatus(resp.StatusCode, Name); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", engine.ErrInvalidResponse, err)
	}
	return nil
}

// Search finds the best-matching work for a free-text query.
func (c *Client) Search(ctx context.Context, query string) (*citation.Metadata, error) {
	params := url.Values{
		"query": {query},
		"rows":  {strconv.Itoa(DefaultRows)},
	}

	var resp worksResponse
	if err := c.get(ctx, "/works", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Message.Items) == 0 {
		return nil, nil
	}
	return mapWork(&resp.Message.Items[0], query), nil
}

// SearchMultiple returns up to limit candidate works, best first.
func (c *Client) SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error) {
	if limit <= 0 {
		limit = DefaultRows
	}
	params := url.Values{
		"query": {query},
		"rows":  {strconv.Itoa(limit)},
	}

	var resp worksResponse
	if err := c.get(ctx, "/works", params, &resp); err != nil {
		return nil, err
	}

	results := make([]*citation.Metadata, 0, len(resp.Message.Items))
	for i := range resp.Message.Items {
		results = append(results, mapWork(&resp.Message.Items[i], query))
	}
	return results, nil
}

// GetByID fetches a single work by DOI. An unknown DOI is a clean
// miss, not an error, so the router can fall back to searching.
func (c *Client) GetByID(ctx context.Context, doi string) (*citation.Metadata, error) {
	doi = citation.NormalizeDOI(doi)
	if doi == "" {
		return nil, nil
	}

	var resp workResponse
	if err := c.get(ctx, "/works/"+doi, url.Values{}, &resp); err != nil {
		if engine.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return mapWork(&resp.Message, doi), nil
}
