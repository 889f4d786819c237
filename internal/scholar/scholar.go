// Package scholar queries the Semantic Scholar Graph API.
package scholar

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
	Name = "Semantic Scholar"

	// BaseURL is the Semantic Scholar Graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit is the shared unauthenticated budget.
	RateLimit = 1.0

	// AuthRateLimit applies when an API key is configured.
	AuthRateLimit = 10.0

	// DefaultFields are the paper fields requested on every lookup.
	DefaultFields = "title,authors,year,venue,journal,externalIds,url"

	// DefaultSearchLimit is how many papers a search requests.
	DefaultSearchLimit = 5
)

// Client is a rate-limited HTTP client for the Semantic Scholar API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

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

// NewClient creates a new Semantic Scholar client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}

	if key := os.Getenv("S2_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	// Authenticated keys get a per-key budget instead of the shared pool.
	limit := rate.Limit(RateLimit)
	if c.apiKey != "" {
		limit = rate.Limit(AuthRateLimit)
	}
	c.limiter = rate.NewLimiter(limit, 1)

	return c
}

type searchResponse struct {
	Total int     `json:"total"`
	Data  []paper `json:"data"`
}

type paper struct {
	PaperID string `json:"paperId"`
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Venue   string `json:"venue"`
	URL     string `json:"url"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	ExternalIDs struct {
		DOI    string `json:"DOI"`
		PubMed string `json:"PubMed"`
	} `json:"externalIds"`
	Journal struct {
		Name   string `json:"name"`
		Volume string `json:"volume"`
		Pages  string `json:"pages"`
	} `json:"journal"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

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

// Search finds the best-matching paper for a free-text query.
func (c *Client) Search(ctx context.Context, query string) (*citation.Metadata, error) {
	params := url.Values{
		"query":  {query},
		"fields": {DefaultFields},
		"limit":  {strconv.Itoa(DefaultSearchLimit)},
	}

	var resp searchResponse
	if err := c.get(ctx, "/paper/search", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return mapPaper(&resp.Data[0], query), nil
}

// SearchMultiple returns up to limit candidate papers, best first.
func (c *Client) SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	params := url.Values{
		"query":  {query},
		"fields": {DefaultFields},
		"limit":  {strconv.Itoa(limit)},
	}

	var resp searchResponse
	if err := c.get(ctx, "/paper/search", params, &resp); err != nil {
		return nil, err
	}

	results := make([]*citation.Metadata, 0, len(resp.Data))
	for i := range resp.Data {
		results = append(results, mapPaper(&resp.Data[i], query))
	}
	return results, nil
}

// GetByID fetches a single paper by DOI. An unknown DOI is a clean
// miss so the router can fall back to searching.
func (c *Client) GetByID(ctx context.Context, doi string) (*citation.Metadata, error) {
	doi = citation.NormalizeDOI(doi)
	if doi == "" {
		return nil, nil
	}

	params := url.Values{"fields": {DefaultFields}}

	var p paper
	if err := c.get(ctx, "/paper/DOI:"+doi, params, &p); err != nil {
		if engine.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if p.PaperID == "" {
		return nil, nil
	}
	return mapPaper(&p, doi), nil
}

// mapPaper converts a Semantic Scholar paper record to citation
// metadata.
func mapPaper(p *paper, query string) *citation.Metadata {
	m := &citation.Metadata{
		Type:         citation.Journal,
		Title:        p.Title,
		DOI:          p.ExternalIDs.DOI,
		PMID:         p.ExternalIDs.PubMed,
		URL:          p.URL,
		Journal:      p.Journal.Name,
		Volume:       p.Journal.Volume,
		Pages:        p.Journal.Pages,
		SourceEngine: Name,
		RawSource:    query,
	}

	if m.Journal == "" {
		m.Journal = p.Venue
	}
	if p.Year != 0 {
		m.Year = strconv.Itoa(p.Year)
	}
	for _, a := range p.Authors {
		if a.Name != "" {
			m.Authors = append(m.Authors, a.Name)
		}
	}

	return m
}
