// Package openalex queries the OpenAlex works API. It is raced
// against Crossref and Semantic Scholar for journal lookups.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/engine"
)

const (
	// Name identifies the engine in provenance fields and logs.
	Name = "OpenAlex"

	// BaseURL is the OpenAlex API base URL.
	BaseURL = "https://api.openalex.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit is 10 requests per second per OpenAlex documentation.
	RateLimit = 10.0

	// DefaultPerPage is how many works a search requests.
	DefaultPerPage = 5
)

// Client is a rate-limited HTTP client for the OpenAlex works API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
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

// NewClient creates a new OpenAlex client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type worksResponse struct {
	Results []work `json:"results"`
}

type work struct {
	Title           string `json:"title"`
	DisplayName     string `json:"display_name"`
	PublicationYear int    `json:"publication_year"`
	DOI             string `json:"doi"` // resolver form: https://doi.org/10.x/y
	Authorships     []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
	PrimaryLocation struct {
		Source struct {
			DisplayName string `json:"display_name"`
		} `json:"source"`
	} `json:"primary_location"`
	Biblio struct {
		Volume    string `json:"volume"`
		Issue     string `json:"issue"`
		FirstPage string `json:"first_page"`
		LastPage  string `json:"last_page"`
	} `json:"biblio"`
}

func (c *Client) search(ctx context.Context, query string, perPage int) (*worksResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{
		"search":   {query},
		"per-page": {strconv.Itoa(perPage)},
	}
	u := c.baseURL + "/works?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := engine.CheckStatus(resp.StatusCode, Name); err != nil {
		return nil, err
	}

	var out worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", engine.ErrInvalidResponse, err)
	}
	return &out, nil
}

// Search finds the best-matching work for a free-text query.
func (c *Client) Search(ctx context.Context, query string) (*citation.Metadata, error) {
	resp, err := c.search(ctx, query, DefaultPerPage)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return mapWork(&resp.Results[0], query), nil
}

// SearchMultiple returns up to limit candidate works, best first.
func (c *Client) SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error) {
	if limit <= 0 {
		limit = DefaultPerPage
	}
	resp, err := c.search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]*citation.Metadata, 0, len(resp.Results))
	for i := range resp.Results {
		results = append(results, mapWork(&resp.Results[i], query))
	}
	return results, nil
}

// mapWork converts an OpenAlex work record to citation metadata.
func mapWork(w *work, query string) *citation.Metadata {
	m := &citation.Metadata{
		Type:         citation.Journal,
		DOI:          citation.NormalizeDOI(w.DOI),
		URL:          w.DOI,
		Journal:      w.PrimaryLocation.Source.DisplayName,
		Volume:       w.Biblio.Volume,
		Issue:        w.Biblio.Issue,
		SourceEngine: Name,
		RawSource:    query,
	}

	m.Title = w.Title
	if m.Title == "" {
		m.Title = w.DisplayName
	}
	if w.PublicationYear != 0 {
		m.Year = strconv.Itoa(w.PublicationYear)
	}

	for _, a := range w.Authorships {
		if name := a.Author.DisplayName; name != "" {
			m.Authors = append(m.Authors, name)
		}
	}

	if w.Biblio.FirstPage != "" {
		m.Pages = w.Biblio.FirstPage
		if w.Biblio.LastPage != "" && w.Biblio.LastPage != w.Biblio.FirstPage {
			m.Pages += "-" + w.Biblio.LastPage
		}
	}

	return m
}
