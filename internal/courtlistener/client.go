// Package courtlistener queries the CourtListener opinion search API.
// A single lookup walks four query strategies from strict to loose,
// because reporter citations and party names rarely match the index
// verbatim.
package courtlistener

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/engine"
)

const (
	// Name identifies the engine in provenance fields and logs.
	Name = "CourtListener"

	// BaseURL is the CourtListener REST API search endpoint.
	BaseURL = "https://www.courtlistener.com/api/rest/v4/search/"

	// DefaultTimeout keeps a four-strategy walk inside the router's
	// race window.
	DefaultTimeout = 8 * time.Second

	// RateLimit is a conservative budget for the anonymous tier.
	RateLimit = 2.0

	// maxScan is how many hits each strategy inspects.
	maxScan = 5
)

var (
	versusToken = regexp.MustCompile(`(?i)\s+v\.?\s+`)
	nonWord     = regexp.MustCompile(`[^\w\s]`)
)

// commonPlaintiffs are first parties too generic to identify a case.
var commonPlaintiffs = map[string]bool{
	"state":  true,
	"people": true,
	"united": true,
	"states": true,
	"board":  true,
	"city":   true,
	"county": true,
}

// Client is a rate-limited HTTP client for the CourtListener API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the token for authenticated requests.
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

// NewClient creates a new CourtListener client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if key := os.Getenv("COURTLISTENER_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type searchResponse struct {
	Results []opinion `json:"results"`
}

// opinion is the subset of a search hit the mapper reads. Citation
// arrives as a list in v4 and as a scalar in older records, so it
// decodes lazily.
type opinion struct {
	CaseName    string          `json:"caseName"`
	Citation    json.RawMessage `json:"citation"`
	Court       string          `json:"court"`
	DateFiled   string          `json:"dateFiled"`
	AbsoluteURL string          `json:"absolute_url"`
}

// Search resolves a query to the best-matching opinion, walking the
// strategies in order: exact phrase, cleaned terms, fuzzy terms,
// plaintiff fallback. A miss on all four is (nil, nil).
func (c *Client) Search(ctx context.Context, query string) (*citation.Metadata, error) {
	if hit, err := c.trySearch(ctx, `"`+query+`"`); hit != nil || err != nil {
		return c.finish(hit, query, err)
	}

	cleaned := cleanQuery(query)
	if cleaned != query && cleaned != "" {
		if hit, err := c.trySearch(ctx, cleaned); hit != nil || err != nil {
			return c.finish(hit, query, err)
		}
	}

	if fuzzy := makeFuzzy(cleaned); fuzzy != cleaned && fuzzy != "" {
		if hit, err := c.trySearch(ctx, fuzzy); hit != nil || err != nil {
			return c.finish(hit, query, err)
		}
	}

	hit, err := c.plaintiffFallback(ctx, query)
	return c.finish(hit, query, err)
}

func (c *Client) finish(hit *opinion, query string, err error) (*citation.Metadata, error) {
	if err != nil {
		return nil, err
	}
	if hit == nil {
		return nil, nil
	}
	return mapOpinion(hit, query), nil
}

// SearchMultiple returns up to limit distinct opinions for the exact
// phrase query, deduplicated by case name.
func (c *Client) SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error) {
	if limit <= 0 {
		limit = maxScan
	}

	hits, err := c.request(ctx, `"`+query+`"`)
	if err != nil {
		return nil, err
	}

	var results []*citation.Metadata
	seen := make(map[string]bool)
	for i := range hits {
		if len(results) >= limit {
			break
		}
		meta := mapOpinion(&hits[i], query)
		if meta == nil || seen[meta.CaseName] {
			continue
		}
		seen[meta.CaseName] = true
		results = append(results, meta)
	}
	return results, nil
}

// trySearch runs one strategy and returns the first hit that names a
// case.
func (c *Client) trySearch(ctx context.Context, q string) (*opinion, error) {
	hits, err := c.request(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range hits {
		if i >= maxScan {
			break
		}
		if hits[i].CaseName != "" {
			return &hits[i], nil
		}
	}
	return nil, nil
}

// plaintiffFallback searches on the first party alone and accepts a
// hit only when that party appears in the hit's case name.
func (c *Client) plaintiffFallback(ctx context.Context, query string) (*opinion, error) {
	plaintiff, _ := splitParties(query)
	if len(plaintiff) <= 4 || commonPlaintiffs[strings.ToLower(plaintiff)] {
		return nil, nil
	}

	hits, err := c.request(ctx, plaintiff)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(plaintiff)
	for i := range hits {
		if i >= maxScan {
			break
		}
		if strings.Contains(strings.ToLower(hits[i].CaseName), want) {
			return &hits[i], nil
		}
	}
	return nil, nil
}

func (c *Client) request(ctx context.Context, q string) ([]opinion, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{
		"q":        {q},
		"type":     {"o"},
		"order_by": {"score desc"},
		"format":   {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Token "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := engine.CheckStatus(resp.StatusCode, Name); err != nil {
		return nil, err
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", engine.ErrInvalidResponse, err)
	}
	return out.Results, nil
}

// mapOpinion converts a search hit to citation metadata. Hits with no
// case name map to nil.
func mapOpinion(o *opinion, query string) *citation.Metadata {
	if o.CaseName == "" {
		return nil
	}

	m := &citation.Metadata{
		Type:         citation.Legal,
		CaseName:     o.CaseName,
		Citation:     firstCitation(o.Citation),
		Court:        o.Court,
		Jurisdiction: "US",
		SourceEngine: Name,
		RawSource:    query,
	}

	if len(o.DateFiled) >= 4 {
		m.Year = o.DateFiled[:4]
	}
	if o.AbsoluteURL != "" {
		m.URL = "https://www.courtlistener.com" + o.AbsoluteURL
	}

	return m
}

// firstCitation reads a citation field that may be a list or a scalar.
func firstCitation(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 {
			return list[0]
		}
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return ""
}

// cleanQuery strips the versus token and punctuation down to bare
// search terms.
func cleanQuery(query string) string {
	clean := versusToken.ReplaceAllString(query, " ")
	clean = nonWord.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}

// makeFuzzy appends the Solr fuzzy operator to substantive terms.
func makeFuzzy(query string) string {
	terms := strings.Fields(query)
	fuzzy := make([]string, len(terms))
	for i, t := range terms {
		if len(t) > 3 && !allDigits(t) {
			fuzzy[i] = t + "~"
		} else {
			fuzzy[i] = t
		}
	}
	return strings.Join(fuzzy, " ")
}

// splitParties divides a case name at the versus token.
func splitParties(query string) (plaintiff, defendant string) {
	parts := versusToken.Split(query, 2)
	if len(parts) < 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
