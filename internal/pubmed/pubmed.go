// Package pubmed queries the NCBI eutils API for biomedical citation
// metadata. Lookups are two-step: esearch resolves a query to PMIDs,
// esummary fetches the record.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/engine"
)

const (
	// Name identifies the engine in provenance fields and logs.
	Name = "PubMed"

	// BaseURL is the NCBI eutils base URL.
	BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RateLimit is 3 requests per second, NCBI's keyless ceiling.
	RateLimit = 3.0

	// AuthRateLimit applies when an API key is configured.
	AuthRateLimit = 10.0
)

// articleBase is where resolved records point readers.
const articleBase = "https://pubmed.ncbi.nlm.nih.gov/"

// Client is a rate-limited HTTP client for the eutils API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the NCBI API key.
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

// NewClient creates a new PubMed client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}

	if key := os.Getenv("NCBI_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	limit := rate.Limit(RateLimit)
	if c.apiKey != "" {
		limit = rate.Limit(AuthRateLimit)
	}
	c.limiter = rate.NewLimiter(limit, 1)

	return c
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// esummaryResponse keys records by PMID, so entries decode lazily.
type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type summary struct {
	UID             string `json:"uid"`
	Title           string `json:"title"`
	FullJournalName string `json:"fulljournalname"`
	Volume          string `json:"volume"`
	Issue           string `json:"issue"`
	Pages           string `json:"pages"`
	SortPubDate     string `json:"sortpubdate"` // "2020/01/15 00:00"
	Authors         []struct {
		Name string `json:"name"`
	} `json:"authors"`
	ArticleIDs []struct {
		IDType string `json:"idtype"`
		Value  string `json:"value"`
	} `json:"articleids"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	params.Set("retmode", "json")
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
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

// Search resolves a free-text query through esearch and fetches the
// top hit's record.
func (c *Client) Search(ctx context.Context, query string) (*citation.Metadata, error) {
	pmids, err := c.esearch(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return nil, nil
	}

	meta, err := c.GetByID(ctx, pmids[0])
	if meta != nil {
		meta.RawSource = query
	}
	return meta, err
}

// SearchMultiple returns up to limit candidate records, best first.
func (c *Client) SearchMultiple(ctx context.Context, query string, limit int) ([]*citation.Metadata, error) {
	if limit <= 0 {
		limit = 5
	}
	pmids, err := c.esearch(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return nil, nil
	}

	resp, err := c.esummary(ctx, strings.Join(pmids, ","))
	if err != nil {
		return nil, err
	}

	results := make([]*citation.Metadata, 0, len(pmids))
	for _, pmid := range pmids {
		if s := resp.record(pmid); s != nil {
			meta := mapSummary(s, pmid)
			meta.RawSource = query
			results = append(results, meta)
		}
	}
	return results, nil
}

// GetByID fetches a record by PMID, straight to esummary. An unknown
// PMID is a clean miss.
func (c *Client) GetByID(ctx context.Context, pmid string) (*citation.Metadata, error) {
	pmid = normalizePMID(pmid)
	if pmid == "" {
		return nil, nil
	}

	resp, err := c.esummary(ctx, pmid)
	if err != nil {
		if engine.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	s := resp.record(pmid)
	if s == nil {
		return nil, nil
	}
	return mapSummary(s, pmid), nil
}

func (c *Client) esearch(ctx context.Context, term string, retmax int) ([]string, error) {
	params := url.Values{
		"db":     {"pubmed"},
		"term":   {term},
		"retmax": {strconv.Itoa(retmax)},
	}
	var resp esearchResponse
	if err := c.get(ctx, "/esearch.fcgi", params, &resp); err != nil {
		return nil, err
	}
	return resp.ESearchResult.IDList, nil
}

func (c *Client) esummary(ctx context.Context, ids string) (*esummaryResponse, error) {
	params := url.Values{
		"db": {"pubmed"},
		"id": {ids},
	}
	var resp esummaryResponse
	if err := c.get(ctx, "/esummary.fcgi", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// record decodes the summary stored under a PMID key, or nil.
func (r *esummaryResponse) record(pmid string) *summary {
	raw, ok := r.Result[pmid]
	if !ok {
		return nil
	}
	var s summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if s.Title == "" && s.UID == "" {
		return nil
	}
	return &s
}

// mapSummary converts an esummary record to citation metadata.
func mapSummary(s *summary, pmid string) *citation.Metadata {
	m := &citation.Metadata{
		Type:         citation.Medical,
		PMID:         pmid,
		Title:        s.Title,
		Journal:      s.FullJournalName,
		Volume:       s.Volume,
		Issue:        s.Issue,
		Pages:        s.Pages,
		URL:          articleBase + pmid + "/",
		SourceEngine: Name,
		RawSource:    pmid,
	}

	if len(s.SortPubDate) >= 4 {
		m.Year = s.SortPubDate[:4]
	}
	for _, a := range s.Authors {
		if a.Name != "" {
			m.Authors = append(m.Authors, a.Name)
		}
	}
	for _, id := range s.ArticleIDs {
		if id.IDType == "doi" && id.Value != "" {
			m.DOI = id.Value
			break
		}
	}

	return m
}

// normalizePMID strips prefixes and punctuation down to the digits.
func normalizePMID(pmid string) string {
	var b strings.Builder
	for _, r := range pmid {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
