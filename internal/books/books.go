// Package books resolves book citations through three catalogs:
// Google Books for fuzzy text searches, Open Library for precise ISBN
// lookups, and the Library of Congress for US and historical works.
// All three share one transport core and the publisher place table.
package books

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/mhutchens/citator/internal/engine"
)

// DefaultTimeout is the default HTTP request timeout for book APIs.
const DefaultTimeout = 8 * time.Second

// core carries the transport shared by every book client.
type core struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a book client's transport.
type ClientOption func(*core)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *core) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *core) {
		c.baseURL = u
	}
}

func newCore(base string, rps float64, opts []ClientOption) core {
	c := core{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		baseURL:    base,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// getJSON performs a rate-limited GET and decodes the body into out.
func (c *core) getJSON(ctx context.Context, name, u string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := engine.CheckStatus(resp.StatusCode, name); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", engine.ErrInvalidResponse, err)
	}
	return nil
}

// cleanISBN strips an ISBN down to digits and the X check character.
func cleanISBN(isbn string) string {
	var b []byte
	for i := 0; i < len(isbn); i++ {
		ch := isbn[i]
		switch {
		case ch >= '0' && ch <= '9':
			b = append(b, ch)
		case ch == 'X' || ch == 'x':
			b = append(b, 'X')
		}
	}
	return string(b)
}
