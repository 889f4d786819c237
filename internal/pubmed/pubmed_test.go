package pubmed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhutchens/citator/internal/citation"
)

const summaryJSON = `{
  "result": {
    "uids": ["32501203"],
    "32501203": {
      "uid": "32501203",
      "title": "Remdesivir for the Treatment of Covid-19.",
      "fulljournalname": "The New England Journal of Medicine",
      "volume": "383",
      "issue": "19",
      "pages": "1813-1826",
      "sortpubdate": "2020/11/05 00:00",
      "authors": [
        {"name": "Beigel JH"},
        {"name": "Tomashek KM"}
      ],
      "articleids": [
        {"idtype": "pubmed", "value": "32501203"},
        {"idtype": "doi", "value": "10.1056/NEJMoa2007764"}
      ]
    }
  }
}`

func newTestServer(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/esearch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("db"); got != "pubmed" {
			t.Errorf("db = %q, want pubmed", got)
		}
		w.Write([]byte(`{"esearchresult": {"idlist": ["32501203"]}}`))
	})
	mux.HandleFunc("/esummary.fcgi", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "32501203" {
			t.Errorf("id = %q, want 32501203", got)
		}
		w.Write([]byte(summaryJSON))
	})
	srv := httptest.NewServer(mux)
	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	return c, srv
}

func TestSearch(t *testing.T) {
	c, srv := newTestServer(t)
	defer srv.Close()

	meta, err := c.Search(context.Background(), "remdesivir covid-19 treatment")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if meta == nil {
		t.Fatal("Search() returned nil metadata")
	}

	if meta.Type != citation.Medical {
		t.Errorf("Type = %v, want %v", meta.Type, citation.Medical)
	}
	if meta.PMID != "32501203" {
		t.Errorf("PMID = %q, want 32501203", meta.PMID)
	}
	if meta.Title != "Remdesivir for the Treatment of Covid-19." {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Journal != "The New England Journal of Medicine" {
		t.Errorf("Journal = %q", meta.Journal)
	}
	if meta.Year != "2020" {
		t.Errorf("Year = %q, want 2020", meta.Year)
	}
	if meta.DOI != "10.1056/NEJMoa2007764" {
		t.Errorf("DOI = %q, want 10.1056/NEJMoa2007764", meta.DOI)
	}
	if meta.URL != "https://pubmed.ncbi.nlm.nih.gov/32501203/" {
		t.Errorf("URL = %q", meta.URL)
	}
	if meta.RawSource != "remdesivir covid-19 treatment" {
		t.Errorf("RawSource = %q, want the original query", meta.RawSource)
	}
	if len(meta.Authors) != 2 || meta.Authors[0] != "Beigel JH" {
		t.Errorf("Authors = %v", meta.Authors)
	}
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"esearchresult": {"idlist": []}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	meta, err := c.Search(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if meta != nil {
		t.Errorf("Search() = %+v, want nil", meta)
	}
}

func TestGetByIDStripsPrefix(t *testing.T) {
	c, srv := newTestServer(t)
	defer srv.Close()

	// esearch must not be hit; the handler asserts the esummary id.
	meta, err := c.GetByID(context.Background(), "PMID: 32501203")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if meta == nil || meta.PMID != "32501203" {
		t.Fatalf("GetByID() = %+v, want PMID 32501203", meta)
	}
}

func TestGetByIDMissingRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": {"uids": []}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	meta, err := c.GetByID(context.Background(), "99999999")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if meta != nil {
		t.Errorf("GetByID() = %+v, want nil for missing record", meta)
	}
}

func TestNormalizePMID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"32501203", "32501203"},
		{"PMID: 32501203", "32501203"},
		{"pubmed:32501203", "32501203"},
		{"  32501203  ", "32501203"},
		{"no digits", ""},
	}

	for _, tt := range tests {
		if got := normalizePMID(tt.in); got != tt.want {
			t.Errorf("normalizePMID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
