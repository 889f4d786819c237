package citation

// Metadata is the resolved-citation record. Fields are optional by
// default; which ones are populated depends on Type. A record must pass
// HasMinimumData before it may be formatted, cached, or admitted to
// citation history.
type Metadata struct {
	Type Type `json:"type"`

	// Identity
	DOI             string `json:"doi,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	PMID            string `json:"pmid,omitempty"`
	URL             string `json:"url,omitempty"`
	CaseName        string `json:"case_name,omitempty"`
	Citation        string `json:"citation,omitempty"`
	NeutralCitation string `json:"neutral_citation,omitempty"`

	// Descriptive
	Title          string   `json:"title,omitempty"`
	Authors        []string `json:"authors,omitempty"` // display names, in order
	Year           string   `json:"year,omitempty"`
	Date           string   `json:"date,omitempty"` // fuller date when known
	Publisher      string   `json:"publisher,omitempty"`
	Place          string   `json:"place,omitempty"`
	Edition        string   `json:"edition,omitempty"`
	Journal        string   `json:"journal,omitempty"`
	Volume         string   `json:"volume,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Pages          string   `json:"pages,omitempty"`
	Court          string   `json:"court,omitempty"`
	Jurisdiction   string   `json:"jurisdiction,omitempty"`
	Agency         string   `json:"agency,omitempty"`
	DocumentNumber string   `json:"document_number,omitempty"`
	Newspaper      string   `json:"newspaper,omitempty"`
	Interviewee    string   `json:"interviewee,omitempty"`
	Interviewer    string   `json:"interviewer,omitempty"`
	Sender         string   `json:"sender,omitempty"`
	Recipient      string   `json:"recipient,omitempty"`
	Location       string   `json:"location,omitempty"`

	// Provenance
	SourceEngine string  `json:"source_engine,omitempty"` // which collaborator produced this
	RawSource    string  `json:"raw_source,omitempty"`    // original query text
	Confidence   float64 `json:"confidence,omitempty"`

	// Free-form payload kept for debugging and audit.
	RawData map[string]any `json:"raw_data,omitempty"`
}

// HasMinimumData reports whether the record carries the minimum field
// set for its type. Records failing this gate are treated as "not
// found" everywhere downstream.
func (m *Metadata) HasMinimumData() bool {
	if m == nil {
		return false
	}
	switch m.Type {
	case Legal:
		return m.CaseName != "" || m.Citation != ""
	case Interview:
		return m.Interviewee != "" || m.Title != ""
	case Letter:
		return m.Sender != "" || m.Title != ""
	default:
		return m.Title != ""
	}
}

// FirstAuthor returns the first listed author, or "" when none.
func (m *Metadata) FirstAuthor() string {
	if m == nil || len(m.Authors) == 0 {
		return ""
	}
	return m.Authors[0]
}
