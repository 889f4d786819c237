package crossref

// worksResponse is the envelope for /works list queries.
type worksResponse struct {
	Message struct {
		Items []Work `json:"items"`
	} `json:"message"`
}

// workResponse is the envelope for a single-work lookup.
type workResponse struct {
	Message Work `json:"message"`
}

// Work is the subset of a Crossref work record the mapper reads.
type Work struct {
	DOI            string       `json:"DOI"`
	Type           string       `json:"type"`
	Title          []string     `json:"title"`
	ContainerTitle []string     `json:"container-title"`
	Author         []workAuthor `json:"author"`
	Issued         partedDate   `json:"issued"`
	Volume         string       `json:"volume"`
	Issue          string       `json:"issue"`
	Page           string       `json:"page"`
	Publisher      string       `json:"publisher"`
	ISBN           []string     `json:"ISBN"`
	URL            string       `json:"URL"`
}

type workAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"` // organizations carry a bare name
}

type partedDate struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the first date part, or 0 when absent.
func (d partedDate) Year() int {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}
