// Package pdfref extracts citation identifiers from PDF files, so a
// paper or book on disk can be cited without retyping its reference.
// Extraction is text-based and best-effort: a missing identifier is a
// clean miss, not an error.
package pdfref

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ISBN as printed on a copyright page: optional ISBN-10/13 label, then
// digits with optional separators and a possible trailing X.
var isbnPattern = regexp.MustCompile(`(?i)ISBN(?:-1[03])?:?\s*([0-9][0-9\- ]{8,20}[0-9Xx])`)

const (
	// doiPages bounds the DOI search; journals print it on page one.
	doiPages = 3
	// isbnPages bounds the ISBN search; books print it on the
	// copyright page, a few pages in.
	isbnPages = 8
)

// ExtractDOI extracts a DOI from a PDF file. It searches the first few
// pages and returns "" when none is found.
func ExtractDOI(filePath string) (string, error) {
	text, err := readPages(filePath, doiPages)
	if err != nil {
		return "", err
	}
	return findDOI(text), nil
}

// ExtractISBN extracts an ISBN from a PDF file, hyphens and spaces
// stripped. Returns "" when none is found.
func ExtractISBN(filePath string) (string, error) {
	text, err := readPages(filePath, isbnPages)
	if err != nil {
		return "", err
	}
	return findISBN(text), nil
}

// ExtractTitle attempts to extract the title from a PDF: the first
// substantial line of page one that doesn't look like a running
// header.
func ExtractTitle(filePath string) (string, error) {
	text, err := readPages(filePath, 1)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line, nil
		}
	}
	return "", nil
}

// Query builds a resolution query from a PDF: the DOI when present,
// else the ISBN, else the title heuristic. Returns "" when the file
// yields nothing citable.
func Query(filePath string) (string, error) {
	if doi, err := ExtractDOI(filePath); err != nil {
		return "", err
	} else if doi != "" {
		return doi, nil
	}
	if isbn, err := ExtractISBN(filePath); err != nil {
		return "", err
	} else if isbn != "" {
		return isbn, nil
	}
	return ExtractTitle(filePath)
}

// readPages returns the concatenated text of the first maxPages pages.
func readPages(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// findDOI finds the first valid DOI in text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// findISBN finds the first valid ISBN in text, separators stripped.
func findISBN(text string) string {
	for _, m := range isbnPattern.FindAllStringSubmatch(text, -1) {
		digits := strings.Map(func(r rune) rune {
			switch {
			case r >= '0' && r <= '9', r == 'X', r == 'x':
				return r
			}
			return -1
		}, m[1])
		if len(digits) == 10 || len(digits) == 13 {
			return strings.ToUpper(digits)
		}
	}
	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	if slashIdx == -1 || slashIdx >= len(doi)-1 {
		return false
	}
	return true
}

// isHeaderLine checks if a line is likely a running header or footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "journal") {
		return true
	}
	if strings.Contains(lower, "volume") && strings.Contains(lower, "issue") {
		return true
	}
	if strings.Contains(lower, "copyright") {
		return true
	}
	if strings.Contains(lower, "article") && strings.Contains(lower, "published") {
		return true
	}
	return false
}
