// Package publication defines the canonical publication record shown on the site.
package publication

import (
	"strconv"
	"strings"
	"unicode"
)

// Placeholder values used when a provider record lacks a field.
const (
	UntitledTitle  = "Untitled Publication"
	UnknownYear    = "Unknown Year"
	UnknownVenue   = "Unknown Venue"
	UnknownAuthors = "Unknown Authors"
	UnknownAuthor  = "Unknown"                                    // One authorship with no display name
	AuthorsInPaper = "Author information available in full paper" // ORCID work summaries carry no authors
	PlaceholderURL = "#"
)

// Publication is a provider-independent publication record.
type Publication struct {
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Venue   string `json:"venue"`
	Year    string `json:"year"` // Display text exactly as the provider gave it
	URL     string `json:"url"`
}

// SortYear returns the numeric year used for ordering.
// It reads the leading integer of the trimmed text and returns 0 when there is none,
// so "Unknown Year" sorts after every dated entry.
func SortYear(year string) int {
	s := strings.TrimSpace(year)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// SortYear returns the numeric sort year of p.
func (p Publication) SortYear() int {
	return SortYear(p.Year)
}

// FormatYear converts a numeric year to display text, or UnknownYear for zero.
func FormatYear(year int) string {
	if year == 0 {
		return UnknownYear
	}
	return strconv.Itoa(year)
}

// DOIURL returns the resolver URL for a DOI.
// DOIs already given as URLs (OpenAlex does this) are returned unchanged.
func DOIURL(doi string) string {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return ""
	}
	lower := strings.ToLower(doi)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return doi
	}
	return "https://doi.org/" + strings.TrimPrefix(doi, "doi:")
}

// FirstNonEmpty returns the first non-blank value, or "" if all are blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Or returns value unless it is blank, in which case it returns placeholder.
func Or(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
