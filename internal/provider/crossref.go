package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/matsen/labsite/internal/publication"
)

// CrossrefBaseURL is the Crossref REST API base URL.
const CrossrefBaseURL = "https://api.crossref.org"

// CrossrefRows is the page size requested from Crossref.
const CrossrefRows = 100

// Crossref fetches works whose metadata carries an ORCID iD.
type Crossref struct {
	client  *Client
	baseURL string
}

// NewCrossref creates the Crossref provider. An empty baseURL selects CrossrefBaseURL.
func NewCrossref(client *Client, baseURL string) *Crossref {
	if baseURL == "" {
		baseURL = CrossrefBaseURL
	}
	return &Crossref{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Name returns "crossref".
func (p *Crossref) Name() string { return "crossref" }

// URL returns the filtered works query for an ORCID iD.
func (p *Crossref) URL(orcidID string) string {
	return fmt.Sprintf("%s/works?filter=orcid:%s&rows=%d", p.baseURL, url.QueryEscape(orcidID), CrossrefRows)
}

// Fetch returns message.items normalized.
func (p *Crossref) Fetch(ctx context.Context, orcidID string) ([]publication.Publication, error) {
	var resp crossrefResponse
	if err := p.client.getJSON(ctx, p.URL(orcidID), &resp); err != nil {
		return nil, wrap(p.Name(), err)
	}
	if resp.Message == nil || resp.Message.Items == nil {
		return nil, wrap(p.Name(), fmt.Errorf("%w: missing message.items", ErrDecode))
	}

	items := *resp.Message.Items
	pubs := make([]publication.Publication, 0, len(items))
	for _, item := range items {
		pubs = append(pubs, normalizeCrossref(item))
	}
	return pubs, nil
}

// normalizeCrossref maps one Crossref work to a Publication.
func normalizeCrossref(item crossrefItem) publication.Publication {
	names := make([]string, 0, len(item.Author))
	for _, a := range item.Author {
		name := strings.TrimSpace(string(a.Given) + " " + string(a.Family))
		if name == "" {
			name = strings.TrimSpace(string(a.Name)) // organizational authors
		}
		if name != "" {
			names = append(names, name)
		}
	}

	year := firstDatePart(item.Published.DateParts)
	if year == "" {
		year = firstDatePart(item.Issued.DateParts)
	}

	link := publication.FirstNonEmpty(
		publication.DOIURL(string(item.DOI)),
		string(item.URL),
	)

	return publication.Publication{
		Title:   publication.Or(firstText(item.Title), publication.UntitledTitle),
		Authors: publication.Or(strings.Join(names, ", "), publication.UnknownAuthors),
		Venue: publication.Or(
			publication.FirstNonEmpty(firstText(item.ContainerTitle), string(item.Publisher)),
			publication.UnknownVenue,
		),
		Year: publication.Or(year, publication.UnknownYear),
		URL:  publication.Or(link, publication.PlaceholderURL),
	}
}

// firstDatePart returns the year of a Crossref date-parts value ([[year, month, day]]).
func firstDatePart(parts [][]text) string {
	if len(parts) == 0 || len(parts[0]) == 0 {
		return ""
	}
	return string(parts[0][0])
}

func firstText(values []text) string {
	for _, v := range values {
		if strings.TrimSpace(string(v)) != "" {
			return string(v)
		}
	}
	return ""
}
