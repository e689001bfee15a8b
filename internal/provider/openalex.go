package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/matsen/labsite/internal/publication"
)

// OpenAlexBaseURL is the OpenAlex API base URL.
const OpenAlexBaseURL = "https://api.openalex.org"

// OpenAlex fetches works attributed to an author's ORCID iD.
type OpenAlex struct {
	client  *Client
	baseURL string
}

// NewOpenAlex creates the OpenAlex provider. An empty baseURL selects OpenAlexBaseURL.
func NewOpenAlex(client *Client, baseURL string) *OpenAlex {
	if baseURL == "" {
		baseURL = OpenAlexBaseURL
	}
	return &OpenAlex{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Name returns "openalex".
func (p *OpenAlex) Name() string { return "openalex" }

// URL returns the filtered works query for an ORCID iD.
func (p *OpenAlex) URL(orcidID string) string {
	return fmt.Sprintf("%s/works?filter=author.orcid:%s", p.baseURL, url.QueryEscape(orcidID))
}

// Fetch returns results normalized.
func (p *OpenAlex) Fetch(ctx context.Context, orcidID string) ([]publication.Publication, error) {
	var resp openAlexResponse
	if err := p.client.getJSON(ctx, p.URL(orcidID), &resp); err != nil {
		return nil, wrap(p.Name(), err)
	}
	if resp.Results == nil {
		return nil, wrap(p.Name(), fmt.Errorf("%w: missing results", ErrDecode))
	}

	works := *resp.Results
	pubs := make([]publication.Publication, 0, len(works))
	for _, w := range works {
		pubs = append(pubs, normalizeOpenAlex(w))
	}
	return pubs, nil
}

// normalizeOpenAlex maps one OpenAlex work to a Publication.
// host_venue was replaced by primary_location.source in newer OpenAlex responses; both are read.
func normalizeOpenAlex(w openAlexWork) publication.Publication {
	names := make([]string, 0, len(w.Authorships))
	for _, a := range w.Authorships {
		names = append(names, publication.Or(string(a.Author.DisplayName), publication.UnknownAuthor))
	}

	link := publication.FirstNonEmpty(
		publication.DOIURL(string(w.DOI)),
		string(w.URL),
		string(w.ID),
	)

	return publication.Publication{
		Title:   publication.Or(publication.FirstNonEmpty(string(w.Title), string(w.DisplayName)), publication.UntitledTitle),
		Authors: publication.Or(strings.Join(names, ", "), publication.UnknownAuthors),
		Venue: publication.Or(
			publication.FirstNonEmpty(string(w.HostVenue.DisplayName), string(w.PrimaryLocation.Source.DisplayName)),
			publication.UnknownVenue,
		),
		Year: publication.Or(string(w.PublicationYear), publication.UnknownYear),
		URL:  publication.Or(link, publication.PlaceholderURL),
	}
}
